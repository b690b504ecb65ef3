package keypad

import (
	"sync"
	"time"

	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/set"
)

// State tracks pressed keys. Terminals only report key presses, so a key is
// considered released once no press was seen for the hold duration.
// State is safe for concurrent use, the input reader presses keys while the
// runner takes snapshots.
type State struct {
	mu        sync.Mutex
	hold      time.Duration
	held      set.Set[byte]
	lastPress [vm.KeyCount]time.Time
}

// NewState returns a new key state that releases keys after the hold duration.
func NewState(hold time.Duration) *State {
	return &State{
		hold: hold,
		held: set.New[byte](),
	}
}

// Press marks a key as pressed at the given time.
func (s *State) Press(key byte, now time.Time) {
	if int(key) >= vm.KeyCount {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.held.Add(key)
	s.lastPress[key] = now
}

// Release releases all keys.
func (s *State) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.held = set.New[byte]()
}

// Snapshot returns the keypad state at the given time.
func (s *State) Snapshot(now time.Time) vm.Keypad {
	s.mu.Lock()
	defer s.mu.Unlock()

	var keys vm.Keypad
	for key := range s.held {
		if now.Sub(s.lastPress[key]) >= s.hold {
			delete(s.held, key)
			continue
		}
		keys[key] = true
	}
	return keys
}

// Keypad returns the current keypad state.
func (s *State) Keypad() vm.Keypad {
	return s.Snapshot(time.Now())
}
