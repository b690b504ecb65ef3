// Package keypad maps host keyboard input to the 16 key hexadecimal keypad.
package keypad

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Layout maps keyboard characters to keypad key indices.
type Layout struct {
	name string
	keys map[rune]byte
}

// QWERTY maps the left side of a QWERTY keyboard to the original keypad arrangement:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
var QWERTY = newLayout("qwerty", map[rune]byte{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
})

// Hex maps the hexadecimal digit characters directly to the keys.
var Hex = newLayout("hex", map[rune]byte{
	'0': 0x0, '1': 0x1, '2': 0x2, '3': 0x3,
	'4': 0x4, '5': 0x5, '6': 0x6, '7': 0x7,
	'8': 0x8, '9': 0x9, 'a': 0xA, 'b': 0xB,
	'c': 0xC, 'd': 0xD, 'e': 0xE, 'f': 0xF,
})

var layouts = map[string]Layout{
	QWERTY.name: QWERTY,
	Hex.name:    Hex,
}

func newLayout(name string, keys map[rune]byte) Layout {
	return Layout{
		name: name,
		keys: keys,
	}
}

// LayoutByName returns the layout with the given case insensitive name.
func LayoutByName(name string) (Layout, error) {
	layout, ok := layouts[strings.ToLower(name)]
	if !ok {
		return Layout{}, fmt.Errorf("unsupported keyboard layout '%s'. Valid options: %s",
			name, strings.Join(LayoutNames(), ", "))
	}
	return layout, nil
}

// LayoutNames returns the names of all supported layouts.
func LayoutNames() []string {
	names := make([]string, 0, len(layouts))
	for name := range layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Name returns the layout name.
func (l Layout) Name() string {
	return l.name
}

// Lookup returns the key index for a character, letters are case insensitive.
func (l Layout) Lookup(r rune) (byte, bool) {
	key, ok := l.keys[unicode.ToLower(r)]
	return key, ok
}
