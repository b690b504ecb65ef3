// Package statsview serves live Go runtime statistics of the interpreter
// process in a browser.
package statsview

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/retroenv/retrogolib/log"
)

const path = "/debug/statsview"

// URL returns the address of the statistics page served on addr.
func URL(addr string) string {
	return "http://" + addr + path
}

// Launch starts the statistics server on addr in a new goroutine. The server
// is stopped when the context is cancelled.
func Launch(ctx context.Context, logger *log.Logger, addr string) {
	viewer.SetConfiguration(viewer.WithAddr(addr))
	mgr := statsview.New()

	go func() {
		if err := mgr.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Statistics server failed", log.Err(err))
		}
	}()

	go func() {
		<-ctx.Done()
		mgr.Stop()
	}()

	logger.Info("Statistics server available", log.String("url", URL(addr)))
}
