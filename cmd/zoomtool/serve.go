package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/akeil/zoom"
	"github.com/akeil/zoom/internal/logging"
	"github.com/akeil/zoom/pkg/clock"
	"github.com/akeil/zoom/pkg/geom"
	"github.com/akeil/zoom/pkg/input"
	"github.com/akeil/zoom/pkg/render"
)

func doServe(s settings, addr string) error {
	cfg := s.config()
	err := cfg.Validate()
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/touch", func(w http.ResponseWriter, r *http.Request) {
		handleTouch(cfg, w, r)
	})
	srv := &http.Server{Addr: addr, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		fmt.Printf("%v listening on ws://%v/touch\n", ellipsis, addr)
		err := srv.ListenAndServe()
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	})
	return group.Wait()
}

// handleTouch runs one zoom handler per connection. Touch events come in
// as Message values, transform updates go out as render.Update values.
func handleTouch(cfg zoom.Config, w http.ResponseWriter, r *http.Request) {
	conn, err := input.Upgrade(w, r)
	if err != nil {
		logging.Error("%v", err)
		return
	}
	defer conn.Close()
	log := logging.With("conn", conn.ID)

	// client coordinates are relative to the element
	surface := render.NewRemote(conn, geom.Vec(0, 0))
	defer surface.Close()
	c := clock.NewSystem(0)
	z, err := zoom.New(surface, conn, cfg, zoom.WithScheduler(c), zoom.WithTimers(c))
	if err != nil {
		log.Errorf("Failed to create zoom handler: %v", err)
		return
	}
	defer z.Destroy()

	err = conn.Listen()
	if err != nil {
		log.Warnf("Connection closed: %v", err)
	}
	log.Infof("Final transform %v", z.Transform())
}
