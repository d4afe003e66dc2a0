// Command studio opens the bust scene window and serves its control panel.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"bust-studio/internal/controls"
	"bust-studio/internal/engineconfig"
	"bust-studio/internal/env"
	"bust-studio/internal/logger"
	"bust-studio/internal/preset"
	"bust-studio/internal/server"
	"bust-studio/internal/settings"
	"bust-studio/internal/studio"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "studio:", err)
		os.Exit(1)
	}
}

func run() error {
	if err := env.Load(".env"); err != nil {
		fmt.Fprintln(os.Stderr, "studio: .env:", err)
	}
	configPath := flag.String("config", engineconfig.ConfigPath, "preferences file")
	addr := flag.String("addr", "", "listen address (overrides preferences and STUDIO_ADDR)")
	root := flag.String("root", "", "static file root (overrides preferences and STUDIO_ROOT)")
	headless := flag.Bool("headless", false, "serve the control panel without opening a window")
	debug := flag.Bool("debug", false, "log debug lines")
	initConfig := flag.Bool("init-config", false, "write the effective preferences to -config and exit")
	flag.Parse()

	prefs, _ := engineconfig.Load(*configPath)
	prefs.Addr = env.String("STUDIO_ADDR", prefs.Addr)
	prefs.Root = env.String("STUDIO_ROOT", prefs.Root)
	if *addr != "" {
		prefs.Addr = *addr
	}
	if *root != "" {
		prefs.Root = *root
	}
	if *initConfig {
		if err := engineconfig.Save(*configPath, prefs); err != nil {
			return fmt.Errorf("write %s: %w", *configPath, err)
		}
		fmt.Println("preferences written to", *configPath)
		return nil
	}

	log := logger.New(logger.LogFilePath)
	log.SetDebug(prefs.Debug || *debug)

	store := settings.NewStore(prefs.SettingsPath)
	saved, err := store.Load()
	if err != nil {
		log.Warnf("%v", err)
	}
	p, err := preset.Load(prefs.PresetPath)
	if err != nil {
		log.Warnf("%v", err)
	}

	app := studio.New(p, saved, log)
	app.ShowFPS = prefs.ShowFPS
	binder := controls.New(log, controls.DefaultInbox)
	binder.Observe(func(r controls.Readout) { log.Debugf("controls: %s=%s", r.Control, r.Text) })
	app.BindControls(binder, store, time.Now)

	hub := server.NewHub(binder.Send, log)
	srv := server.New(server.Options{Root: prefs.Root, Addr: prefs.Addr, MaxConns: prefs.MaxConns}, hub, log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// the scene keeps running without its control panel
		if err := srv.Serve(gctx); err != nil {
			log.Errorf("%v", err)
		}
		return nil
	})
	g.Go(func() error { return hub.Run(gctx) })

	if *headless || prefs.Headless {
		runHeadless(ctx, app, binder, hub)
	} else {
		runWindow(ctx, prefs, app, binder, hub, log)
	}
	cancel()
	return g.Wait()
}

// headlessTick is how often control messages are applied without a frame loop.
const headlessTick = 50 * time.Millisecond

func runHeadless(ctx context.Context, app *studio.App, binder *controls.Binder, hub *server.Hub) {
	t := time.NewTicker(headlessTick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			binder.Drain()
			hub.Publish(app.PanelState(binder, now))
		}
	}
}
