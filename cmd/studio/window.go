package main

import (
	"context"
	"image"
	"net/http"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"bust-studio/internal/assets"
	"bust-studio/internal/commands"
	"bust-studio/internal/controls"
	"bust-studio/internal/engineconfig"
	"bust-studio/internal/fonts"
	"bust-studio/internal/graphics"
	"bust-studio/internal/hud"
	"bust-studio/internal/lighting"
	"bust-studio/internal/logger"
	"bust-studio/internal/scene"
	"bust-studio/internal/server"
	"bust-studio/internal/snapshot"
	"bust-studio/internal/studio"
	"bust-studio/internal/terminal"
	"bust-studio/internal/ui"
)

const panelTitle = "Lighting"

func runWindow(ctx context.Context, prefs engineconfig.Prefs, app *studio.App, binder *controls.Binder, hub *server.Hub, log *logger.Logger) {
	src := assets.Source{Root: prefs.Root, Client: http.DefaultClient}
	bustCh := assets.Load(ctx, src, app.Preset.Bust.Paths, app.Indicator, log)
	var bottleCh <-chan assets.Result
	if app.Preset.BottleEnabled() {
		bottleCh = assets.Load(ctx, src, app.Preset.Bottle.Paths, nil, log)
	}

	scn := scene.New(app, prefs.CacheDir, log)
	engine, err := hud.New()
	if err != nil {
		log.Errorf("hud: %v", err)
	}
	if css := app.Preset.HUDCSS; engine != nil && css != "" {
		if err := engine.LoadCSS(css); err != nil {
			log.Warnf("hud: %s: %v (keeping the built-in stylesheet)", css, err)
		}
	}
	panel := ui.NewPanel()
	reg := commands.NewRegistry()
	term := terminal.New(log, reg)
	commands.RegisterStudio(reg, commands.Studio{
		Handle:   binder.Handle,
		Controls: binder.Controls,
		Sway:     func(on bool) { app.Sway.Active = on },
		FPS:      func(show bool) { app.ShowFPS = show },
		Snapshot: func() (string, error) {
			path := snapshot.Path(prefs.SnapshotDir, time.Now())
			scn.RequestCapture(func(img image.Image) {
				go func() {
					if err := snapshot.Save(img, path, prefs.SnapshotWidth); err != nil {
						log.Errorf("%v", err)
						return
					}
					log.Infof("snapshot saved to %s", path)
				}()
			})
			return path, nil
		},
		Print: log.Log,
	})

	r := app.Preset.Renderer
	bg, _ := lighting.ParseHexColor(r.Background)
	opts := graphics.Options{
		Title:       r.Title,
		Width:       r.Width,
		Height:      r.Height,
		TargetFPS:   r.TargetFPS,
		Antialias:   r.Antialias,
		Transparent: r.Transparent,
		Background:  bg,
	}

	var (
		nodes      []*ui.Node
		rows       []ui.Row
		fontLoaded bool
	)
	graphics.Run(ctx, opts, graphics.Loop{
		Resize: app.Resize,
		Update: func(dt float32, elapsed float64) {
			binder.Drain()
			select {
			case res := <-bustCh:
				bustCh = nil
				if res.Err == nil {
					if err := scn.AttachBust(res.Asset); err != nil {
						log.Errorf("%v", err)
						app.Indicator.Fail()
					}
				}
			case res := <-bottleCh:
				bottleCh = nil
				if res.Err == nil {
					if err := scn.AttachBottle(res.Asset); err != nil {
						log.Warnf("%v", err)
					}
				}
			default:
			}

			term.Update()
			m := rl.GetMousePosition()
			mx, my := int32(m.X), int32(m.Y)
			overHUD := engine != nil && engine.Covers(mx, my)
			if engine != nil && !term.IsOpen() && rl.IsMouseButtonPressed(rl.MouseButtonLeft) && panel.IsSave(engine.NodeAt(mx, my)) {
				binder.Send(controls.Message{Action: studio.ActionSave})
				overHUD = true
			}
			scn.HandleInput(term.IsOpen() || overHUD)
			app.Tick(dt, elapsed)
			hub.Publish(app.PanelState(binder, time.Now()))
		},
		Draw: func() {
			scn.Draw()
			if engine != nil {
				if !fontLoaded {
					fontLoaded = true
					if path, err := engine.LoadFont(fonts.Candidates(app.Preset.HUDFonts, fonts.BaseDirs()...)); err == nil {
						log.Debugf("hud: font %s", path)
						term.SetFont(engine.Font())
					}
				}
				st := app.PanelState(binder, time.Now())
				rows = rows[:0]
				for _, ro := range st.Readouts {
					rows = append(rows, ui.Row{Label: ro.Control, Value: ro.Text})
				}
				nodes = panel.AppendNodes(nodes[:0], ui.PanelView{
					Visible:   !term.IsOpen(),
					Title:     panelTitle,
					Rows:      rows,
					SaveLabel: st.SaveLabel,
					Loading:   st.Loading,
					ShowFPS:   app.ShowFPS,
					FPS:       int(rl.GetFPS()),
				})
				engine.Draw(nodes)
			}
			term.Draw()
		},
		Close: func() {
			scn.Unload()
			if engine != nil {
				engine.Unload()
			}
		},
	})
}
