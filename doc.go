// Package winloop is a windowed render loop for Go built on gogpu/wgpu.
//
// # Overview
//
// winloop pairs an OS window and its event source with a GPU-backed
// presentation surface, a thread-shared application state cell and a
// single-window event dispatch loop. The host application registers typed
// callbacks per event category and redraws on demand.
//
// # Quick Start
//
//	import (
//	    "context"
//	    "image/color"
//
//	    "github.com/gogpu/winloop/config"
//	    "github.com/gogpu/winloop/loop"
//	    "github.com/gogpu/winloop/platform"
//	    "github.com/gogpu/winloop/platform/desktop"
//	    "github.com/gogpu/winloop/render"
//	)
//
//	type appState struct{ frames int }
//
//	p, err := desktop.New()
//	if err != nil {
//	    return err
//	}
//	ctx := context.Background()
//	cfg := config.Default()
//	l := loop.New[appState](p, cfg).
//	    WithSurface(cfg.SurfaceOptions()).
//	    OnRedrawRequested(func(_ platform.RedrawRequested, st *appState, ctl *loop.Control) (loop.Directive, error) {
//	        st.frames++
//	        return loop.Continue, ctl.Surface().Redraw(ctx, render.Clear{Color: color.White})
//	    })
//	code, err := l.Run(appState{})
//
// The loop package example runs the same program on the headless
// platform.
//
// # Architecture
//
// The module is organized into:
//   - state: single-slot publish/subscribe cell for immutable snapshots
//   - render: color targets, command encoder and the Widget contract
//   - surface: the RenderSurface owner with wgpu and software backends
//   - platform: window and event source abstraction (GLFW desktop, headless)
//   - loop: the event dispatch loop and its callback slots
//   - scene: Div/Shape retained tree with flex layout
//   - config: window configuration files and live reload
//
// # Logging
//
// winloop produces no log output by default. Call [SetLogger] to enable
// structured logging through log/slog.
//
// # Errors
//
// Failures are classified with the sentinel errors [ErrInit],
// [ErrSurfaceLost], [ErrOutOfMemory], [ErrRender] and [ErrConfig].
// [Classify] turns an error into a frame disposition and [ExitCode] into a
// process exit status.
package winloop
