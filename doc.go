// Package luminicad is the interactive construction engine of a CAD
// editor. It turns pointer and keyboard events into validated geometric
// operations with live preview, and commits each operation atomically to
// an undoable document.
//
// # Quick Start
//
//	app := luminicad.New()
//
//	go func() {
//		// Forward host input; pixel coordinates follow the view camera.
//		app.Dispatch(view.Click(400, 300), view.Click(500, 300))
//	}()
//
//	// Runs the command to completion.
//	if err := app.Run(ctx, "circle"); err != nil {
//		log.Println(app.Printer().Error("circle", err))
//	}
//
//	_ = app.Renderer().SavePNG(app.View(), "frame.png")
//
// # Architecture
//
// The engine is organized leaf-first:
//   - async: single-use completion signals shared by a step and its command
//   - snap: snapping strategies, candidate merging and the event handler
//   - step: point, length, angle and shape selection steps
//   - command: the multi-step command state machine and registry
//   - command/commands: the built-in drawing and editing commands
//
// The geometry kernel (kernel), document graph with history (document),
// camera and renderer interface (view) and a raster renderer (preview) are
// small reference collaborators.
//
// # Logging
//
// Nothing is logged by default. See SetLogger.
package luminicad
