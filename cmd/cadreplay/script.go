package main

import (
	"fmt"
	"io"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/rasenga223/luminicad/geom"
	"github.com/rasenga223/luminicad/view"
)

// Script is a recorded editing session.
//
//	[[run]]
//	command = "circle"
//	events = [
//	  { kind = "click", at = [0, 0] },
//	  { kind = "type", text = "25" },
//	  { kind = "key", key = "enter" },
//	]
//
//	[[run]]
//	action = "undo"
type Script struct {
	Runs []Run `toml:"run"`
}

// Run is one command invocation or history action.
type Run struct {
	Command string        `toml:"command"`
	Action  string        `toml:"action"`
	Events  []ScriptEvent `toml:"events"`
}

// ScriptEvent is an input event. At is a workplane point, Pixel a screen
// position; exactly one is set for pointer events.
type ScriptEvent struct {
	Kind  string    `toml:"kind"`
	At    []float64 `toml:"at"`
	Pixel []float64 `toml:"pixel"`
	Key   string    `toml:"key"`
	Text  string    `toml:"text"`
}

// ParseScript decodes and validates a script.
func ParseScript(r io.Reader) (Script, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Script{}, fmt.Errorf("read script: %w", err)
	}
	var s Script
	if err := toml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("parse script: %w", err)
	}
	for i, run := range s.Runs {
		switch {
		case run.Command == "" && run.Action == "":
			return Script{}, fmt.Errorf("run %d: command or action is required", i)
		case run.Command != "" && run.Action != "":
			return Script{}, fmt.Errorf("run %d: command and action are exclusive", i)
		case run.Action != "" && run.Action != "undo" && run.Action != "redo":
			return Script{}, fmt.Errorf("run %d: unknown action %q", i, run.Action)
		}
	}
	return s, nil
}

var keys = map[string]view.Key{
	"escape":    view.KeyEscape,
	"esc":       view.KeyEscape,
	"enter":     view.KeyEnter,
	"backspace": view.KeyBackspace,
}

// ViewEvents converts script events to view events using v's camera.
func (r Run) ViewEvents(v *view.View) ([]view.Event, error) {
	var out []view.Event
	for i, e := range r.Events {
		kind := strings.ToLower(strings.TrimSpace(e.Kind))
		switch kind {
		case "move", "click", "right":
			x, y, err := e.position(v)
			if err != nil {
				return nil, fmt.Errorf("event %d: %w", i, err)
			}
			switch kind {
			case "move":
				out = append(out, view.Move(x, y))
			case "click":
				out = append(out, view.Click(x, y))
			default:
				out = append(out, view.Event{Kind: view.PointerDown, X: x, Y: y, Button: view.ButtonRight})
			}
		case "key":
			k, ok := keys[strings.ToLower(e.Key)]
			if !ok {
				return nil, fmt.Errorf("event %d: unknown key %q", i, e.Key)
			}
			out = append(out, view.Press(k))
		case "type":
			out = append(out, view.Type(e.Text)...)
		default:
			return nil, fmt.Errorf("event %d: unknown kind %q", i, e.Kind)
		}
	}
	return out, nil
}

func (e ScriptEvent) position(v *view.View) (x, y float64, err error) {
	switch {
	case len(e.At) > 0 && len(e.Pixel) > 0:
		return 0, 0, fmt.Errorf("at and pixel are exclusive")
	case len(e.Pixel) == 2:
		return e.Pixel[0], e.Pixel[1], nil
	case len(e.At) == 2 || len(e.At) == 3:
		local := geom.XYZ{X: e.At[0], Y: e.At[1]}
		if len(e.At) == 3 {
			local.Z = e.At[2]
		}
		x, y = v.WorldToScreen(v.Workplane().FromLocal(local))
		return x, y, nil
	default:
		return 0, 0, fmt.Errorf("pointer event needs at = [x, y] or pixel = [x, y]")
	}
}
