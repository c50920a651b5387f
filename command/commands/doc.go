// Package commands holds the built-in drawing, transform and boolean
// commands. Importing it registers them with the command registry:
//
//	import _ "github.com/rasenga223/luminicad/command/commands"
//
//	cmd, err := command.Lookup("circle")
package commands

import "github.com/rasenga223/luminicad/command"

func init() {
	command.Register("line", func() command.Command { return NewLine(true) })
	command.Register("line.single", func() command.Command { return NewLine(false) })
	command.Register("circle", func() command.Command { return NewCircle() })
	command.Register("arc", func() command.Command { return NewArc() })
	command.Register("rect", func() command.Command { return NewRect() })
	command.Register("polygon", func() command.Command { return NewPolygon() })
	command.Register("box", func() command.Command { return NewBox() })
	command.Register("move", func() command.Command { return NewMove() })
	command.Register("rotate", func() command.Command { return NewRotate() })
	command.Register("fuse", func() command.Command { return NewFuse() })
	command.Register("common", func() command.Command { return NewCommon() })
	command.Register("delete", func() command.Command { return NewDelete() })
}
