package commands

import (
	"errors"
	"fmt"

	"github.com/rasenga223/luminicad/command"
	"github.com/rasenga223/luminicad/document"
	"github.com/rasenga223/luminicad/kernel"
	"github.com/rasenga223/luminicad/step"
)

// ErrSameShape is returned when both boolean operands are the same node.
var ErrSameShape = errors.New("commands: boolean operands are the same shape")

type boolean struct {
	name string
	op   func(k kernel.Kernel, a, b kernel.Shape) (kernel.Shape, error)
}

// NewFuse returns the union command for two solids.
func NewFuse() *command.Multistep {
	return command.New(boolean{name: "fuse", op: kernel.Kernel.Fuse})
}

// NewCommon returns the intersection command for two solids.
func NewCommon() *command.Multistep {
	return command.New(boolean{name: "common", op: kernel.Kernel.Common})
}

func (b boolean) Name() string { return b.name }

func (boolean) Steps() []step.Step {
	return []step.Step{
		step.NewSelectShape("prompt.boolean.first", kernel.KindSolid),
		step.NewSelectShape("prompt.boolean.second", kernel.KindSolid),
	}
}

// Mutate replaces both operands with the result.
func (b boolean) Mutate(env command.Env, results step.Results) error {
	first, second := results.At(0).Nodes, results.At(1).Nodes
	if len(first) == 0 || len(second) == 0 {
		return command.ErrNoSelection
	}
	na, nb := first[0], second[0]
	if na == nb {
		return ErrSameShape
	}
	shape, err := b.op(env.Kernel, na.WorldShape(), nb.WorldShape())
	if err != nil {
		return fmt.Errorf("%s: %w", b.name, err)
	}
	for _, n := range []*document.Node{na, nb} {
		if err := env.Document.RemoveNode(n); err != nil {
			return err
		}
	}
	return env.Document.AddNode(document.NewNode(b.name, shape))
}

type remove struct{}

// NewDelete returns the delete command. It acts on the selection, or asks
// for shapes when nothing is selected.
func NewDelete() *command.Multistep { return command.New(remove{}) }

func (remove) Name() string { return "delete" }

func (remove) Steps() []step.Step {
	return []step.Step{
		step.NewSelectShape("prompt.delete", kernel.KindAny, step.KeepSelection(), step.Multiple()),
	}
}

func (remove) Mutate(env command.Env, results step.Results) error {
	nodes := results.At(0).Nodes
	if len(nodes) == 0 {
		return command.ErrNoSelection
	}
	for _, n := range nodes {
		if err := env.Document.RemoveNode(n); err != nil {
			return err
		}
	}
	return nil
}
