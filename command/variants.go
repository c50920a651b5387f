package command

import (
	"context"
	"fmt"

	"github.com/rasenga223/luminicad/document"
	"github.com/rasenga223/luminicad/geom"
	"github.com/rasenga223/luminicad/kernel"
	"github.com/rasenga223/luminicad/step"
)

// Creator derives new geometry from step results.
type Creator interface {
	Name() string
	Steps() []step.Step
	Geometry(env Env, results step.Results) (kernel.Shape, error)
}

// Transformer derives a transform for the selected nodes.
type Transformer interface {
	Name() string
	Steps() []step.Step
	Transform(results step.Results) (geom.Matrix4, error)
}

// Operation applies an arbitrary mutation. It runs inside the command's
// transaction.
type Operation interface {
	Name() string
	Steps() []step.Step
	Mutate(env Env, results step.Results) error
}

// Create returns a command inserting the creator's geometry as a new node.
func Create(c Creator, opts ...Option) *Multistep {
	return newMultistep(c.Name(), createVariant{c}, opts)
}

// Transformed returns a command premultiplying the transformer's matrix
// onto every selected node. When nothing is selected the user picks the
// nodes first.
func Transformed(t Transformer, opts ...Option) *Multistep {
	return newMultistep(t.Name(), &transformVariant{t: t}, opts)
}

// New returns a command running a general operation.
func New(op Operation, opts ...Option) *Multistep {
	return newMultistep(op.Name(), operationVariant{op}, opts)
}

type createVariant struct{ c Creator }

func (v createVariant) steps() []step.Step { return v.c.Steps() }

func (createVariant) prepare(context.Context, *Multistep, Env) (bool, error) { return true, nil }

func (v createVariant) commit(env Env, results step.Results) error {
	shape, err := v.c.Geometry(env, results)
	if err != nil {
		return err
	}
	return env.Document.AddNode(document.NewNode(v.c.Name(), shape))
}

// SelectPrompt is the prompt key of the node selection step.
const SelectPrompt = "prompt.select"

type transformVariant struct {
	t     Transformer
	nodes []*document.Node
}

func (v *transformVariant) steps() []step.Step { return v.t.Steps() }

func (v *transformVariant) prepare(ctx context.Context, m *Multistep, env Env) (bool, error) {
	v.nodes = env.Document.Selected()
	if len(v.nodes) > 0 {
		return true, nil
	}
	r, err := m.runPrepareStep(ctx, env, step.NewSelectShape(SelectPrompt, kernel.KindAny, step.Multiple()))
	if err != nil || r == nil {
		return false, err
	}
	v.nodes = r.Nodes
	return len(v.nodes) > 0, nil
}

func (v *transformVariant) commit(env Env, results step.Results) error {
	if len(v.nodes) == 0 {
		return ErrNoSelection
	}
	m, err := v.t.Transform(results)
	if err != nil {
		return err
	}
	for _, n := range v.nodes {
		if err := env.Document.SetTransform(n, m.Multiply(n.Transform())); err != nil {
			return fmt.Errorf("transform %s: %w", n.Name(), err)
		}
	}
	env.Document.Select(v.nodes...)
	return nil
}

type operationVariant struct{ op Operation }

func (v operationVariant) steps() []step.Step { return v.op.Steps() }

func (operationVariant) prepare(context.Context, *Multistep, Env) (bool, error) { return true, nil }

func (v operationVariant) commit(env Env, results step.Results) error {
	return v.op.Mutate(env, results)
}
