package command

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/rasenga223/luminicad/async"
	"github.com/rasenga223/luminicad/document"
	"github.com/rasenga223/luminicad/internal/logging"
	"github.com/rasenga223/luminicad/kernel"
	"github.com/rasenga223/luminicad/snap"
	"github.com/rasenga223/luminicad/step"
)

// Env is what a command runs against.
type Env struct {
	snap.Env
	Kernel kernel.Kernel
	// OnPrompt, if set, receives the prompt key of every step as it starts.
	OnPrompt func(key string)
}

// Command is a runnable interactive command.
type Command interface {
	Name() string
	// Execute runs the command until it commits, is cancelled or fails.
	// Cancellation is not an error.
	Execute(ctx context.Context, env Env) error
	// Cancel cancels the step in flight and stops a repeating command.
	Cancel()
	State() State
}

// variant is the mutation a Multistep derives from its results.
type variant interface {
	steps() []step.Step
	// prepare runs before the first step of every run. Returning false
	// cancels the run.
	prepare(ctx context.Context, m *Multistep, env Env) (ok bool, err error)
	commit(env Env, results step.Results) error
}

// Option configures a Multistep.
type Option func(*Multistep)

// Repeat restarts the command after every commit until a step is
// cancelled.
func Repeat() Option {
	return func(m *Multistep) { m.repeat = true }
}

// Carry seeds each repeated run with results derived from the previous
// run. The seeded results take the place of the first steps; at most
// all but the last step can be seeded.
func Carry(fn func(last step.Results) []*snap.Result) Option {
	return func(m *Multistep) { m.carry = fn }
}

// Multistep runs an ordered list of steps and commits one mutation.
type Multistep struct {
	name   string
	v      variant
	repeat bool
	carry  func(step.Results) []*snap.Result

	mu         sync.Mutex
	state      State
	index      int
	prompt     string
	stepDatas  []*snap.Result
	controller *async.Controller
	stopped    bool
	runs       int
}

var _ Command = (*Multistep)(nil)

func newMultistep(name string, v variant, opts []Option) *Multistep {
	m := &Multistep{name: name, v: v}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the command name, also used as the transaction name.
func (m *Multistep) Name() string { return m.name }

// State returns the current lifecycle state.
func (m *Multistep) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// StepIndex returns the index of the step in flight.
func (m *Multistep) StepIndex() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index
}

// Prompt returns the prompt key of the step in flight, or "" between
// steps.
func (m *Multistep) Prompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prompt
}

// Commits returns the number of successful commits of the last Execute.
func (m *Multistep) Commits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runs
}

// Cancel implements Command.
func (m *Multistep) Cancel() {
	m.mu.Lock()
	m.stopped = true
	ctl := m.controller
	m.mu.Unlock()
	if ctl != nil {
		ctl.Cancel("command cancelled")
	}
}

func (m *Multistep) setState(s State) {
	m.mu.Lock()
	prev := m.state
	m.state = s
	m.mu.Unlock()
	if prev != s {
		logging.Logger().Debug("command: state", "command", m.name, "from", prev, "to", s)
	}
}

// Execute implements Command.
func (m *Multistep) Execute(ctx context.Context, env Env) error {
	m.mu.Lock()
	if m.state == StateRunning || m.state == StateCommitting {
		m.mu.Unlock()
		return ErrRunning
	}
	m.state = StateIdle
	m.stopped = false
	m.runs = 0
	m.mu.Unlock()

	var seed []*snap.Result
	for {
		m.setState(StateRunning)
		results, ok, err := m.run(ctx, env, seed)
		if err != nil || !ok {
			return err
		}

		m.setState(StateCommitting)
		if err := m.commit(env, results); err != nil {
			m.setState(StateFailed)
			return err
		}
		m.mu.Lock()
		m.runs++
		stopped := m.stopped
		m.mu.Unlock()
		m.setState(StateCommitted)

		if !m.repeat || stopped || ctx.Err() != nil {
			return nil
		}
		seed = nil
		if m.carry != nil {
			seed = m.carry(results)
		}
	}
}

// run executes one pass over the steps. ok is false when the pass was
// cancelled.
func (m *Multistep) run(ctx context.Context, env Env, seed []*snap.Result) (results step.Results, ok bool, err error) {
	steps := m.v.steps()
	if len(seed) >= len(steps) {
		seed = seed[:max(len(steps)-1, 0)]
	}
	m.mu.Lock()
	m.stepDatas = slices.Clone(seed)
	m.mu.Unlock()
	defer m.discard()

	ok, err = m.v.prepare(ctx, m, env)
	if err != nil {
		m.setState(StateFailed)
		return step.Results{}, false, err
	}
	if !ok {
		m.setState(StateCancelled)
		return step.Results{}, false, nil
	}

	for i := len(seed); i < len(steps); i++ {
		r, status := m.runStep(ctx, env, steps[i], i)
		if r == nil {
			if status.Status == async.StatusFail {
				m.setState(StateFailed)
				return step.Results{}, false, fmt.Errorf("%w: %s: %s", ErrStepFailed, steps[i].Prompt(), status.Message)
			}
			m.setState(StateCancelled)
			return step.Results{}, false, nil
		}
		m.mu.Lock()
		m.stepDatas = append(m.stepDatas, r)
		m.mu.Unlock()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return step.NewResults(m.stepDatas...), true, nil
}

func (m *Multistep) discard() {
	m.mu.Lock()
	m.stepDatas = nil
	m.mu.Unlock()
}

// runStep executes one step with a fresh controller.
func (m *Multistep) runStep(ctx context.Context, env Env, s step.Step, i int) (*snap.Result, async.Result) {
	ctl := async.NewController()
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		ctl.Cancel("command cancelled")
		res, _ := ctl.Result()
		return nil, res
	}
	m.index = i
	m.prompt = s.Prompt()
	m.controller = ctl
	prior := step.NewResults(m.stepDatas...)
	m.mu.Unlock()

	if env.OnPrompt != nil {
		env.OnPrompt(s.Prompt())
	}

	stop := ctl.WithContext(ctx)
	r := s.Execute(ctx, env.Env, prior, ctl)
	stop()
	if r != nil {
		ctl.Success("")
	}
	res, _ := ctl.Result()
	ctl.Dispose()

	m.mu.Lock()
	m.controller = nil
	m.prompt = ""
	m.mu.Unlock()
	return r, res
}

// runPrepareStep executes s outside the main sequence. It returns nil when
// the step was cancelled and an error when it failed.
func (m *Multistep) runPrepareStep(ctx context.Context, env Env, s step.Step) (*snap.Result, error) {
	r, res := m.runStep(ctx, env, s, 0)
	if r == nil && res.Status == async.StatusFail {
		return nil, fmt.Errorf("%w: %s: %s", ErrStepFailed, s.Prompt(), res.Message)
	}
	return r, nil
}

func (m *Multistep) commit(env Env, results step.Results) error {
	defer func() {
		if r := recover(); r != nil {
			m.setState(StateFailed)
			panic(r)
		}
	}()
	err := document.Transact(env.Document, m.name, func(*document.Transaction) error {
		return m.v.commit(env, results)
	})
	if err != nil {
		logging.Logger().Warn("command: commit failed", "command", m.name, "err", err)
		return commitError(m.name, err)
	}
	logging.Logger().Info("command: committed", "command", m.name)
	return nil
}
