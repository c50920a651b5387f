package luminicad

import (
	"context"
	"errors"
	"sync"

	"github.com/rasenga223/luminicad/command"
	_ "github.com/rasenga223/luminicad/command/commands"
	"github.com/rasenga223/luminicad/document"
	"github.com/rasenga223/luminicad/i18n"
	"github.com/rasenga223/luminicad/kernel"
	"github.com/rasenga223/luminicad/preview"
	"github.com/rasenga223/luminicad/snap"
	"github.com/rasenga223/luminicad/view"
)

// ErrBusy is returned by history operations while a command is running.
var ErrBusy = errors.New("luminicad: a command is running")

// NoticeKind classifies a Notice.
type NoticeKind uint8

const (
	NoticeStarted NoticeKind = iota
	// NoticePrompt is sent as each step of the running command starts.
	NoticePrompt
	NoticeCommitted
	NoticeCancelled
	NoticeFailed
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeStarted:
		return "started"
	case NoticePrompt:
		return "prompt"
	case NoticeCommitted:
		return "committed"
	case NoticeCancelled:
		return "cancelled"
	case NoticeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Notice reports a command lifecycle event.
type Notice struct {
	Kind    NoticeKind
	Command string
	// Message is localized for the app's locale.
	Message string
	// Err is set for NoticeFailed.
	Err error
}

// Notifier receives notices. Notify is called from the goroutine running
// the command and must not block.
type Notifier interface {
	Notify(n Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

// Notify implements Notifier.
func (f NotifierFunc) Notify(n Notice) { f(n) }

// App wires a document, a view, a renderer and a kernel together and runs
// at most one command at a time against them.
type App struct {
	doc      *document.Document
	view     *view.View
	renderer *preview.Renderer
	kernel   kernel.Kernel
	settings snap.Settings
	printer  *i18n.Printer
	notifier Notifier

	startMu sync.Mutex
	mu      sync.Mutex
	active  *run
}

type run struct {
	cmd  command.Command
	done chan struct{}
	err  error
}

// New creates an app with an empty document.
func New(opts ...Option) *App {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.bundle == nil {
		o.bundle = i18n.Default()
	}
	locale := o.cfg.Locale
	if o.locale != "" {
		locale = o.locale
	}

	doc := document.New(document.WithHistoryLimit(o.cfg.HistoryLimit))
	r := preview.New(doc, preview.WithPickRadius(o.cfg.PickRadius), preview.WithTheme(o.cfg.Theme))
	return &App{
		doc:      doc,
		view:     view.New(r, view.WithCamera(o.cfg.Camera())),
		renderer: r,
		kernel:   o.kernel,
		settings: o.cfg.Snap,
		printer:  o.bundle.Printer(locale),
		notifier: o.notifier,
	}
}

// Document returns the edited document.
func (a *App) Document() *document.Document { return a.doc }

// View returns the view commands read input from.
func (a *App) View() *view.View { return a.view }

// Renderer returns the view's renderer.
func (a *App) Renderer() *preview.Renderer { return a.renderer }

// Printer returns the printer for the app's locale.
func (a *App) Printer() *i18n.Printer { return a.printer }

// Env returns the environment commands run against. Preview labels are
// localized with the app's printer.
func (a *App) Env() command.Env {
	return command.Env{
		Env: snap.Env{
			Document:  a.doc,
			View:      a.view,
			Settings:  a.settings,
			Translate: a.printer.Prompt,
		},
		Kernel: a.kernel,
	}
}

// Dispatch forwards input events to the view. It blocks while the view's
// event buffer is full.
func (a *App) Dispatch(events ...view.Event) {
	a.view.Dispatch(events...)
}

// Start looks up a registered command and starts it. See StartCommand.
func (a *App) Start(ctx context.Context, name string) (command.Command, error) {
	cmd, err := command.Lookup(name)
	if err != nil {
		return nil, err
	}
	a.StartCommand(ctx, cmd)
	return cmd, nil
}

// StartCommand runs cmd on a new goroutine. A command already running is
// cancelled, and StartCommand waits for it to unwind first. Events queued
// for the cancelled command are discarded.
func (a *App) StartCommand(ctx context.Context, cmd command.Command) {
	a.start(ctx, cmd)
}

func (a *App) start(ctx context.Context, cmd command.Command) *run {
	a.startMu.Lock()
	defer a.startMu.Unlock()

	if prev, ok := a.current(); ok {
		prev.cmd.Cancel()
		<-prev.done
		if n := a.view.Drain(); n > 0 {
			Logger().Debug("luminicad: dropped stale events", "command", prev.cmd.Name(), "count", n)
		}
	}

	r := &run{cmd: cmd, done: make(chan struct{})}
	a.mu.Lock()
	a.active = r
	a.mu.Unlock()

	a.notify(Notice{Kind: NoticeStarted, Command: cmd.Name(), Message: a.printer.Sprintf("command.started", cmd.Name())})
	go a.execute(ctx, r)
	return r
}

func (a *App) execute(ctx context.Context, r *run) {
	defer close(r.done)
	name := r.cmd.Name()
	env := a.Env()
	env.OnPrompt = func(key string) {
		a.notify(Notice{Kind: NoticePrompt, Command: name, Message: a.printer.Prompt(key)})
	}
	r.err = r.cmd.Execute(ctx, env)

	a.mu.Lock()
	if a.active == r {
		a.active = nil
	}
	a.mu.Unlock()

	switch {
	case r.err != nil:
		Logger().Warn("luminicad: command failed", "command", name, "code", command.CodeOf(r.err), "err", r.err)
		a.notify(Notice{Kind: NoticeFailed, Command: name, Message: a.printer.Error(name, r.err), Err: r.err})
	case r.cmd.State() == command.StateCommitted:
		a.notify(Notice{Kind: NoticeCommitted, Command: name, Message: a.printer.Sprintf("command.committed", name)})
	default:
		a.notify(Notice{Kind: NoticeCancelled, Command: name, Message: a.printer.Sprintf("command.cancelled", name)})
	}
}

func (a *App) notify(n Notice) {
	if a.notifier != nil {
		a.notifier.Notify(n)
	}
}

func (a *App) current() (*run, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active, a.active != nil
}

// Run starts the named command and waits for it to finish.
func (a *App) Run(ctx context.Context, name string) error {
	cmd, err := command.Lookup(name)
	if err != nil {
		return err
	}
	r := a.start(ctx, cmd)
	<-r.done
	return r.err
}

// Running returns the command in flight.
func (a *App) Running() (command.Command, bool) {
	r, ok := a.current()
	if !ok {
		return nil, false
	}
	return r.cmd, true
}

// Cancel cancels the running command without waiting for it.
func (a *App) Cancel() {
	if r, ok := a.current(); ok {
		r.cmd.Cancel()
	}
}

// Wait blocks until the running command finishes and returns its error.
// It returns nil at once when nothing is running.
func (a *App) Wait(ctx context.Context) error {
	r, ok := a.current()
	if !ok {
		return nil
	}
	select {
	case <-r.done:
		return r.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Undo reverts the last committed command.
func (a *App) Undo() error {
	if _, ok := a.current(); ok {
		return ErrBusy
	}
	return a.doc.Undo()
}

// Redo reapplies the last undone command.
func (a *App) Redo() error {
	if _, ok := a.current(); ok {
		return ErrBusy
	}
	return a.doc.Redo()
}
