package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jask/countdemo/internal/config"
	"github.com/jask/countdemo/internal/counter"
	"github.com/jask/countdemo/internal/database"
	"github.com/jask/countdemo/internal/database/repository"
	"github.com/jask/countdemo/internal/hooks"
)

// Recorder receives a record of every mount and dispatch. A nil Recorder
// turns journaling off.
type Recorder interface {
	Session(s repository.Session)
	Action(e repository.ActionEntry)
	Errors() <-chan error
}

// App is the counter component hosted as a bubbletea model.
type App struct {
	ctx      context.Context
	cfg      config.Config
	keys     keyMap
	input    textinput.Model
	recorder Recorder
	now      func() time.Time

	initial *hooks.Memo[int64]
	store   *hooks.Reducer[counter.State, counter.Action]

	sessionID  string
	seq        int
	mounts     int
	prompting  bool
	lastAction counter.ActionType
	failure    error
	status     string
	width      int
	height     int
}

// Option customizes an App.
type Option func(*App)

// WithRecorder journals mounts and dispatches to r.
func WithRecorder(r Recorder) Option {
	return func(a *App) { a.recorder = r }
}

// WithInitializer replaces the default initializer, which sums
// cfg.Counter.Iterations integers.
func WithInitializer(fn func() int64) Option {
	return func(a *App) { a.initial = hooks.NewMemo(fn) }
}

// New builds the App and mounts the counter, which runs the initializer
// synchronously.
func New(ctx context.Context, cfg config.Config, opts ...Option) *App {
	inp := textinput.New()
	inp.Placeholder = "increment | decrement | reset [n]"
	inp.Prompt = "dispatch> "
	inp.CharLimit = 64

	iterations := cfg.Counter.Iterations
	a := &App{
		ctx:   ctx,
		cfg:   cfg,
		keys:  newKeyMap(cfg.Keys),
		input: inp,
		now:   database.Now,
	}
	a.initial = hooks.NewMemo(func() int64 {
		return counter.ComputeInitialCount(iterations)
	})
	for _, opt := range opts {
		opt(a)
	}
	a.mount()
	return a
}

func (a *App) Init() tea.Cmd {
	return a.waitForJournal()
}

// mount starts a fresh component instance: the memo is read (computing on
// the first read after a teardown) and a new reducer store is built from it.
func (a *App) mount() {
	initial := a.initial.Get()
	a.store = hooks.UseReducer(counter.Reduce, initial, counter.Init)
	a.sessionID = uuid.NewString()
	a.seq = 0
	a.mounts++
	a.failure = nil
	a.lastAction = ""
	if a.recorder != nil {
		a.recorder.Session(repository.Session{
			ID:           a.sessionID,
			InitialCount: initial,
			Iterations:   a.cfg.Counter.Iterations,
			ComputeMS:    a.initial.LastCost().Milliseconds(),
			MountedAt:    a.now().UTC(),
		})
	}
}

// unmount tears the instance down; the cached initial value goes with it.
func (a *App) unmount() {
	a.initial.Invalidate()
	a.store = nil
}

func (a *App) remount() {
	a.unmount()
	a.mount()
	a.status = fmt.Sprintf("remounted, initial count %d", a.initial.Get())
}

// dispatch hands action to the reducer. A reducer error trips the error
// boundary and is not handled here.
func (a *App) dispatch(action counter.Action) {
	a.seq++
	a.lastAction = action.Type
	changed, err := a.store.Dispatch(action)
	switch {
	case err != nil:
		a.failure = err
		a.status = ""
		log.Printf("dispatch %s: %v", action, err)
	case !changed:
		a.status = "state unchanged"
	default:
		a.status = ""
	}
	a.record(action, err)
}

func (a *App) record(action counter.Action, err error) {
	if a.recorder == nil {
		return
	}
	e := repository.ActionEntry{
		ID:        uuid.NewString(),
		SessionID: a.sessionID,
		Seq:       a.seq,
		Tag:       string(action.Type),
		CreatedAt: a.now().UTC(),
	}
	if action.Type == counter.ActionReset {
		p := action.Payload
		e.Payload = &p
	}
	if err != nil {
		msg := err.Error()
		e.Error = &msg
	} else {
		c := a.store.State().Count
		e.CountAfter = &c
	}
	a.recorder.Action(e)
}

func (a *App) waitForJournal() tea.Cmd {
	if a.recorder == nil {
		return nil
	}
	errs := a.recorder.Errors()
	return func() tea.Msg {
		select {
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			return journalErrMsg{err}
		case <-a.ctx.Done():
			return nil
		}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.input.Width = max(0, m.Width-len(a.input.Prompt)-2)
	case journalErrMsg:
		a.status = "journal: " + m.Error()
		return a, a.waitForJournal()
	case tea.KeyMsg:
		if a.prompting {
			return a.handlePromptKey(m)
		}
		return a.handleKey(m)
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Remount):
		a.remount()
		return a, nil
	}
	if a.failure != nil {
		// The boundary only lets remount and quit through.
		return a, nil
	}
	switch {
	case key.Matches(m, a.keys.Increment):
		a.dispatch(counter.Increment())
	case key.Matches(m, a.keys.Decrement):
		a.dispatch(counter.Decrement())
	case key.Matches(m, a.keys.Reset):
		a.dispatch(counter.Reset(a.initial.Get()))
	case key.Matches(m, a.keys.Command):
		a.prompting = true
		a.input.SetValue("")
		return a, a.input.Focus()
	}
	return a, nil
}

func (a *App) handlePromptKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.Type == tea.KeyCtrlC:
		return a, tea.Quit
	case key.Matches(m, a.keys.Cancel):
		a.closePrompt()
		return a, nil
	case key.Matches(m, a.keys.Submit):
		text := strings.TrimSpace(a.input.Value())
		a.closePrompt()
		action, hasPayload, err := counter.ParseAction(text)
		if err != nil {
			a.status = "error: " + err.Error()
			return a, nil
		}
		if action.Type == counter.ActionReset && !hasPayload {
			action.Payload = a.initial.Get()
		}
		a.dispatch(action)
		return a, nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(m)
	return a, cmd
}

func (a *App) closePrompt() {
	a.prompting = false
	a.input.Blur()
}

// State is the component's current state.
func (a *App) State() counter.State { return a.store.State() }

// InitialCount is the memoized initial value for the current mount.
func (a *App) InitialCount() int64 { return a.initial.Get() }

// InitializerRuns is how many times the initializer has actually executed.
func (a *App) InitializerRuns() int { return a.initial.Runs() }

// Failure is the error caught by the boundary, if any.
func (a *App) Failure() error { return a.failure }

// UnhandledAction returns the boundary's error as an UnhandledActionError.
func (a *App) UnhandledAction() (*counter.UnhandledActionError, bool) {
	var unhandled *counter.UnhandledActionError
	if errors.As(a.failure, &unhandled) {
		return unhandled, true
	}
	return nil, false
}

// messages
type journalErrMsg struct{ error }
