package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/jask/countdemo/internal/config"
	"github.com/jask/countdemo/internal/counter"
	"github.com/jask/countdemo/internal/database/repository"
)

type fakeRecorder struct {
	sessions []repository.Session
	actions  []repository.ActionEntry
	errs     chan error
}

func newFakeRecorder() *fakeRecorder { return &fakeRecorder{errs: make(chan error, 1)} }

func (f *fakeRecorder) Session(s repository.Session)    { f.sessions = append(f.sessions, s) }
func (f *fakeRecorder) Action(e repository.ActionEntry) { f.actions = append(f.actions, e) }
func (f *fakeRecorder) Errors() <-chan error            { return f.errs }

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, a *App, msgs ...tea.Msg) {
	t.Helper()
	for _, msg := range msgs {
		model, _ := a.Update(msg)
		require.Same(t, a, model)
	}
}

func typeText(t *testing.T, a *App, text string) {
	t.Helper()
	for _, r := range text {
		press(t, a, runeKey(string(r)))
	}
}

func smallConfig() config.Config {
	cfg := config.Default()
	cfg.Counter.Iterations = 10
	return cfg
}

func TestMountComputesInitialCount(t *testing.T) {
	a := New(context.Background(), smallConfig())
	require.Equal(t, int64(45), a.InitialCount())
	require.Equal(t, counter.State{Count: 45}, a.State())
	require.Equal(t, 1, a.InitializerRuns())
}

func TestScenarioDefaultIterations(t *testing.T) {
	if testing.Short() {
		t.Skip("full initializer loop")
	}
	a := New(context.Background(), config.Default())
	require.Equal(t, int64(49999995000000), a.State().Count)

	press(t, a, runeKey("+"), runeKey("+"), runeKey("+"))
	require.Equal(t, int64(49999995000003), a.State().Count)
	require.Contains(t, a.View(), "Count: 49999995000003")

	press(t, a, runeKey("r"))
	require.Equal(t, int64(49999995000000), a.State().Count)
	require.Equal(t, 1, a.InitializerRuns())
}

func TestInitializerRunsOncePerMount(t *testing.T) {
	calls := 0
	a := New(context.Background(), smallConfig(), WithInitializer(func() int64 {
		calls++
		return 100
	}))
	for i := 0; i < 50; i++ {
		press(t, a, runeKey("+"), tea.KeyMsg{Type: tea.KeyDown}, runeKey("r"))
		_ = a.View()
	}
	require.Equal(t, 1, calls)
	require.Equal(t, int64(100), a.State().Count)

	press(t, a, runeKey("m"))
	require.Equal(t, 2, calls)
	require.Equal(t, 2, a.InitializerRuns())
}

func TestResetUsesMountValueAfterChanges(t *testing.T) {
	a := New(context.Background(), smallConfig())
	press(t, a, runeKey("-"), runeKey("-"), runeKey("-"), runeKey("-"), tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, int64(42), a.State().Count)
	press(t, a, runeKey("r"))
	require.Equal(t, int64(45), a.State().Count)

	press(t, a, runeKey("r"))
	require.Contains(t, a.View(), "state unchanged")
}

func TestCommandPromptDispatches(t *testing.T) {
	a := New(context.Background(), smallConfig())

	press(t, a, runeKey(":"))
	typeText(t, a, "reset 7")
	press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, int64(7), a.State().Count)

	press(t, a, runeKey(":"))
	typeText(t, a, "increment")
	press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, int64(8), a.State().Count)

	press(t, a, runeKey(":"))
	typeText(t, a, "reset")
	press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, int64(45), a.State().Count)

	press(t, a, runeKey(":"))
	typeText(t, a, "+++")
	press(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, int64(45), a.State().Count)
	require.NoError(t, a.Failure())
}

func TestCommandPromptParseErrorIsStatusOnly(t *testing.T) {
	a := New(context.Background(), smallConfig())
	press(t, a, runeKey(":"))
	typeText(t, a, "reset x")
	press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.NoError(t, a.Failure())
	require.Contains(t, a.View(), "parse payload")
}

func TestCommandPromptHintsUnknownTag(t *testing.T) {
	a := New(context.Background(), smallConfig())
	press(t, a, runeKey(":"))
	typeText(t, a, "Reset 3")
	require.NotContains(t, a.View(), "unknown action")

	press(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	press(t, a, runeKey(":"))
	typeText(t, a, "decremnt")
	require.Contains(t, a.View(), `unknown action "decremnt", did you mean "decrement"?`)

	press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotContains(t, a.View(), "unknown action")
	_, ok := a.UnhandledAction()
	require.True(t, ok)
}

func TestUnhandledActionTripsBoundary(t *testing.T) {
	rec := newFakeRecorder()
	a := New(context.Background(), smallConfig(), WithRecorder(rec))

	press(t, a, runeKey(":"))
	typeText(t, a, "incremnt")
	press(t, a, tea.KeyMsg{Type: tea.KeyEnter})

	unhandled, ok := a.UnhandledAction()
	require.True(t, ok)
	require.Equal(t, counter.ActionType("incremnt"), unhandled.Tag)
	require.Equal(t, int64(45), a.State().Count)

	view := a.View()
	require.Contains(t, view, "Something went wrong")
	require.Contains(t, view, "unhandled action type: incremnt")
	require.Contains(t, view, `did you mean "increment"?`)

	// Counter keys are swallowed until remount.
	press(t, a, runeKey("+"))
	require.Equal(t, int64(45), a.State().Count)

	press(t, a, runeKey("m"))
	require.NoError(t, a.Failure())
	press(t, a, runeKey("+"))
	require.Equal(t, int64(46), a.State().Count)

	require.Len(t, rec.sessions, 2)
	require.Len(t, rec.actions, 2)
	require.Equal(t, "incremnt", rec.actions[0].Tag)
	require.NotNil(t, rec.actions[0].Error)
	require.Nil(t, rec.actions[0].CountAfter)
	require.Equal(t, rec.sessions[1].ID, rec.actions[1].SessionID)
	require.Equal(t, 1, rec.actions[1].Seq)
}

func TestRecorderEntries(t *testing.T) {
	rec := newFakeRecorder()
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	a := New(context.Background(), smallConfig(), WithRecorder(rec))
	a.now = func() time.Time { return now }

	press(t, a, runeKey("+"), runeKey("r"))
	require.Len(t, rec.sessions, 1)
	require.Equal(t, int64(45), rec.sessions[0].InitialCount)
	require.Equal(t, int64(10), rec.sessions[0].Iterations)

	require.Len(t, rec.actions, 2)
	inc, reset := rec.actions[0], rec.actions[1]
	require.Equal(t, "increment", inc.Tag)
	require.Nil(t, inc.Payload)
	require.Equal(t, int64(46), *inc.CountAfter)
	require.Equal(t, "reset", reset.Tag)
	require.Equal(t, int64(45), *reset.Payload)
	require.Equal(t, 2, reset.Seq)
	require.Equal(t, now, reset.CreatedAt)
}

func TestJournalErrorsSurfaceInStatus(t *testing.T) {
	rec := newFakeRecorder()
	a := New(context.Background(), smallConfig(), WithRecorder(rec))
	cmd := a.Init()
	require.NotNil(t, cmd)

	rec.errs <- context.DeadlineExceeded
	msg := cmd()
	_, next := a.Update(msg)
	require.NotNil(t, next)
	require.Contains(t, a.View(), "journal: context deadline exceeded")
}

func TestViewShowsTriggersAndClipsToWidth(t *testing.T) {
	a := New(context.Background(), smallConfig())
	view := a.View()
	for _, want := range []string{"Count: 45", "Increment", "Decrement", "Reset", "initializer runs: 1"} {
		require.Contains(t, view, want)
	}

	press(t, a, tea.WindowSizeMsg{Width: 20, Height: 10})
	for _, line := range strings.Split(a.View(), "\n") {
		require.LessOrEqual(t, ansi.StringWidth(line), 20, ansi.Strip(line))
	}
}

func TestQuit(t *testing.T) {
	a := New(context.Background(), smallConfig())
	_, cmd := a.Update(runeKey("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}
