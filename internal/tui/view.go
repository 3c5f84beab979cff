package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/countdemo/internal/counter"
)

func (a *App) View() string {
	var body string
	if a.failure != nil {
		body = a.renderBoundary()
	} else {
		body = a.renderCounter()
	}

	sections := []string{titleStyle.Render(a.cfg.UI.Title), "", body, ""}
	if a.prompting {
		sections = append(sections, promptStyle.Render(a.input.View()))
		if hint := a.promptHint(); hint != "" {
			sections = append(sections, suggestStyle.Render(hint))
		}
	}
	if a.status != "" {
		sections = append(sections, statusStyle.Render(a.status))
	}
	sections = append(sections, a.renderStats(), a.renderFooter(a.footerBindings()))
	return a.clip(strings.Join(sections, "\n"))
}

func (a *App) renderCounter() string {
	count := countStyle.Render(a.store.State().String())
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		a.renderButton("Increment", counter.ActionIncrement),
		" ",
		a.renderButton("Decrement", counter.ActionDecrement),
		" ",
		a.renderButton("Reset", counter.ActionReset),
	)
	return count + "\n" + buttons
}

func (a *App) renderButton(label string, t counter.ActionType) string {
	if a.lastAction == t {
		return pressedStyle.Render(label)
	}
	return buttonStyle.Render(label)
}

// renderBoundary is the fallback shown in place of the counter once a
// dispatch has failed.
func (a *App) renderBoundary() string {
	lines := []string{boundaryTitle.Render("Something went wrong"), a.failure.Error()}
	if unhandled, ok := a.UnhandledAction(); ok {
		if s := unhandled.Suggestion(); s != "" {
			lines = append(lines, suggestStyle.Render(fmt.Sprintf("did you mean %q?", s)))
		}
	}
	remount := a.keys.Remount.Help().Key
	lines = append(lines, fmt.Sprintf("press %s to remount the counter", remount))
	return boundaryStyle.Render(strings.Join(lines, "\n"))
}

// promptHint warns about a tag Reduce will reject. Enter still dispatches it.
func (a *App) promptHint() string {
	fields := strings.Fields(a.input.Value())
	if len(fields) == 0 {
		return ""
	}
	tag := counter.ActionType(strings.ToLower(fields[0]))
	if tag.Valid() {
		return ""
	}
	hint := fmt.Sprintf("unknown action %q", tag)
	if s := (&counter.UnhandledActionError{Tag: tag}).Suggestion(); s != "" {
		hint += fmt.Sprintf(", did you mean %q?", s)
	}
	return hint
}

func (a *App) renderStats() string {
	session := a.sessionID
	if len(session) > 8 {
		session = session[:8]
	}
	return statsStyle.Render(fmt.Sprintf(
		"initializer runs: %d  mounts: %d  dispatches: %d  last init: %s  session: %s",
		a.initial.Runs(), a.mounts, a.dispatches(), a.initial.LastCost().Round(time.Millisecond), session,
	))
}

func (a *App) dispatches() int {
	if a.store == nil {
		return 0
	}
	return a.store.Dispatches()
}

func (a *App) footerBindings() []key.Binding {
	switch {
	case a.prompting:
		return a.keys.promptHelp()
	case a.failure != nil:
		return a.keys.boundaryHelp()
	default:
		return a.keys.counterHelp()
	}
}

func (a *App) renderFooter(bindings []key.Binding) string {
	bg := colorMantle
	keyStyle := helpKeyStyle.Background(bg)
	descStyle := helpDescStyle.Background(bg)
	space := lipgloss.NewStyle().Background(bg).Render(" ")
	sep := lipgloss.NewStyle().Background(bg).Render("  ")

	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, keyStyle.Render(help.Key)+space+descStyle.Render(help.Desc))
	}
	content := strings.Join(parts, sep)

	if a.width == 0 {
		return footerStyle.Render(content)
	}
	return footerStyle.Width(a.width).Render(content)
}

// clip truncates every line to the terminal width once it is known.
func (a *App) clip(s string) string {
	if a.width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if ansi.StringWidth(line) > a.width {
			lines[i] = ansi.Truncate(line, a.width, "…")
		}
	}
	return strings.Join(lines, "\n")
}
