package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/alexanderramin/wodforge/internal/cli/formatter"
	"github.com/alexanderramin/wodforge/internal/pipeline"
)

// sessionPhase tracks where the interactive session is in its loop:
// request text, context form, pipeline in flight, rendered plan.
type sessionPhase int

const (
	phaseRequest sessionPhase = iota
	phaseContext
	phaseRunning
	phaseResult
)

type planReadyMsg struct {
	res *pipeline.Result
}

type planFailedMsg struct {
	err error
}

type spinnerTickMsg struct{}

// sessionModel is the bubbletea model behind `wodforge session`. One model
// handles the whole loop; Esc from the result returns to the request input
// with the previous text kept for editing.
type sessionModel struct {
	app *App

	phase   sessionPhase
	input   textinput.Model
	form    *huh.Form
	vp      viewport.Model
	result  *pipeline.Result
	request string

	// Form-bound context fields. They persist across runs so the user only
	// types their injury once.
	injury   string
	goalsCSV string

	width   int
	height  int
	frame   int
	errText string
}

func newSessionModel(app *App) *sessionModel {
	ti := textinput.New()
	ti.Placeholder = exampleRequest
	ti.CharLimit = 300
	ti.Width = 60
	ti.Focus()

	vp := viewport.New(0, 0)
	vp.KeyMap = resultViewportKeyMap()
	vp.MouseWheelEnabled = true

	return &sessionModel{
		app:   app,
		phase: phaseRequest,
		input: ti,
		vp:    vp,
	}
}

// newContextForm builds a fresh context form. huh forms are single-use, so
// one is rebuilt every time the session re-enters the context phase.
func (m *sessionModel) newContextForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Injury (optional)").
				Placeholder("back pain").
				Value(&m.injury),
			huh.NewInput().
				Title("Goals (comma-separated, optional)").
				Placeholder("improve endurance").
				Value(&m.goalsCSV),
		),
	).WithTheme(wodforgeHuhTheme()).WithShowHelp(false)
}

// ── tea.Model interface ──────────────────────────────────────────────────────

func (m *sessionModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = m.resultHeight()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.phase == phaseResult {
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
		return m, nil

	case spinnerTickMsg:
		if m.phase != phaseRunning {
			return m, nil
		}
		m.frame++
		return m, spinnerTick()

	case planReadyMsg:
		m.result = msg.res
		m.phase = phaseResult
		m.vp.Width = m.width
		m.vp.Height = m.resultHeight()
		m.vp.SetContent(formatter.FormatPlan(msg.res))
		m.vp.GotoTop()
		return m, nil

	case planFailedMsg:
		m.errText = msg.err.Error()
		m.phase = phaseRequest
		m.input.Focus()
		return m, textinput.Blink
	}

	// Everything else goes to whichever component is active.
	return m.forward(msg)
}

func (m *sessionModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.phase {

	case phaseRequest:
		switch msg.Type {
		case tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			request := strings.TrimSpace(m.input.Value())
			if request == "" {
				// The placeholder is a real request; Enter on an empty
				// input runs the documented example.
				request = exampleRequest
			}
			m.request = request
			m.errText = ""
			m.input.Blur()
			m.form = m.newContextForm()
			m.phase = phaseContext
			return m, m.form.Init()
		}
		return m.forward(msg)

	case phaseContext:
		if msg.Type == tea.KeyEsc {
			m.phase = phaseRequest
			m.input.Focus()
			return m, textinput.Blink
		}
		return m.forward(msg)

	case phaseRunning:
		if msg.Type == tea.KeyRunes && string(msg.Runes) == "q" {
			return m, tea.Quit
		}
		return m, nil

	case phaseResult:
		switch {
		case msg.Type == tea.KeyEsc:
			m.phase = phaseRequest
			m.input.SetValue(m.request)
			m.input.Focus()
			return m, textinput.Blink
		case msg.Type == tea.KeyRunes && string(msg.Runes) == "q":
			return m, tea.Quit
		}
		return m.forward(msg)
	}

	return m, nil
}

// forward routes a message to the component owning the current phase.
func (m *sessionModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.phase {
	case phaseRequest:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case phaseContext:
		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		if m.form.State == huh.StateCompleted {
			m.phase = phaseRunning
			m.frame = 0
			return m, tea.Batch(cmd, m.runPlan(), spinnerTick())
		}
		return m, cmd

	case phaseResult:
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	}

	return m, nil
}

// runPlan executes the pipeline off the UI goroutine and reports back with
// a single message.
func (m *sessionModel) runPlan() tea.Cmd {
	app, request := m.app, m.request
	injury, goalsCSV := m.injury, m.goalsCSV
	return func() tea.Msg {
		userCtx, err := buildUserContext("", injury, splitGoals(goalsCSV), false)
		if err != nil {
			return planFailedMsg{err: err}
		}
		res, err := app.Planner.Run(context.Background(), request, userCtx)
		if err != nil {
			return planFailedMsg{err: err}
		}
		return planReadyMsg{res: res}
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

// splitGoals turns the comma-separated goals field into a clean list.
func splitGoals(csv string) []string {
	var goals []string
	for _, g := range strings.Split(csv, ",") {
		if g = strings.TrimSpace(g); g != "" {
			goals = append(goals, g)
		}
	}
	return goals
}

// ── rendering ────────────────────────────────────────────────────────────────

func (m *sessionModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header("WODForge"))
	b.WriteString("\n\n")

	switch m.phase {

	case phaseRequest:
		b.WriteString(formatter.Bold("What do you want to train today?"))
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
		if m.errText != "" {
			b.WriteString("\n" + formatter.StyleRed.Render("Error: "+m.errText) + "\n")
		}
		b.WriteString("\n" + m.hints("enter: continue", "esc: quit"))

	case phaseContext:
		b.WriteString(formatter.Dim("Request: ") + formatter.StyleFg.Render(m.request))
		b.WriteString("\n\n")
		b.WriteString(m.form.View())
		b.WriteString("\n" + m.hints("enter: next", "esc: back"))

	case phaseRunning:
		b.WriteString(formatter.Dim("Request: ") + formatter.StyleFg.Render(m.request))
		b.WriteString("\n\n  ")
		b.WriteString(formatter.StylePurple.Render(formatter.SpinnerFrame(m.frame)))
		b.WriteString(" " + formatter.Dim("Generating plan..."))
		b.WriteString("\n\n" + m.hints("q: quit"))

	case phaseResult:
		b.WriteString(m.vp.View())
		b.WriteString("\n" + m.hints(m.scrollIndicator(), "↑↓: scroll", "esc: new request", "q: quit"))
	}

	return b.String()
}

// hints renders the dim key-hint bar shown under every phase.
func (m *sessionModel) hints(parts ...string) string {
	dimmed := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			dimmed = append(dimmed, formatter.Dim(p))
		}
	}
	return strings.Join(dimmed, "  ")
}

// resultHeight returns the viewport height: terminal minus header and hint
// chrome, never below a few usable lines.
func (m *sessionModel) resultHeight() int {
	h := m.height - 5
	if h < 3 {
		h = 3
	}
	return h
}

// scrollIndicator reports the viewport position for the hint bar, empty
// when everything fits.
func (m *sessionModel) scrollIndicator() string {
	if m.vp.TotalLineCount() <= m.vp.Height {
		return ""
	}
	if m.vp.AtTop() {
		return "[TOP]"
	}
	if m.vp.AtBottom() {
		return "[END]"
	}
	return fmt.Sprintf("[%d%%]", int(m.vp.ScrollPercent()*100))
}

// resultViewportKeyMap restricts viewport scrolling to arrow and page keys,
// leaving letters free for the session's own bindings.
func resultViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up")),
		Down:         key.NewBinding(key.WithKeys("down")),
	}
}
