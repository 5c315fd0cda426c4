package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/wodforge/internal/teatest"
	"github.com/alexanderramin/wodforge/internal/wod"
)

func newSessionDriver(t *testing.T, planner Planner) *teatest.Driver {
	t.Helper()
	d := teatest.New(t, newSessionModel(testApp(planner)), teatest.WithSize(100, 40))
	d.DrainInit()
	return d
}

func sessionState(t *testing.T, d *teatest.Driver) *sessionModel {
	t.Helper()
	m, ok := d.Model.(*sessionModel)
	require.True(t, ok, "driver should hold a *sessionModel, got %T", d.Model)
	return m
}

// completeContextForm drives the two-field context form: type a value (or
// leave it as is) and Enter through each field. Enter past the last field
// submits the form and starts the run.
func completeContextForm(d *teatest.Driver, injury, goals string) {
	if injury != "" {
		d.Type(injury)
	}
	d.PressEnter()
	if goals != "" {
		d.Type(goals)
	}
	d.PressEnter()
}

func TestSessionModel_InitialView(t *testing.T) {
	d := newSessionDriver(t, &scriptedPlanner{res: samplePlanResult()})

	view := d.View()
	assert.Contains(t, view, "WODFORGE")
	assert.Contains(t, view, "What do you want to train today?")
	assert.Contains(t, view, "I want to train my endurance")
	assert.Contains(t, view, "enter: continue")
}

func TestSessionModel_FullFlow(t *testing.T) {
	planner := &scriptedPlanner{res: samplePlanResult()}
	d := newSessionDriver(t, planner)

	d.Type("20 minute emom")
	d.PressEnter()

	view := d.View()
	assert.Contains(t, view, "Request:")
	assert.Contains(t, view, "20 minute emom")
	assert.Contains(t, view, "Injury (optional)")

	completeContextForm(d, "knee pain", "strength, mobility")

	require.Equal(t, phaseResult, sessionState(t, d).phase)
	view = d.View()
	assert.Contains(t, view, "SESSION PLAN")
	assert.Contains(t, view, "Engine Room")
	assert.Contains(t, view, "esc: new request")

	assert.Equal(t, "20 minute emom", planner.lastRequest())
	userCtx := planner.lastContext()
	assert.Equal(t, "knee pain", wod.Str(userCtx, "injury"))
	assert.Equal(t, []string{"strength", "mobility"}, wod.StrSlice(userCtx, "goals"))
}

func TestSessionModel_EmptyRequestRunsExample(t *testing.T) {
	planner := &scriptedPlanner{res: samplePlanResult()}
	d := newSessionDriver(t, planner)

	d.PressEnter()
	completeContextForm(d, "", "")

	require.Equal(t, phaseResult, sessionState(t, d).phase)
	assert.Equal(t, exampleRequest, planner.lastRequest())

	userCtx := planner.lastContext()
	assert.NotContains(t, userCtx, "injury")
	assert.NotContains(t, userCtx, "goals")
}

func TestSessionModel_SlowRunShowsSpinner(t *testing.T) {
	planner := &scriptedPlanner{res: samplePlanResult(), delay: 50 * time.Millisecond}
	d := newSessionDriver(t, planner)

	d.PressEnter()
	completeContextForm(d, "", "")

	m := sessionState(t, d)
	require.Equal(t, phaseRunning, m.phase)
	view := d.View()
	assert.Contains(t, view, "Generating plan...")
	assert.Contains(t, view, "q: quit")

	d.Send(spinnerTickMsg{})
	assert.Equal(t, 1, sessionState(t, d).frame)

	d.Send(planReadyMsg{res: samplePlanResult()})
	assert.Equal(t, phaseResult, sessionState(t, d).phase)
	assert.Contains(t, d.View(), "SESSION PLAN")
}

func TestSessionModel_RunningIgnoresOtherKeysButQQuits(t *testing.T) {
	planner := &scriptedPlanner{res: samplePlanResult(), delay: 50 * time.Millisecond}
	d := newSessionDriver(t, planner)

	d.PressEnter()
	completeContextForm(d, "", "")
	require.Equal(t, phaseRunning, sessionState(t, d).phase)

	d.PressKey('x')
	assert.Equal(t, phaseRunning, sessionState(t, d).phase)
	assert.False(t, d.Quitting)

	d.PressKey('q')
	assert.True(t, d.Quitting)
}

func TestSessionModel_PlannerErrorReturnsToRequest(t *testing.T) {
	planner := &scriptedPlanner{err: errors.New("model endpoint offline")}
	d := newSessionDriver(t, planner)

	d.Type("leg day")
	d.PressEnter()
	completeContextForm(d, "", "")

	m := sessionState(t, d)
	assert.Equal(t, phaseRequest, m.phase)
	assert.False(t, d.Quitting)

	view := d.View()
	assert.Contains(t, view, "Error: model endpoint offline")
	assert.Contains(t, view, "What do you want to train today?")
}

func TestSessionModel_EscQuitsFromRequest(t *testing.T) {
	d := newSessionDriver(t, &scriptedPlanner{res: samplePlanResult()})

	d.PressEsc()
	assert.True(t, d.Quitting)
}

func TestSessionModel_CtrlCQuitsFromAnyPhase(t *testing.T) {
	d := newSessionDriver(t, &scriptedPlanner{res: samplePlanResult()})

	d.Type("leg day")
	d.PressEnter()
	require.Equal(t, phaseContext, sessionState(t, d).phase)

	d.PressCtrlC()
	assert.True(t, d.Quitting)
}

func TestSessionModel_EscFromContextKeepsRequestText(t *testing.T) {
	d := newSessionDriver(t, &scriptedPlanner{res: samplePlanResult()})

	d.Type("leg day")
	d.PressEnter()
	require.Equal(t, phaseContext, sessionState(t, d).phase)

	d.PressEsc()
	m := sessionState(t, d)
	assert.Equal(t, phaseRequest, m.phase)
	assert.Contains(t, d.View(), "leg day")
}

func TestSessionModel_EscFromResultEditsRequest(t *testing.T) {
	planner := &scriptedPlanner{res: samplePlanResult()}
	d := newSessionDriver(t, planner)

	d.Type("row intervals")
	d.PressEnter()
	completeContextForm(d, "knee pain", "")
	require.Equal(t, phaseResult, sessionState(t, d).phase)

	d.PressEsc()
	m := sessionState(t, d)
	assert.Equal(t, phaseRequest, m.phase)
	assert.Contains(t, d.View(), "row intervals")

	// Rerun with the kept request. The context fields persist, so two
	// Enters accept the previous injury.
	d.PressEnter()
	completeContextForm(d, "", "")

	assert.Equal(t, 2, planner.calls())
	assert.Equal(t, "row intervals", planner.lastRequest())
	assert.Equal(t, "knee pain", wod.Str(planner.lastContext(), "injury"))
}

func TestSessionModel_QKeyQuitsFromResult(t *testing.T) {
	d := newSessionDriver(t, &scriptedPlanner{res: samplePlanResult()})

	d.PressEnter()
	completeContextForm(d, "", "")
	require.Equal(t, phaseResult, sessionState(t, d).phase)

	d.PressKey('q')
	assert.True(t, d.Quitting)
}

func TestSessionModel_ResultViewportScrolls(t *testing.T) {
	d := teatest.New(t, newSessionModel(testApp(&scriptedPlanner{res: samplePlanResult()})),
		teatest.WithSize(80, 10))
	d.DrainInit()

	d.PressEnter()
	completeContextForm(d, "", "")
	require.Equal(t, phaseResult, sessionState(t, d).phase)

	// A 10-row terminal leaves a 5-line viewport, far smaller than the
	// rendered plan box.
	assert.Contains(t, d.View(), "[TOP]")

	d.PressDown()
	assert.NotContains(t, d.View(), "[TOP]")
}

func TestSplitGoals(t *testing.T) {
	tests := []struct {
		csv  string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"strength", []string{"strength"}},
		{" build strength , move better ", []string{"build strength", "move better"}},
		{"a,,b,", []string{"a", "b"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, splitGoals(tt.csv), "csv=%q", tt.csv)
	}
}
