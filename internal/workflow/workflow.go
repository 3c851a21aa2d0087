// Package workflow owns the onboarding state machine: which step of the
// request → signup → login → app funnel is active, which transitions are
// legal, and how approval-service replies map onto them.
package workflow

import (
	"errors"
	"fmt"
)

// Step is the single active surface of the client.
type Step string

const (
	StepRequest Step = "request"
	StepSignup  Step = "signup"
	StepLogin   Step = "login"
	StepApp     Step = "app"
)

// Panel is the sub-surface within StepApp.
type Panel string

const (
	PanelPreferences Panel = "preferences"
	PanelResults     Panel = "results"
)

// transitions is the exhaustive table. A pair absent here is rejected; there
// are no ad-hoc panel toggles outside it.
var transitions = map[Step][]Step{
	StepRequest: {StepSignup, StepLogin},
	StepSignup:  {StepLogin, StepRequest},
	StepLogin:   {StepApp, StepRequest},
	StepApp:     {StepLogin, StepRequest},
}

// Allowed reports whether from → to is in the transition table. Staying put
// is always allowed.
func Allowed(from, to Step) bool {
	if from == to {
		return true
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Machine tracks the current step and app panel. It is owned by the UI loop
// and never touched concurrently.
type Machine struct {
	step  Step
	panel Panel
}

// NewMachine starts in StepApp when a persisted token already exists,
// otherwise at the request step.
func NewMachine(authenticated bool) *Machine {
	step := StepRequest
	if authenticated {
		step = StepApp
	}
	return &Machine{step: step, panel: PanelPreferences}
}

func (m *Machine) Step() Step   { return m.step }
func (m *Machine) Panel() Panel { return m.panel }

// To moves to the next step, rejecting pairs outside the table. Entering the
// app always lands on the preferences panel.
func (m *Machine) To(next Step) error {
	if !Allowed(m.step, next) {
		return fmt.Errorf("workflow: transition %s -> %s not allowed", m.step, next)
	}
	if next == StepApp && m.step != StepApp {
		m.panel = PanelPreferences
	}
	m.step = next
	return nil
}

// ShowPanel switches between preferences and results; only legal inside the
// app step.
func (m *Machine) ShowPanel(p Panel) error {
	if m.step != StepApp {
		return fmt.Errorf("workflow: panel %s requires the app step, currently %s", p, m.step)
	}
	m.panel = p
	return nil
}

// ValidateSignup gates the signup form locally; failures never reach the
// network.
func ValidateSignup(password, confirm string) error {
	if len(password) < 8 {
		return errors.New("Password must be at least 8 characters.")
	}
	if password != confirm {
		return errors.New("Passwords do not match.")
	}
	return nil
}
