package workflow

import "testing"

func TestTransitionTable(t *testing.T) {
	allowed := []struct{ from, to Step }{
		{StepRequest, StepSignup},
		{StepRequest, StepLogin},
		{StepSignup, StepLogin},
		{StepSignup, StepRequest},
		{StepLogin, StepApp},
		{StepLogin, StepRequest},
		{StepApp, StepLogin},
		{StepApp, StepRequest},
	}
	for _, tc := range allowed {
		if !Allowed(tc.from, tc.to) {
			t.Fatalf("%s -> %s should be allowed", tc.from, tc.to)
		}
	}

	rejected := []struct{ from, to Step }{
		{StepRequest, StepApp},
		{StepSignup, StepApp},
		{StepApp, StepSignup},
		{StepLogin, StepSignup},
	}
	for _, tc := range rejected {
		if Allowed(tc.from, tc.to) {
			t.Fatalf("%s -> %s should be rejected", tc.from, tc.to)
		}
	}
}

func TestMachineRejectsOffTableMoves(t *testing.T) {
	m := NewMachine(false)
	if m.Step() != StepRequest {
		t.Fatalf("initial step = %s", m.Step())
	}
	if err := m.To(StepApp); err == nil {
		t.Fatal("request -> app must be rejected")
	}
	if m.Step() != StepRequest {
		t.Fatalf("step changed after rejected transition: %s", m.Step())
	}
}

func TestMachineAuthenticatedStartsInApp(t *testing.T) {
	m := NewMachine(true)
	if m.Step() != StepApp {
		t.Fatalf("step = %s, want %s", m.Step(), StepApp)
	}
	if m.Panel() != PanelPreferences {
		t.Fatalf("panel = %s, want %s", m.Panel(), PanelPreferences)
	}
}

func TestEnteringAppResetsPanel(t *testing.T) {
	m := NewMachine(true)
	if err := m.ShowPanel(PanelResults); err != nil {
		t.Fatalf("show results: %v", err)
	}
	if err := m.To(StepLogin); err != nil {
		t.Fatalf("app -> login: %v", err)
	}
	if err := m.To(StepApp); err != nil {
		t.Fatalf("login -> app: %v", err)
	}
	if m.Panel() != PanelPreferences {
		t.Fatalf("panel after re-entering app = %s", m.Panel())
	}
}

func TestShowPanelOutsideApp(t *testing.T) {
	m := NewMachine(false)
	if err := m.ShowPanel(PanelResults); err == nil {
		t.Fatal("panels must require the app step")
	}
}

func TestValidateSignup(t *testing.T) {
	if err := ValidateSignup("short", "short"); err == nil || err.Error() != "Password must be at least 8 characters." {
		t.Fatalf("short password: %v", err)
	}
	if err := ValidateSignup("longenough", "different"); err == nil || err.Error() != "Passwords do not match." {
		t.Fatalf("mismatch: %v", err)
	}
	if err := ValidateSignup("longenough", "longenough"); err != nil {
		t.Fatalf("valid signup rejected: %v", err)
	}
}
