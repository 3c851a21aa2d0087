package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/findmyhome/internal/prefs"
	"github.com/jask/findmyhome/internal/workflow"
)

// styles
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	faintStyle   = lipgloss.NewStyle().Faint(true)
	activeStyle  = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	cardStyle    = lipgloss.NewStyle().PaddingLeft(2)
)

var stepLabels = []struct {
	step  workflow.Step
	label string
}{
	{workflow.StepRequest, "Request access"},
	{workflow.StepSignup, "Create password"},
	{workflow.StepLogin, "Log in"},
	{workflow.StepApp, "Your home search"},
}

func (a *App) View() string {
	var body string
	switch a.machine.Step() {
	case workflow.StepSignup:
		body = a.renderSignup()
	case workflow.StepLogin:
		body = a.renderLogin()
	case workflow.StepApp:
		if a.machine.Panel() == workflow.PanelResults {
			body = a.renderResults()
		} else {
			body = a.renderPreferences()
		}
	default:
		body = a.renderRequest()
	}

	out := titleStyle.Render("FindMyHome") + "  " + a.renderStepTrail() + "\n\n" + body
	if a.statusText != "" {
		out += "\n\n" + a.renderStatus()
	}
	if a.anyBusy() {
		out += "\n" + a.spinner.View() + faintStyle.Render(" waiting for the server...")
	}
	return out
}

func (a *App) renderStepTrail() string {
	parts := make([]string, 0, len(stepLabels))
	for _, s := range stepLabels {
		if s.step == a.machine.Step() {
			parts = append(parts, activeStyle.Render(s.label))
		} else {
			parts = append(parts, faintStyle.Render(s.label))
		}
	}
	return strings.Join(parts, faintStyle.Render(" > "))
}

func (a *App) renderStatus() string {
	switch a.statusKind {
	case workflow.ToneSuccess:
		return successStyle.Render(a.statusText)
	case workflow.ToneInfo:
		return infoStyle.Render(a.statusText)
	case workflow.ToneWarning:
		return warningStyle.Render(a.statusText)
	default:
		return errorStyle.Render(a.statusText)
	}
}

func (a *App) renderRequest() string {
	out := titleStyle.Render("Request access") + "\n"
	out += "Email\n" + a.requestForm.inputs[0].View() + "\n"
	out += "Reason\n" + a.requestForm.inputs[1].View() + "\n\n"
	if a.showCheckStatus {
		out += faintStyle.Render("Press enter again any time to check your approval status.") + "\n"
	}
	out += faintStyle.Render("[enter] Submit  [ctrl+l] I already have access  [ctrl+c] Quit")
	return out
}

func (a *App) renderSignup() string {
	out := titleStyle.Render("Create password") + "\n"
	out += "Email\n" + a.signupForm.inputs[0].View() + "\n"
	out += "Password\n" + a.signupForm.inputs[1].View() + "\n"
	out += "Confirm password\n" + a.signupForm.inputs[2].View() + "\n\n"
	out += faintStyle.Render("[enter] Sign up  [esc] Back  [ctrl+c] Quit")
	return out
}

func (a *App) renderLogin() string {
	out := titleStyle.Render("Log in") + "\n"
	out += "Email\n" + a.loginForm.inputs[0].View() + "\n"
	out += "Password\n" + a.loginForm.inputs[1].View() + "\n\n"
	out += faintStyle.Render("[enter] Log in  [esc] Back to request  [ctrl+c] Quit")
	return out
}

func (a *App) renderPreferences() string {
	out := titleStyle.Render("Search preferences") + "\n"
	if a.profileEmail != "" {
		out += faintStyle.Render("Signed in as "+a.profileEmail) + "\n"
	}
	out += a.prefsNote + "\n\n"

	labels := []string{"Min price", "Max price", "Min area (sq ft)", "Max area (sq ft)"}
	for i, label := range labels {
		out += fmt.Sprintf("%s\n%s\n", label, a.prefForm.inputs[i].View())
	}

	out += "\nPreferred cities"
	if a.prefForm.focus == len(a.prefForm.inputs) {
		out += faintStyle.Render("  (space toggles, type to jump)")
	}
	out += "\n"
	for i, city := range prefs.AllowedCities {
		marker := " "
		if i == a.cityCursor && a.prefForm.focus == len(a.prefForm.inputs) {
			marker = "▶"
		}
		check := "[ ]"
		if a.citySelected[city] {
			check = "[x]"
		}
		out += fmt.Sprintf("%s %s %s\n", marker, check, city)
	}

	out += "\n"
	for _, line := range a.projector.PreferencesSummary(a.preferences) {
		out += faintStyle.Render(line) + "\n"
	}

	out += "\n" + faintStyle.Render("[tab] Next field  [enter] Save  [ctrl+r] Reload  [ctrl+g] Recommendations  [ctrl+x] Log out  [ctrl+c] Quit")
	return out
}

func (a *App) renderResults() string {
	out := titleStyle.Render("Recommendations") + "\n"
	if a.profileEmail != "" {
		out += faintStyle.Render("Signed in as "+a.profileEmail) + "\n"
	}

	if a.render.Empty {
		out += "\nNo recommendations yet.\n"
	} else {
		if a.render.Question != "" {
			out += "\nYou asked: " + a.render.Question + "\n"
		}
		if a.render.Answer != "" {
			out += a.render.Answer + "\n"
		}
		out += "\n" + activeStyle.Render(a.render.CountLabel()) + "\n"
		if len(a.render.Properties) == 0 {
			out += faintStyle.Render("No recommendations yet.") + "\n"
		}
		for i, card := range a.render.Properties {
			marker := " "
			if i == a.propCursor {
				marker = "▶"
			}
			out += marker + " " + activeStyle.Render(card.Title) + "\n"
			if card.Meta != "" {
				out += cardStyle.Render(card.Meta) + "\n"
			}
			stats := fmt.Sprintf("Price %s  Area %s  Beds %s  Baths %s  Price/sq ft %s",
				card.Price, card.Area, card.Beds, card.Baths, card.PricePerSqft)
			out += cardStyle.Render(stats) + "\n"
			if card.Balcony != "" {
				out += cardStyle.Render(card.Balcony) + "\n"
			}
			if card.Description != "" && i == a.propCursor {
				out += cardStyle.Render(faintStyle.Render(card.Description)) + "\n"
			}
		}
	}

	out += "\n"
	for _, line := range a.projector.PreferencesSummary(a.preferences) {
		out += faintStyle.Render(line) + "\n"
	}

	out += "\n" + faintStyle.Render("[e] Edit preferences  [ctrl+g] New recommendations  [ctrl+x] Log out  [q] Quit")
	return out
}
