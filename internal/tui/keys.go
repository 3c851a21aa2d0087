package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/findmyhome/internal/prefs"
	"github.com/jask/findmyhome/internal/workflow"
)

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.String() == "ctrl+c" {
		return a, tea.Quit
	}
	switch a.machine.Step() {
	case workflow.StepRequest:
		return a.handleRequestKey(m)
	case workflow.StepSignup:
		return a.handleSignupKey(m)
	case workflow.StepLogin:
		return a.handleLoginKey(m)
	default:
		if a.machine.Panel() == workflow.PanelResults {
			return a.handleResultsKey(m)
		}
		return a.handlePreferencesKey(m)
	}
}

func (a *App) handleRequestKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "tab", "down":
		a.requestForm.cycle(1)
		return a, nil
	case "shift+tab", "up":
		a.requestForm.cycle(-1)
		return a, nil
	case "enter":
		return a, a.submitRequest()
	case "ctrl+l":
		// "I already have access" shortcut
		a.clearStatus()
		if email := a.requestForm.value(0); email != "" {
			a.setEmail(email)
		}
		a.toStep(workflow.StepLogin)
		return a, nil
	}
	return a, a.requestForm.update(m)
}

func (a *App) handleSignupKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc":
		a.clearStatus()
		a.toStep(workflow.StepRequest)
		return a, nil
	case "tab", "down":
		a.signupForm.cycle(1)
		return a, nil
	case "shift+tab", "up":
		a.signupForm.cycle(-1)
		return a, nil
	case "enter":
		return a, a.submitSignup()
	}
	return a, a.signupForm.update(m)
}

func (a *App) handleLoginKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc":
		a.clearStatus()
		if email := a.loginForm.value(0); email != "" {
			a.setEmail(email)
		}
		a.toStep(workflow.StepRequest)
		return a, nil
	case "tab", "down":
		a.loginForm.cycle(1)
		return a, nil
	case "shift+tab", "up":
		a.loginForm.cycle(-1)
		return a, nil
	case "enter":
		return a, a.submitLogin()
	}
	return a, a.loginForm.update(m)
}

func (a *App) handlePreferencesKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "tab":
		a.cityQuery = ""
		a.prefForm.cycle(1)
		return a, nil
	case "shift+tab":
		a.cityQuery = ""
		a.prefForm.cycle(-1)
		return a, nil
	case "enter":
		return a, a.submitPreferences()
	case "ctrl+r":
		return a, a.refreshPreferences()
	case "ctrl+g":
		return a, a.startRecommendations()
	case "ctrl+x":
		a.logout()
		return a, nil
	}

	if a.prefForm.focus == len(a.prefForm.inputs) {
		return a.handleCityPickerKey(m)
	}
	return a, a.prefForm.update(m)
}

// handleCityPickerKey drives the checkbox list of allowed cities. Typing
// letters jumps to the closest city name.
func (a *App) handleCityPickerKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "up", "k":
		a.cityQuery = ""
		if a.cityCursor > 0 {
			a.cityCursor--
		}
		return a, nil
	case "down", "j":
		a.cityQuery = ""
		if a.cityCursor < len(prefs.AllowedCities)-1 {
			a.cityCursor++
		}
		return a, nil
	case " ":
		city := prefs.AllowedCities[a.cityCursor]
		a.citySelected[city] = !a.citySelected[city]
		return a, nil
	case "esc", "backspace":
		a.cityQuery = ""
		return a, nil
	}

	if m.Type == tea.KeyRunes {
		a.cityQuery += string(m.Runes)
		if city, ok := prefs.ClosestCity(a.cityQuery); ok {
			for i, c := range prefs.AllowedCities {
				if c == city {
					a.cityCursor = i
					break
				}
			}
		}
	}
	return a, nil
}

func (a *App) handleResultsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q":
		return a, tea.Quit
	case "e", "esc":
		a.clearStatus()
		_ = a.machine.ShowPanel(workflow.PanelPreferences)
		return a, nil
	case "up", "k":
		if a.propCursor > 0 {
			a.propCursor--
		}
		return a, nil
	case "down", "j":
		if a.propCursor < len(a.render.Properties)-1 {
			a.propCursor++
		}
		return a, nil
	case "ctrl+g":
		return a, a.startRecommendations()
	case "ctrl+x":
		a.logout()
		return a, nil
	}
	return a, nil
}
