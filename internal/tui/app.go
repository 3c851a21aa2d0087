// Package tui is the terminal front end: a bubbletea program that drives
// the onboarding workflow and the preferences/results panels. All decision
// logic lives in the workflow, prefs and project packages; this package only
// wires user actions to backend calls and projects the outcomes.
package tui

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/findmyhome/internal/api"
	"github.com/jask/findmyhome/internal/prefs"
	"github.com/jask/findmyhome/internal/project"
	"github.com/jask/findmyhome/internal/workflow"
)

// Backend is the slice of the API client the TUI consumes. Kept as an
// interface so tests can drive the workflow with a stub.
type Backend interface {
	RequestApproval(ctx context.Context, email, reason string) (string, error)
	Signup(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Profile(ctx context.Context) (api.Profile, error)
	MyChats(ctx context.Context) ([]api.ChatSession, error)
	MyPreferences(ctx context.Context) (*prefs.Preferences, error)
	SavePreferences(ctx context.Context, p prefs.Preferences) error
	StartRecommendations(ctx context.Context) (api.RecommendationRun, error)
}

// Session is the token store surface the TUI needs.
type Session interface {
	Token() string
	HasToken() bool
	SetToken(string) error
	Clear() error
}

const (
	noteNoChats    = "No chats yet. Save your preferences to start recommendations."
	noteHasChats   = "We found previous chats. You can update preferences or start new recommendations."
	noteChatsError = "Unable to load chat history. You can still set preferences."
)

// App ties together the workflow machine, forms and backend calls.
type App struct {
	ctx       context.Context
	backend   Backend
	session   Session
	machine   *workflow.Machine
	projector project.Projector
	log       *zap.Logger

	statusKind workflow.Tone
	statusText string

	email           string
	showCheckStatus bool

	requestForm form // email, reason
	signupForm  form // email, password, confirm
	loginForm   form // email, password
	prefForm    form // min price, max price, min area, max area (+ city picker slot)

	citySelected map[string]bool
	cityCursor   int
	cityQuery    string

	// one in-flight request per trigger control
	busyRequest bool
	busySignup  bool
	busyLogin   bool
	busySave    bool
	busyLoad    bool
	busyStart   bool
	spinner     spinner.Model

	profileEmail string
	hasChats     bool
	prefsNote    string
	preferences  *prefs.Preferences
	threadID     string
	render       project.RenderModel
	propCursor   int

	width, height int
}

// New builds the app. The initial step is the app itself when a token is
// already held, otherwise the access-request step.
func New(ctx context.Context, backend Backend, sess Session, projector project.Projector, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}

	a := &App{
		ctx:          ctx,
		backend:      backend,
		session:      sess,
		machine:      workflow.NewMachine(sess.HasToken()),
		projector:    projector,
		log:          log,
		citySelected: map[string]bool{},
		prefsNote:    noteNoChats,
		render:       project.RenderModel{Empty: true},
	}

	a.requestForm = form{inputs: []textinput.Model{
		newInput("you@example.com", 40),
		newInput("Why do you want access? (optional)", 60),
	}}
	a.signupForm = form{inputs: []textinput.Model{
		newInput("you@example.com", 40),
		newPasswordInput("Password (min 8 characters)"),
		newPasswordInput("Confirm password"),
	}}
	a.loginForm = form{inputs: []textinput.Model{
		newInput("you@example.com", 40),
		newPasswordInput("Password"),
	}}
	a.prefForm = form{inputs: []textinput.Model{
		newInput("Min price", 20),
		newInput("Max price", 20),
		newInput("Min area (sq ft)", 20),
		newInput("Max area (sq ft)", 20),
	}, extra: 1}

	a.requestForm.focusFirst()
	a.signupForm.focusFirst()
	a.loginForm.focusFirst()
	a.prefForm.focusFirst()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	a.spinner = sp

	return a
}

func (a *App) Init() tea.Cmd {
	if a.machine.Step() == workflow.StepApp {
		return tea.Batch(textinput.Blink, a.enterAppCmd())
	}
	return textinput.Blink
}

// messages

type approvalMsg struct {
	message string
	err     error
}

type signupMsg struct {
	message string
	err     error
}

type loginMsg struct {
	token string
	err   error
}

type profileMsg struct {
	profile api.Profile
	err     error
}

type overviewMsg struct {
	hasChats bool
	err      error
}

type prefsLoadedMsg struct {
	prefs    *prefs.Preferences
	announce bool
	err      error
}

type prefsSavedMsg struct {
	saved prefs.Preferences
	err   error
}

type recsMsg struct {
	run api.RecommendationRun
	err error
}

// commands

func (a *App) requestApprovalCmd(email, reason string) tea.Cmd {
	return func() tea.Msg {
		msg, err := a.backend.RequestApproval(a.ctx, email, reason)
		return approvalMsg{message: msg, err: err}
	}
}

func (a *App) signupCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		msg, err := a.backend.Signup(a.ctx, email, password)
		return signupMsg{message: msg, err: err}
	}
}

func (a *App) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		token, err := a.backend.Login(a.ctx, email, password)
		return loginMsg{token: token, err: err}
	}
}

func (a *App) profileCmd() tea.Cmd {
	return func() tea.Msg {
		p, err := a.backend.Profile(a.ctx)
		return profileMsg{profile: p, err: err}
	}
}

func (a *App) overviewCmd() tea.Cmd {
	return func() tea.Msg {
		chats, err := a.backend.MyChats(a.ctx)
		return overviewMsg{hasChats: len(chats) > 0, err: err}
	}
}

func (a *App) loadPreferencesCmd(announce bool) tea.Cmd {
	return func() tea.Msg {
		p, err := a.backend.MyPreferences(a.ctx)
		return prefsLoadedMsg{prefs: p, announce: announce, err: err}
	}
}

func (a *App) savePreferencesCmd(p prefs.Preferences) tea.Cmd {
	return func() tea.Msg {
		err := a.backend.SavePreferences(a.ctx, p)
		return prefsSavedMsg{saved: p, err: err}
	}
}

func (a *App) startRecommendationsCmd() tea.Cmd {
	return func() tea.Msg {
		run, err := a.backend.StartRecommendations(a.ctx)
		return recsMsg{run: run, err: err}
	}
}

// enterAppCmd loads everything the app step shows: profile, chat overview,
// saved preferences. Overview and preference failures are advisory only.
func (a *App) enterAppCmd() tea.Cmd {
	return tea.Batch(a.profileCmd(), a.overviewCmd(), a.loadPreferencesCmd(false))
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(m)

	case spinner.TickMsg:
		if !a.anyBusy() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(m)
		return a, cmd

	case approvalMsg:
		return a.handleApproval(m)

	case signupMsg:
		a.busySignup = false
		if m.err != nil {
			a.setStatus(workflow.ToneError, errText(m.err, "Signup failed."))
			return a, nil
		}
		a.signupForm.inputs[1].SetValue("")
		a.signupForm.inputs[2].SetValue("")
		a.setStatus(workflow.ToneSuccess, m.message+". Please log in to continue.")
		a.toStep(workflow.StepLogin)
		return a, nil

	case loginMsg:
		return a.handleLogin(m)

	case profileMsg:
		if m.err != nil {
			// Token rejected (or profile unreachable): the session is over.
			_ = a.session.Clear()
			a.setStatus(workflow.ToneError, "Session expired. Please log in again.")
			a.toStep(workflow.StepLogin)
			return a, nil
		}
		a.profileEmail = m.profile.Email
		return a, nil

	case overviewMsg:
		if m.err != nil {
			a.prefsNote = noteChatsError
			return a, nil
		}
		a.hasChats = m.hasChats
		if m.hasChats {
			a.prefsNote = noteHasChats
		} else {
			a.prefsNote = noteNoChats
		}
		return a, nil

	case prefsLoadedMsg:
		a.busyLoad = false
		if m.err != nil {
			a.preferences = nil
			if m.announce {
				a.setStatus(workflow.ToneError, errText(m.err, "Failed to load preferences."))
			}
			return a, nil
		}
		a.preferences = m.prefs
		a.fillPreferencesForm(m.prefs)
		if m.announce {
			if m.prefs != nil {
				a.setStatus(workflow.ToneSuccess, "Preferences loaded.")
			} else {
				a.setStatus(workflow.ToneSuccess, "No preferences saved yet.")
			}
		}
		return a, nil

	case prefsSavedMsg:
		a.busySave = false
		if m.err != nil {
			a.setStatus(workflow.ToneError, errText(m.err, "Failed to save preferences."))
			return a, nil
		}
		saved := m.saved
		a.preferences = &saved
		a.setStatus(workflow.ToneSuccess, "Preferences saved.")
		return a, nil

	case recsMsg:
		a.busyStart = false
		if m.err != nil {
			a.setStatus(workflow.ToneError, errText(m.err, "Failed to start recommendations."))
			return a, nil
		}
		a.threadID = m.run.ThreadID
		a.render = a.projector.Project(m.run.State)
		a.propCursor = 0
		_ = a.machine.ShowPanel(workflow.PanelResults)
		a.setStatus(workflow.ToneSuccess, "Recommendations are ready.")
		return a, nil
	}

	return a, nil
}

// handleApproval routes the reply of the approval endpoint. Success keeps
// the user on the request step; errors carry the de facto status protocol
// and may advance the workflow.
func (a *App) handleApproval(m approvalMsg) (tea.Model, tea.Cmd) {
	a.busyRequest = false
	if m.err == nil {
		a.setStatus(workflow.ToneSuccess, m.message+". We will notify you after approval.")
		a.showCheckStatus = true
		return a, nil
	}

	var (
		outcome workflow.ApprovalOutcome
		ok      bool
		apiErr  *api.Error
	)
	if errors.As(m.err, &apiErr) && apiErr.UserStatus != "" {
		outcome, ok = workflow.ClassifyApprovalStatus(apiErr.UserStatus)
	}
	if !ok {
		outcome = workflow.ClassifyApproval(errText(m.err, "Request failed."))
	}

	a.setStatus(outcome.Tone, outcome.Message)
	if outcome.ShowCheckStatus {
		a.showCheckStatus = true
	}
	if outcome.Next != a.machine.Step() {
		a.toStep(outcome.Next)
	}
	return a, nil
}

func (a *App) handleLogin(m loginMsg) (tea.Model, tea.Cmd) {
	a.busyLogin = false
	if m.err != nil {
		a.setStatus(workflow.ToneError, errText(m.err, "Login failed."))
		return a, nil
	}
	if err := a.session.SetToken(m.token); err != nil {
		a.log.Warn("persist token", zap.Error(err))
	}
	a.loginForm.inputs[1].SetValue("")
	a.clearRecommendations()
	a.toStep(workflow.StepApp)
	return a, a.enterAppCmd()
}

// submit handlers (local validation happens here, before any network call)

func (a *App) submitRequest() tea.Cmd {
	if a.busyRequest {
		return nil
	}
	email := strings.TrimSpace(a.requestForm.value(0))
	reason := strings.TrimSpace(a.requestForm.value(1))
	if email == "" {
		a.setStatus(workflow.ToneError, "Please enter your email.")
		return nil
	}
	a.setEmail(email)
	a.clearStatus()
	a.busyRequest = true
	return tea.Batch(a.requestApprovalCmd(email, reason), a.spinner.Tick)
}

func (a *App) submitSignup() tea.Cmd {
	if a.busySignup {
		return nil
	}
	email := strings.TrimSpace(a.signupForm.value(0))
	if email == "" {
		email = a.email
	}
	password := a.signupForm.value(1)
	confirm := a.signupForm.value(2)

	if email == "" {
		a.setStatus(workflow.ToneError, "Missing email for signup.")
		return nil
	}
	if err := workflow.ValidateSignup(password, confirm); err != nil {
		a.setStatus(workflow.ToneError, err.Error())
		return nil
	}

	a.setEmail(email)
	a.clearStatus()
	a.busySignup = true
	return tea.Batch(a.signupCmd(email, password), a.spinner.Tick)
}

func (a *App) submitLogin() tea.Cmd {
	if a.busyLogin {
		return nil
	}
	email := strings.TrimSpace(a.loginForm.value(0))
	password := a.loginForm.value(1)
	if email == "" {
		a.setStatus(workflow.ToneError, "Please enter your email.")
		return nil
	}
	if password == "" {
		a.setStatus(workflow.ToneError, "Please enter your password.")
		return nil
	}
	a.setEmail(email)
	a.clearStatus()
	a.busyLogin = true
	return tea.Batch(a.loginCmd(email, password), a.spinner.Tick)
}

func (a *App) submitPreferences() tea.Cmd {
	if a.busySave {
		return nil
	}
	p := a.readPreferencesForm()
	if err := prefs.Validate(p); err != nil {
		a.setStatus(workflow.ToneError, err.Error())
		return nil
	}
	a.clearStatus()
	a.busySave = true
	return tea.Batch(a.savePreferencesCmd(p), a.spinner.Tick)
}

func (a *App) startRecommendations() tea.Cmd {
	if a.busyStart {
		return nil
	}
	if a.preferences == nil {
		a.setStatus(workflow.ToneError, "Save your preferences before starting.")
		return nil
	}
	a.clearStatus()
	a.busyStart = true
	return tea.Batch(a.startRecommendationsCmd(), a.spinner.Tick)
}

func (a *App) refreshPreferences() tea.Cmd {
	if a.busyLoad {
		return nil
	}
	a.clearStatus()
	a.busyLoad = true
	return tea.Batch(a.loadPreferencesCmd(true), a.spinner.Tick)
}

// logout clears everything a session accumulated and returns to login, no
// matter which panel it is called from.
func (a *App) logout() {
	_ = a.session.Clear()
	a.preferences = nil
	a.hasChats = false
	a.threadID = ""
	a.profileEmail = ""
	a.prefsNote = noteNoChats
	a.clearRecommendations()
	a.resetPreferencesForm()
	a.setStatus(workflow.ToneInfo, "You have been logged out.")
	a.toStep(workflow.StepLogin)
}

// state helpers

func (a *App) toStep(next workflow.Step) {
	if err := a.machine.To(next); err != nil {
		a.log.Warn("rejected transition", zap.Error(err))
		return
	}
	a.log.Info("step", zap.String("to", string(next)))
}

// setEmail mirrors the email across all forms, as the original client does.
func (a *App) setEmail(email string) {
	a.email = email
	a.requestForm.inputs[0].SetValue(email)
	a.signupForm.inputs[0].SetValue(email)
	a.loginForm.inputs[0].SetValue(email)
}

func (a *App) setStatus(kind workflow.Tone, text string) {
	a.statusKind, a.statusText = kind, text
}

func (a *App) clearStatus() {
	a.statusKind, a.statusText = "", ""
}

func (a *App) clearRecommendations() {
	a.render = project.RenderModel{Empty: true}
	a.propCursor = 0
}

func (a *App) anyBusy() bool {
	return a.busyRequest || a.busySignup || a.busyLogin || a.busySave || a.busyLoad || a.busyStart
}

func (a *App) readPreferencesForm() prefs.Preferences {
	var cities []string
	for _, c := range prefs.AllowedCities {
		if a.citySelected[c] {
			cities = append(cities, c)
		}
	}
	return prefs.Preferences{
		MinPrice:        prefs.ParseAmount(a.prefForm.value(0)),
		MaxPrice:        prefs.ParseAmount(a.prefForm.value(1)),
		MinArea:         prefs.ParseAmount(a.prefForm.value(2)),
		MaxArea:         prefs.ParseAmount(a.prefForm.value(3)),
		PreferredCities: cities,
	}
}

func (a *App) fillPreferencesForm(p *prefs.Preferences) {
	if p == nil {
		return
	}
	// inputs hold plain digits, not display formatting
	a.prefForm.inputs[0].SetValue(plainAmount(p.MinPrice))
	a.prefForm.inputs[1].SetValue(plainAmount(p.MaxPrice))
	a.prefForm.inputs[2].SetValue(plainAmount(p.MinArea))
	a.prefForm.inputs[3].SetValue(plainAmount(p.MaxArea))
	a.citySelected = map[string]bool{}
	for _, c := range p.PreferredCities {
		a.citySelected[c] = true
	}
}

func (a *App) resetPreferencesForm() {
	for i := range a.prefForm.inputs {
		a.prefForm.inputs[i].SetValue("")
	}
	a.citySelected = map[string]bool{}
	a.cityCursor = 0
	a.cityQuery = ""
	a.prefForm.focusFirst()
}

// errText prefers the normalized API detail and falls back when the error
// has no useful message.
func errText(err error, fallback string) string {
	if err == nil || strings.TrimSpace(err.Error()) == "" {
		return fallback
	}
	return err.Error()
}

func plainAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
