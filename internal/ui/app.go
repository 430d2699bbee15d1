package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/atmos/internal/locate"
	"github.com/five82/atmos/internal/state"
	"github.com/five82/atmos/internal/weather"
)

// Tab is the active top-level page.
type Tab int

const (
	TabDashboard Tab = iota
	TabSettings
)

const (
	// ToastDuration is how long a toast stays on screen.
	ToastDuration = 4 * time.Second

	persistTimeout = 2 * time.Second
)

// Options configures the UI.
type Options struct {
	Context context.Context
	Weather WeatherFetcher
	Summary SummaryFetcher
	Locator Locator
	Store   state.KV
	State   state.State
	Logger  *zap.Logger

	// Optional overrides, mostly for tests.
	ToastDuration   time.Duration
	Now             func() time.Time
	CopyToClipboard func(string) error
}

// detailState tracks the open detail panel. gen increases every time the
// panel opens or closes so late summary results can be recognized.
type detailState struct {
	open    bool
	city    weather.Snapshot
	gen     int
	text    string
	link    string
	loading bool
}

type toast struct {
	id   int
	text string
}

// Model is the root application state for Bubble Tea. It is the only writer
// of the application state; network work runs in commands and reports back
// through messages.
type Model struct {
	// Collaborators
	ctx      context.Context
	weather  WeatherFetcher
	summary  SummaryFetcher
	locator  Locator
	store    state.KV
	log      *zap.Logger
	now      func() time.Time
	copyText func(string) error
	toastTTL time.Duration

	// UI state
	keys   keyMap
	help   help.Model
	state  state.State
	theme  Theme
	width  int
	height int
	ready  bool
	tab    Tab

	selected int

	// Search
	search    textinput.Model
	searching bool

	// Requests in flight; the spinner shows while > 0.
	spinner spinner.Model
	pending int

	// Detail panel
	detail     detailState
	chart      *chartSlot
	detailView viewport.Model

	// Overlays
	keyModal     bool
	keyInput     textinput.Model
	confirmClear bool
	showHelp     bool

	// Settings form: name, avatar, API key
	settingsInputs [3]textinput.Model
	settingsFocus  int

	toast    toast
	toastSeq int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	copyText := opts.CopyToClipboard
	if copyText == nil {
		copyText = clipboard.WriteAll
	}
	ttl := opts.ToastDuration
	if ttl <= 0 {
		ttl = ToastDuration
	}

	st := opts.State
	if st.Cities == nil {
		st = state.Default()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:      ctx,
		weather:  opts.Weather,
		summary:  opts.Summary,
		locator:  opts.Locator,
		store:    opts.Store,
		log:      logger,
		now:      now,
		copyText: copyText,
		toastTTL: ttl,

		keys:    DefaultKeyMap(),
		help:    help.New(),
		state:   st,
		theme:   GetTheme(st.Theme),
		spinner: sp,
		chart:   &chartSlot{},
	}
	m.initInputs()

	// Without a key the credential prompt opens over the dashboard.
	if m.state.DemoMode() {
		m.openKeyModal()
	}
	return m
}

func (m *Model) initInputs() {
	search := textinput.New()
	search.Placeholder = "Search for a city..."
	search.Prompt = "⌕ "
	search.CharLimit = 80
	search.Width = 40
	m.search = search

	keyInput := textinput.New()
	keyInput.Placeholder = "OpenWeatherMap API key"
	keyInput.EchoMode = textinput.EchoPassword
	keyInput.EchoCharacter = '•'
	keyInput.CharLimit = 64
	keyInput.Width = 40
	m.keyInput = keyInput

	placeholders := [3]string{"Display name", "https://example.com/avatar.png", "API key (empty for Demo Mode)"}
	for i := range m.settingsInputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 256
		in.Width = 40
		m.settingsInputs[i] = in
	}
	m.settingsInputs[2].EchoMode = textinput.EchoPassword
	m.settingsInputs[2].EchoCharacter = '•'
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("atmos"),
		textinput.Blink,
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		if m.detail.open {
			m.redrawChart()
			m.refreshDetailView()
		}
		return m, nil

	case spinner.TickMsg:
		if m.pending == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case lookupDoneMsg:
		return m.handleLookupDone(msg)

	case locateDoneMsg:
		return m.handleLocateDone(msg)

	case summaryMsg:
		m.handleSummary(msg)
		return m, nil

	case toastExpiredMsg:
		if msg.id == m.toast.id {
			m.toast = toast{}
		}
		return m, nil
	}

	return m, m.updateFocusedInput(msg)
}

// updateFocusedInput forwards non-key messages (cursor blink) to the active input.
func (m *Model) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.keyModal:
		m.keyInput, cmd = m.keyInput.Update(msg)
	case m.tab == TabSettings:
		m.settingsInputs[m.settingsFocus], cmd = m.settingsInputs[m.settingsFocus].Update(msg)
	case m.searching:
		m.search, cmd = m.search.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	base := m.renderMain()
	switch {
	case m.showHelp:
		return overlay(base, m.renderHelp(), m.width, m.height)
	case m.keyModal:
		return overlay(base, m.renderKeyModal(), m.width, m.height)
	case m.confirmClear:
		return overlay(base, m.renderConfirmClear(), m.width, m.height)
	}
	return base
}

// handleKey processes keyboard input, innermost overlay first.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	switch {
	case m.showHelp:
		// Any key closes help
		m.showHelp = false
		return m, nil
	case m.keyModal:
		return m.handleKeyModalKey(msg)
	case m.confirmClear:
		return m.handleConfirmClearKey(msg)
	case m.searching:
		return m.handleSearchKey(msg)
	case m.tab == TabSettings:
		return m.handleSettingsKey(msg)
	case m.detail.open:
		return m.handleDetailKey(msg)
	}
	return m.handleDashboardKey(msg)
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Locate):
		return m, m.startLocate()

	case key.Matches(msg, m.keys.ToggleView):
		m.state.ToggleView()
		m.persist()
		return m, nil

	case key.Matches(msg, m.keys.ToggleTheme):
		m.toggleTheme()
		return m, nil

	case key.Matches(msg, m.keys.Settings):
		return m, m.openSettings()

	case key.Matches(msg, m.keys.APIKey):
		return m, m.openKeyModal()

	case key.Matches(msg, m.keys.ClearKey):
		return m, m.clearKey()

	case key.Matches(msg, m.keys.ClearCities):
		if len(m.state.Cities) > 0 {
			m.confirmClear = true
		}
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		return m, m.openDetail(m.selected)

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-m.columnsForNav())
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(m.columnsForNav())
	case key.Matches(msg, m.keys.Left):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveSelection(1)
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.searching = false
		m.search.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		term := strings.TrimSpace(m.search.Value())
		if term == "" {
			return m, nil
		}
		m.searching = false
		m.search.Blur()
		return m, m.startLookup(weather.ByName(term))
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Confirm):
		m.closeDetail()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.ToggleTheme):
		m.toggleTheme()
		return m, nil
	case key.Matches(msg, m.keys.CopyLink):
		return m, m.copyLink()
	}

	var cmd tea.Cmd
	m.detailView, cmd = m.detailView.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmClearKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		m.confirmClear = false
		m.state.ClearHistory()
		m.selected = 0
		if m.detail.open {
			m.closeDetail()
		}
		m.persist()
	case key.Matches(msg, m.keys.No):
		m.confirmClear = false
	}
	return m, nil
}

// startLookup counts the request in flight and returns its command. The
// spinner starts with the first outstanding request.
func (m *Model) startLookup(q weather.Query) tea.Cmd {
	cmds := []tea.Cmd{lookupCmd(m.ctx, m.weather, q, m.state.Settings.APIKey)}
	if m.beginRequest() {
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (m *Model) startLocate() tea.Cmd {
	cmds := []tea.Cmd{locateCmd(m.ctx, m.locator)}
	if m.beginRequest() {
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// beginRequest reports whether this is the first request in flight.
func (m *Model) beginRequest() bool {
	m.pending++
	return m.pending == 1
}

func (m *Model) endRequest() {
	if m.pending > 0 {
		m.pending--
	}
}

// Loading reports whether any request is in flight.
func (m Model) Loading() bool {
	return m.pending > 0
}

func (m Model) handleLookupDone(msg lookupDoneMsg) (tea.Model, tea.Cmd) {
	m.endRequest()
	if msg.err != nil {
		m.log.Warn("weather lookup failed",
			zap.String("query", msg.query.String()),
			zap.Error(msg.err))
		return m, m.handleError(msg.err)
	}

	m.state.AddCity(msg.snap)
	m.selected = 0
	m.persist()
	if !msg.query.IsCoords() {
		m.search.Reset()
	}
	m.log.Info("city added",
		zap.String("city", msg.snap.Name),
		zap.Bool("mock", msg.snap.Mock),
		zap.Int("cities", len(m.state.Cities)))
	return m, nil
}

func (m Model) handleLocateDone(msg locateDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.endRequest()
		m.log.Info("location lookup failed", zap.Error(msg.err))
		if errors.Is(msg.err, locate.ErrPermissionDenied) {
			return m, m.setToast(msgLocationDenied)
		}
		return m, m.setToast(userMessage(msg.err))
	}
	// The request stays counted while the weather lookup runs.
	q := weather.ByCoords(msg.pos.Lat, msg.pos.Lon)
	return m, lookupCmd(m.ctx, m.weather, q, m.state.Settings.APIKey)
}

// handleError demotes to demo mode on an invalid key and toasts everything else.
func (m *Model) handleError(err error) tea.Cmd {
	if errors.Is(err, weather.ErrUnauthorized) {
		m.state.ClearAPIKey()
		m.persist()
		m.log.Warn("api key rejected, switching to demo mode")
		modalCmd := m.openKeyModal()
		return tea.Batch(m.setToast(msgInvalidKey), modalCmd)
	}
	return m.setToast(userMessage(err))
}

// setToast shows text and schedules its dismissal. Only the newest toast's
// timer clears it.
func (m *Model) setToast(text string) tea.Cmd {
	m.toastSeq++
	m.toast = toast{id: m.toastSeq, text: text}
	return toastExpireCmd(m.toastSeq, m.toastTTL)
}

// Toast returns the visible toast text, or "".
func (m Model) Toast() string {
	return m.toast.text
}

// State returns a copy of the application state.
func (m Model) State() state.State {
	return m.state.Clone()
}

func (m *Model) toggleTheme() {
	m.state.ToggleTheme()
	m.theme = GetTheme(m.state.Theme)
	m.persist()
	if m.detail.open {
		m.redrawChart()
		m.refreshDetailView()
	}
}

func (m *Model) clearKey() tea.Cmd {
	m.state.ClearAPIKey()
	m.persist()
	return m.setToast(msgKeyRemoved)
}

func (m *Model) copyLink() tea.Cmd {
	if m.detail.link == "" {
		return m.setToast(msgNoLink)
	}
	if err := m.copyText(m.detail.link); err != nil {
		m.log.Warn("clipboard write failed", zap.Error(err))
		return m.setToast(msgClipboardFailed)
	}
	return m.setToast(msgLinkCopied)
}

// persist writes the whole state. Failures are logged; the session carries on
// with the in-memory state.
func (m Model) persist() {
	if m.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(m.ctx, persistTimeout)
	defer cancel()
	if err := state.Save(ctx, m.store, m.state); err != nil {
		m.log.Error("persist state failed", zap.Error(err))
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(opts.contextOrBackground()))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.contextOrBackground().Err() != nil {
		return nil
	}
	return err
}

func (o Options) contextOrBackground() context.Context {
	if o.Context == nil {
		return context.Background()
	}
	return o.Context
}
