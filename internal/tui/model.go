package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/muesli/termenv"

	"github.com/juliankahlert/pulse/internal/config"
	"github.com/juliankahlert/pulse/internal/logger"
	"github.com/juliankahlert/pulse/internal/palette"
	"github.com/juliankahlert/pulse/internal/prompt"
	"github.com/juliankahlert/pulse/internal/types"
)

// Constants for UI behavior
const (
	StepSmall = 1  // Columns per ←/→
	StepLarge = 10 // Columns per shift+←/→

	reloadDebounce = 100 * time.Millisecond
)

// FieldSource supplies the prompt fields shown in the preview
type FieldSource interface {
	DeriveFields() (types.Fields, error)
}

// ConfigLoader reads the merged configuration
type ConfigLoader func() (*config.Config, error)

// Options configures a preview Model
type Options struct {
	Fields      FieldSource
	LoadConfig  ConfigLoader
	ConfigFiles []string // Watched for changes
	Mode        types.DisplayMode
	Profile     termenv.Profile
	Logger      *logger.Logger
}

// Model represents the preview state
type Model struct {
	fields     FieldSource
	loadConfig ConfigLoader
	files      []string
	profile    termenv.Profile
	log        *logger.Logger

	current   types.Fields
	colors    palette.Colors
	pal       palette.Palette
	mode      types.DisplayMode
	lastError string
	ready     bool
	showHelp  bool

	// Terminal dimensions
	width  int
	height int

	// simWidth overrides the terminal width when > 0
	simWidth int

	fileWatcher *fsnotify.Watcher
	eventChan   chan tea.Msg
}

// Event messages for BubbleTea
type (
	fieldsLoadedMsg     struct{ fields types.Fields }
	configChangedMsg    struct{}
	configLoadedMsg     struct{ cfg *config.Config }
	errorMsg            struct {
		err     error
		watcher bool // Delivered through eventChan
	}
	clearErrorMsg       struct{}
	fileWatcherSetupMsg struct{ watcher *fsnotify.Watcher }
)

// NewModel creates a new preview model. The fields are read once up front so
// a missing username or hostname fails before the program starts.
func NewModel(opts Options) (*Model, error) {
	if opts.Fields == nil {
		return nil, fmt.Errorf("no field source")
	}
	if opts.LoadConfig == nil {
		opts.LoadConfig = func() (*config.Config, error) { return config.NewDefault(), nil }
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	fields, err := opts.Fields.DeriveFields()
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt fields: %w", err)
	}
	cfg, err := opts.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	mode := opts.Mode
	if mode == "" {
		mode = cfg.DisplayMode()
	}

	m := &Model{
		fields:     opts.Fields,
		loadConfig: opts.LoadConfig,
		files:      opts.ConfigFiles,
		profile:    opts.Profile,
		log:        opts.Logger,
		current:    fields,
		mode:       mode,
		eventChan:  make(chan tea.Msg, 16),
	}
	m.applyColors(cfg.Colors())
	return m, nil
}

// Init initializes the model with necessary setup
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.setupFileWatching(),
		m.startEventChannelListener(),
	)
}

// Update handles all preview events and state changes
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case fieldsLoadedMsg:
		m.current = msg.fields
		return m, nil

	case configChangedMsg:
		return m, tea.Batch(
			m.reloadConfig(),
			m.startEventChannelListener(), // Restart listener
		)

	case configLoadedMsg:
		m.applyColors(msg.cfg.Colors())
		m.lastError = ""
		m.log.Info("config reloaded", "colors", m.colors)
		return m, nil

	case errorMsg:
		m.lastError = msg.err.Error()
		m.log.Warn("preview error", "error", msg.err)
		clearLater := tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearErrorMsg{}
		})
		if msg.watcher {
			return m, tea.Batch(clearLater, m.startEventChannelListener())
		}
		return m, clearLater

	case clearErrorMsg:
		m.lastError = ""
		return m, nil

	case fileWatcherSetupMsg:
		m.fileWatcher = msg.watcher
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.closeWatcher()
		return m, tea.Quit

	case "left", "h":
		m.resize(-StepSmall)
	case "right", "l":
		m.resize(StepSmall)
	case "shift+left", "H":
		m.resize(-StepLarge)
	case "shift+right", "L":
		m.resize(StepLarge)

	case "0", "backspace":
		m.simWidth = 0

	case "m":
		if m.mode == types.ModeInline {
			m.mode = types.ModeDualLine
		} else {
			m.mode = types.ModeInline
		}

	case "r":
		return m, m.refreshFields()

	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// resize moves the simulated width by delta columns, starting from the live
// width the first time.
func (m *Model) resize(delta int) {
	w := m.EffectiveWidth() + delta
	if w < 1 {
		w = 1
	}
	m.simWidth = w
}

func (m *Model) applyColors(c palette.Colors) {
	m.colors = c
	m.pal = palette.New(c, m.profile)
}

func (m *Model) closeWatcher() {
	if m.fileWatcher != nil {
		m.fileWatcher.Close()
		m.fileWatcher = nil
	}
}

// EffectiveWidth is the width the prompt is laid out for
func (m Model) EffectiveWidth() int {
	if m.simWidth > 0 {
		return m.simWidth
	}
	if m.width > 0 {
		return m.width
	}
	return prompt.DefaultWidth
}

// Simulated reports whether the width was set by the user
func (m Model) Simulated() bool {
	return m.simWidth > 0
}

// Mode returns the current display mode
func (m Model) Mode() types.DisplayMode {
	return m.mode
}

// Compose lays out the prompt for the current state
func (m Model) Compose() prompt.Result {
	return prompt.Compose(m.EffectiveWidth(), m.mode, m.current, m.pal)
}
