// Package menu implements the interactive settings menu. Machine is a pure
// state machine over named settings; program.go drives it with bubbletea.
package menu

import (
	"fmt"
	"math"
	"strconv"

	"github.com/doeshing/huh-go/internal/domain"
)

// State is the screen the machine is on.
type State int

const (
	// StateMain lists the settings.
	StateMain State = iota
	// StateSetting lists the options of one setting.
	StateSetting
	// StateDone is terminal.
	StateDone
)

// Option is one selectable value of a setting.
type Option struct {
	Label string
	apply func(*domain.Config)
}

// Setting is one configurable preference.
type Setting struct {
	Title   string
	Options []Option
	value   func(domain.Config) string
	current func(domain.Config) int
}

// Value renders the setting's current value in cfg.
func (s Setting) Value(cfg domain.Config) string {
	return s.value(cfg)
}

const (
	saveItem    = "Save and exit"
	discardItem = "Exit without saving"
)

// Machine walks the user through the settings. It never touches disk; the
// caller persists Result when it reports save.
type Machine struct {
	settings []Setting
	cfg      domain.Config
	state    State
	cursor   int
	active   int
	single   bool
	dirty    bool
	save     bool
	message  string
}

// NewConfigMachine opens the full settings menu on the main screen.
func NewConfigMachine(cfg domain.Config) *Machine {
	return &Machine{settings: Settings(cfg), cfg: cfg, state: StateMain}
}

// NewModelMachine opens directly on the model list. Picking a model ends the
// menu.
func NewModelMachine(cfg domain.Config) *Machine {
	m := &Machine{settings: []Setting{modelSetting(cfg)}, cfg: cfg, single: true}
	m.enter(0)
	return m
}

// State returns the current screen.
func (m *Machine) State() State { return m.state }

// Cursor is the highlighted row of the current screen.
func (m *Machine) Cursor() int { return m.cursor }

// Message is feedback from the last selection.
func (m *Machine) Message() string { return m.message }

// Title names the current screen.
func (m *Machine) Title() string {
	if m.state == StateSetting {
		return m.settings[m.active].Title
	}
	return "Configuration Menu"
}

// Items lists the rows of the current screen.
func (m *Machine) Items() []string {
	switch m.state {
	case StateSetting:
		setting := m.settings[m.active]
		items := make([]string, len(setting.Options))
		for i, option := range setting.Options {
			items[i] = option.Label
		}
		return items
	case StateMain:
		items := make([]string, 0, len(m.settings)+2)
		for _, setting := range m.settings {
			items = append(items, fmt.Sprintf("%s: %s", setting.Title, setting.Value(m.cfg)))
		}
		return append(items, saveItem, discardItem)
	default:
		return nil
	}
}

// Up moves the cursor one row up, wrapping to the bottom.
func (m *Machine) Up() {
	n := len(m.Items())
	if n == 0 {
		return
	}
	m.cursor = (m.cursor - 1 + n) % n
}

// Down moves the cursor one row down, wrapping to the top.
func (m *Machine) Down() {
	n := len(m.Items())
	if n == 0 {
		return
	}
	m.cursor = (m.cursor + 1) % n
}

// Select activates the highlighted row.
func (m *Machine) Select() {
	switch m.state {
	case StateMain:
		switch {
		case m.cursor < len(m.settings):
			m.enter(m.cursor)
		case m.cursor == len(m.settings):
			m.finish(m.dirty)
		default:
			m.finish(false)
		}
	case StateSetting:
		m.choose(m.cursor)
	}
}

// Back leaves the current screen. On the main screen it quits without saving.
func (m *Machine) Back() {
	if m.state == StateSetting && !m.single {
		m.state = StateMain
		m.cursor = m.active
		return
	}
	m.finish(false)
}

// Quit ends the menu without saving.
func (m *Machine) Quit() {
	m.finish(false)
}

// Result returns the edited config and whether it should be saved.
func (m *Machine) Result() (domain.Config, bool) {
	return m.cfg, m.save
}

func (m *Machine) enter(index int) {
	m.state = StateSetting
	m.active = index
	m.cursor = 0
	if current := m.settings[index].current(m.cfg); current >= 0 {
		m.cursor = current
	}
}

func (m *Machine) choose(index int) {
	setting := m.settings[m.active]
	before := setting.Value(m.cfg)
	setting.Options[index].apply(&m.cfg)
	after := setting.Value(m.cfg)

	if before == after {
		m.message = fmt.Sprintf("No change - keeping: %s", after)
	} else {
		m.message = fmt.Sprintf("Changed from %s to %s", before, after)
		m.dirty = true
	}

	if m.single {
		m.finish(m.dirty)
		return
	}
	m.state = StateMain
	m.cursor = m.active
}

func (m *Machine) finish(save bool) {
	m.state = StateDone
	m.save = save
}

// Settings builds the configurable preferences for cfg.
func Settings(cfg domain.Config) []Setting {
	return []Setting{
		modelSetting(cfg),
		responseLengthSetting(),
		temperatureSetting(),
		maxTokensSetting(),
		autoSaveSetting(),
		shellSetting(),
		timeoutSetting(),
	}
}

func modelSetting(cfg domain.Config) Setting {
	names := cfg.ModelNames()
	options := make([]Option, len(names))
	for i, name := range names {
		name := name
		options[i] = Option{Label: name, apply: func(c *domain.Config) { c.Preferences.DefaultModel = name }}
	}
	return Setting{
		Title:   "Default model",
		Options: options,
		value:   func(c domain.Config) string { return c.Preferences.DefaultModel },
		current: func(c domain.Config) int { return indexOf(names, c.Preferences.DefaultModel) },
	}
}

func responseLengthSetting() Setting {
	options := make([]Option, len(domain.ResponseLengths))
	for i, length := range domain.ResponseLengths {
		length := length
		options[i] = Option{Label: length.Describe(), apply: func(c *domain.Config) { c.Preferences.ResponseLength = length }}
	}
	return Setting{
		Title:   "Response length",
		Options: options,
		value:   func(c domain.Config) string { return string(c.GetResponseLength()) },
		current: func(c domain.Config) int {
			for i, length := range domain.ResponseLengths {
				if length == c.GetResponseLength() {
					return i
				}
			}
			return -1
		},
	}
}

func temperatureSetting() Setting {
	values := []float64{0.0, 0.3, 0.5, 0.7, 0.9, 1.0}
	labels := []string{
		"0.0 - Very focused and deterministic",
		"0.3 - Slightly focused",
		"0.5 - Balanced",
		"0.7 - Creative (recommended)",
		"0.9 - Very creative",
		"1.0 - Maximum creativity",
	}
	options := make([]Option, len(values))
	for i, v := range values {
		v := v
		options[i] = Option{Label: labels[i], apply: func(c *domain.Config) { c.Preferences.Temperature = v }}
	}
	return Setting{
		Title:   "Temperature",
		Options: options,
		value: func(c domain.Config) string {
			return strconv.FormatFloat(c.Preferences.Temperature, 'f', 1, 64)
		},
		current: func(c domain.Config) int {
			for i, v := range values {
				if math.Abs(v-c.Preferences.Temperature) < 0.01 {
					return i
				}
			}
			return -1
		},
	}
}

func maxTokensSetting() Setting {
	return intSetting("Max output tokens",
		[]int{1024, 2048, 4096, 8192, 16384},
		[]string{"Short responses", "Medium responses", "Long responses", "Very long responses (recommended)", "Maximum length responses"},
		"",
		func(c domain.Config) int { return c.Preferences.MaxOutputTokens },
		func(c *domain.Config, v int) { c.Preferences.MaxOutputTokens = v })
}

func timeoutSetting() Setting {
	return intSetting("API timeout",
		[]int{10, 20, 30, 60, 120, 300},
		[]string{"Quick timeout", "Short timeout", "Standard timeout (recommended)", "Long timeout", "Extended timeout", "Maximum timeout"},
		" seconds",
		func(c domain.Config) int { return c.GetTimeoutSeconds() },
		func(c *domain.Config, v int) { c.Preferences.TimeoutSeconds = v })
}

func intSetting(title string, values []int, notes []string, unit string, get func(domain.Config) int, set func(*domain.Config, int)) Setting {
	options := make([]Option, len(values))
	for i, v := range values {
		v := v
		options[i] = Option{
			Label: fmt.Sprintf("%d%s - %s", v, unit, notes[i]),
			apply: func(c *domain.Config) { set(c, v) },
		}
	}
	return Setting{
		Title:   title,
		Options: options,
		value:   func(c domain.Config) string { return strconv.Itoa(get(c)) + unit },
		current: func(c domain.Config) int {
			for i, v := range values {
				if v == get(c) {
					return i
				}
			}
			return -1
		},
	}
}

func autoSaveSetting() Setting {
	value := func(c domain.Config) string {
		if c.History.AutoSave {
			return "enabled"
		}
		return "disabled"
	}
	return Setting{
		Title: "Auto-save history",
		Options: []Option{
			{Label: "Enabled", apply: func(c *domain.Config) { c.History.AutoSave = true }},
			{Label: "Disabled", apply: func(c *domain.Config) { c.History.AutoSave = false }},
		},
		value: value,
		current: func(c domain.Config) int {
			if c.History.AutoSave {
				return 0
			}
			return 1
		},
	}
}

func shellSetting() Setting {
	shells := []domain.ShellKind{domain.ShellBash, domain.ShellZsh, domain.ShellFish}
	labels := []string{
		"Bash - Most common Unix shell",
		"Zsh - Feature-rich shell with plugins",
		"Fish - User-friendly shell with syntax highlighting",
	}
	options := make([]Option, len(shells))
	for i, shell := range shells {
		shell := shell
		options[i] = Option{Label: labels[i], apply: func(c *domain.Config) { c.Context.DefaultShell = string(shell) }}
	}
	return Setting{
		Title:   "Default shell",
		Options: options,
		value: func(c domain.Config) string {
			if c.Context.DefaultShell == "" {
				return "auto"
			}
			return c.Context.DefaultShell
		},
		current: func(c domain.Config) int {
			for i, shell := range shells {
				if string(shell) == c.Context.DefaultShell {
					return i
				}
			}
			return -1
		},
	}
}

func indexOf(values []string, target string) int {
	for i, v := range values {
		if v == target {
			return i
		}
	}
	return -1
}
