package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/huh-go/internal/domain"
)

func testConfig() domain.Config {
	return domain.Config{
		Preferences: domain.Preferences{
			DefaultModel:    "gemini-2.0-flash",
			ResponseLength:  domain.ResponseBalanced,
			Temperature:     0.7,
			MaxOutputTokens: 8192,
			TimeoutSeconds:  30,
		},
		Models: []domain.ModelDefinition{
			{Name: "gemini-2.0-flash"},
			{Name: "claude-haiku"},
			{Name: "gpt-4o-mini"},
		},
		History: domain.HistorySettings{AutoSave: true},
	}
}

func TestMainScreenListsSettingsWithValues(t *testing.T) {
	m := NewConfigMachine(testConfig())

	items := m.Items()
	require.Len(t, items, len(Settings(testConfig()))+2)
	assert.Equal(t, "Default model: gemini-2.0-flash", items[0])
	assert.Equal(t, "API timeout: 30 seconds", items[6])
	assert.Equal(t, "Save and exit", items[7])
	assert.Equal(t, StateMain, m.State())
}

func TestChangeSettingAndSave(t *testing.T) {
	m := NewConfigMachine(testConfig())

	m.Down() // response length
	m.Down() // temperature
	m.Select()
	require.Equal(t, StateSetting, m.State())
	assert.Equal(t, "Temperature", m.Title())
	assert.Equal(t, 3, m.Cursor(), "cursor starts on the current value")

	m.Up()
	m.Up()
	m.Select()
	assert.Equal(t, StateMain, m.State())
	assert.Equal(t, 2, m.Cursor(), "back on the edited setting")
	assert.Equal(t, "Changed from 0.7 to 0.3", m.Message())

	for m.Cursor() != len(m.settings) {
		m.Down()
	}
	m.Select()

	cfg, save := m.Result()
	assert.Equal(t, StateDone, m.State())
	assert.True(t, save)
	assert.InDelta(t, 0.3, cfg.Preferences.Temperature, 0.001)
}

func TestSelectingCurrentValueIsNoChange(t *testing.T) {
	m := NewConfigMachine(testConfig())
	m.Select() // default model
	m.Select() // same model

	assert.Equal(t, "No change - keeping: gemini-2.0-flash", m.Message())

	m.Up() // wraps to "Exit without saving"
	m.Select()
	_, save := m.Result()
	assert.False(t, save)
}

func TestSaveWithoutChangesDoesNotWrite(t *testing.T) {
	m := NewConfigMachine(testConfig())
	m.Up()
	m.Up() // "Save and exit"
	m.Select()

	_, save := m.Result()
	assert.Equal(t, StateDone, m.State())
	assert.False(t, save)
}

func TestBackNavigation(t *testing.T) {
	m := NewConfigMachine(testConfig())
	m.Down()
	m.Select()
	require.Equal(t, StateSetting, m.State())

	m.Back()
	assert.Equal(t, StateMain, m.State())
	assert.Equal(t, 1, m.Cursor())

	m.Back()
	assert.Equal(t, StateDone, m.State())
	_, save := m.Result()
	assert.False(t, save)
}

func TestToggleAutoSave(t *testing.T) {
	m := NewConfigMachine(testConfig())
	for i := 0; i < 4; i++ {
		m.Down()
	}
	m.Select()
	assert.Equal(t, "Auto-save history", m.Title())
	m.Down()
	m.Select()

	cfg, _ := m.Result()
	assert.False(t, cfg.History.AutoSave)
	assert.Equal(t, "Changed from enabled to disabled", m.Message())
}

func TestModelMachinePicksAndFinishes(t *testing.T) {
	m := NewModelMachine(testConfig())
	require.Equal(t, StateSetting, m.State())
	assert.Equal(t, []string{"gemini-2.0-flash", "claude-haiku", "gpt-4o-mini"}, m.Items())
	assert.Equal(t, 0, m.Cursor())

	m.Down()
	m.Select()

	cfg, save := m.Result()
	assert.Equal(t, StateDone, m.State())
	assert.True(t, save)
	assert.Equal(t, "claude-haiku", cfg.Preferences.DefaultModel)
}

func TestModelMachineBackQuits(t *testing.T) {
	m := NewModelMachine(testConfig())
	m.Back()
	assert.Equal(t, StateDone, m.State())
	_, save := m.Result()
	assert.False(t, save)
}

func TestProgramMapsKeys(t *testing.T) {
	m := NewModelMachine(testConfig())
	p := program{machine: m}

	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.Cursor())
	assert.Contains(t, p.View(), "> claude-haiku")

	_, cmd = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, StateDone, m.State())
	assert.Empty(t, p.View())
}
