package installer

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/motivate/internal/config"
)

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func TestWizard_WorkersAIWithSQLite(t *testing.T) {
	m := newModel(DefaultSteps())

	m = send(t, m,
		key(tea.KeyEnter),                  // workersai
		typed("acct-1"), key(tea.KeyEnter), // account id
		typed("cf-token"), key(tea.KeyEnter), // api key
		key(tea.KeyEnter), // default model
		key(tea.KeyEnter), // sqlite
		key(tea.KeyEnter), // http only
	)

	require.True(t, m.done())
	v := m.state.Values
	assert.Equal(t, "workersai", v.Inference.Provider)
	assert.Equal(t, "acct-1", v.Inference.AccountID)
	assert.Equal(t, "cf-token", v.Inference.APIKey)
	assert.Equal(t, config.DefaultWorkersAIModel, v.Inference.Model)
	assert.Equal(t, config.StoreSQLite, v.App.StoreDriver)
	assert.False(t, v.App.EnableTelegram)
	assert.Empty(t, v.Inference.BaseURL)
}

func TestWizard_OllamaPostgresTelegram(t *testing.T) {
	m := newModel(DefaultSteps())

	m = send(t, m,
		key(tea.KeyDown), key(tea.KeyDown), key(tea.KeyDown), key(tea.KeyDown), key(tea.KeyDown),
		key(tea.KeyEnter),                   // ollama
		key(tea.KeyEnter),                   // default base url
		key(tea.KeyEnter),                   // no api key
		typed("qwen2.5"), key(tea.KeyEnter), // model
		key(tea.KeyDown), key(tea.KeyEnter), // postgres
		typed("postgres://db/motivate"), key(tea.KeyEnter),
		key(tea.KeyDown), key(tea.KeyEnter), // telegram
		typed("123:abc"), key(tea.KeyEnter),
		typed("42"), key(tea.KeyEnter),
	)

	require.True(t, m.done())
	v := m.state.Values
	assert.Equal(t, "ollama", v.Inference.Provider)
	assert.Equal(t, "http://localhost:11434", v.Inference.BaseURL)
	assert.Empty(t, v.Inference.APIKey)
	assert.Equal(t, "qwen2.5", v.Inference.Model)
	assert.Equal(t, config.StorePostgres, v.App.StoreDriver)
	assert.Equal(t, "postgres://db/motivate", v.App.DatabaseURL)
	assert.True(t, v.App.EnableTelegram)
	assert.Equal(t, "123:abc", v.Telegram.Token)
	assert.Equal(t, int64(42), v.Telegram.OwnerID)
}

func TestWizard_RequiredInputBlocks(t *testing.T) {
	m := newModel(DefaultSteps())

	m = send(t, m, key(tea.KeyEnter), key(tea.KeyEnter))
	assert.Equal(t, 1, m.currentStep)

	step := m.steps[m.currentStep].(*inputStep)
	assert.Equal(t, "a value is required", step.errMsg)
	assert.Contains(t, m.View(), "a value is required")
}

func TestWizard_OwnerIDValidation(t *testing.T) {
	s := DefaultSteps()[9].(*inputStep)
	state := &InstallState{Telegram: true}

	next, _ := s.Update(typed("abc"), state)
	next, _ = next.Update(key(tea.KeyEnter), state)
	require.NotNil(t, next)
	assert.Equal(t, "user id must be a number", s.errMsg)
	assert.Zero(t, state.Values.Telegram.OwnerID)
}

func TestWizard_EscCancels(t *testing.T) {
	m := send(t, newModel(DefaultSteps()), key(tea.KeyEsc))
	assert.True(t, m.quitting)
	assert.Equal(t, "Setup cancelled.\n", m.View())
}
