// Package installer is the interactive `motivate init` wizard.
package installer

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sandevgo/motivate/internal/config"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	itemStyle  = lipgloss.NewStyle().PaddingLeft(2)
	selStyle   = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("5"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Values is everything the wizard can write to the runtime .env.
type Values struct {
	App       config.AppConfig
	Inference config.InferenceConfig
	HTTP      config.HTTPConfig
	Telegram  config.TelegramConfig
}

type InstallState struct {
	Values   Values
	Telegram bool
}

// Step is one screen of the wizard. Update returns nil when the step is complete.
type Step interface {
	Init() tea.Cmd
	Update(msg tea.Msg, state *InstallState) (Step, tea.Cmd)
	View(state *InstallState) string
	// Skip reports whether the step does not apply given earlier answers.
	Skip(state *InstallState) bool
}

// model is the main Bubble Tea model that orchestrates the steps
type model struct {
	steps       []Step
	currentStep int
	state       *InstallState
	quitting    bool
}

func newModel(steps []Step) model {
	m := model{
		steps: steps,
		state: &InstallState{},
	}
	m.currentStep = m.nextApplicable(0)
	return m
}

func (m model) nextApplicable(from int) int {
	for i := from; i < len(m.steps); i++ {
		if !m.steps[i].Skip(m.state) {
			return i
		}
	}
	return len(m.steps)
}

func (m model) done() bool {
	return m.currentStep >= len(m.steps)
}

func (m model) Init() tea.Cmd {
	if m.done() {
		return tea.Quit
	}
	return m.steps[m.currentStep].Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting || m.done() {
		return m, tea.Quit
	}

	if key, ok := msg.(tea.KeyMsg); ok && (key.String() == "ctrl+c" || key.String() == "esc") {
		m.quitting = true
		return m, tea.Quit
	}

	next, cmd := m.steps[m.currentStep].Update(msg, m.state)
	if next != nil {
		m.steps[m.currentStep] = next
		return m, cmd
	}

	m.currentStep = m.nextApplicable(m.currentStep + 1)
	if m.done() {
		return m, tea.Quit
	}
	return m, m.steps[m.currentStep].Init()
}

func (m model) View() string {
	if m.quitting {
		return "Setup cancelled.\n"
	}
	if m.done() {
		return "Configuration complete!\n"
	}

	return titleStyle.Render("Setting up Motivate") + "\n\n" +
		m.steps[m.currentStep].View(m.state) +
		"\n" + hintStyle.Render("(enter to confirm, esc to quit)") + "\n"
}

// RunWizard runs the TUI and returns the collected values.
func RunWizard() (*Values, error) {
	p := tea.NewProgram(newModel(DefaultSteps()))
	m, err := p.Run()
	if err != nil {
		return nil, err
	}

	final := m.(model)
	if final.quitting || !final.done() {
		return nil, fmt.Errorf("setup interrupted")
	}
	return &final.state.Values, nil
}
