package installer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// inputStep collects one free-text value.
type inputStep struct {
	title       string
	placeholder string
	secret      bool
	optional    bool
	// titleFor and optionalFor override title and optional from earlier answers.
	titleFor    func(*InstallState) string
	optionalFor func(*InstallState) bool
	// defaultFor returns the value used when the input is left empty.
	defaultFor func(*InstallState) string
	validate   func(string) error
	set        func(*InstallState, string)
	skip       func(*InstallState) bool

	input  textinput.Model
	ready  bool
	errMsg string
}

func (s *inputStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *inputStep) Skip(state *InstallState) bool {
	return s.skip != nil && s.skip(state)
}

func (s *inputStep) setup(state *InstallState) {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 48
	ti.Placeholder = s.placeholder
	if def := s.defaultValue(state); def != "" {
		ti.Placeholder = def
	}
	if s.secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '*'
	}
	s.input = ti
	s.ready = true
}

func (s *inputStep) defaultValue(state *InstallState) string {
	if s.defaultFor == nil {
		return ""
	}
	return s.defaultFor(state)
}

func (s *inputStep) isOptional(state *InstallState) bool {
	if s.optionalFor != nil {
		return s.optionalFor(state)
	}
	return s.optional
}

func (s *inputStep) Update(msg tea.Msg, state *InstallState) (Step, tea.Cmd) {
	if !s.ready {
		s.setup(state)
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		value := strings.TrimSpace(s.input.Value())
		if value == "" {
			value = s.defaultValue(state)
		}
		if value == "" && !s.isOptional(state) {
			s.errMsg = "a value is required"
			return s, nil
		}
		if value != "" && s.validate != nil {
			if err := s.validate(value); err != nil {
				s.errMsg = err.Error()
				return s, nil
			}
		}
		s.set(state, value)
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *inputStep) View(state *InstallState) string {
	if !s.ready {
		s.setup(state)
	}

	title := s.title
	if s.titleFor != nil {
		title = s.titleFor(state)
	}
	if s.isOptional(state) {
		title += " (optional)"
	}
	view := fmt.Sprintf("%s:\n\n%s\n", title, s.input.View())
	if s.errMsg != "" {
		view += "\n" + errorStyle.Render(s.errMsg) + "\n"
	}
	return view
}
