package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type choice struct {
	value string
	label string
}

// choiceStep picks one of a fixed list of values.
type choiceStep struct {
	title   string
	choices []choice
	cursor  int
	set     func(*InstallState, string)
	skip    func(*InstallState) bool
}

func (s *choiceStep) Init() tea.Cmd {
	return nil
}

func (s *choiceStep) Skip(state *InstallState) bool {
	return s.skip != nil && s.skip(state)
}

func (s *choiceStep) Update(msg tea.Msg, state *InstallState) (Step, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case "enter":
			s.set(state, s.choices[s.cursor].value)
			return nil, nil
		}
	}
	return s, nil
}

func (s *choiceStep) View(*InstallState) string {
	var b strings.Builder
	b.WriteString(s.title + "\n\n")
	for i, c := range s.choices {
		if s.cursor == i {
			b.WriteString(selStyle.Render(fmt.Sprintf("> %s", c.label)) + "\n")
		} else {
			b.WriteString(itemStyle.Render(fmt.Sprintf("  %s", c.label)) + "\n")
		}
	}
	return b.String()
}
