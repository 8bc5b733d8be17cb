package command

import (
	"fmt"
	"strings"
)

type responseFormatter struct{}

var formatter responseFormatter

func (responseFormatter) Title(title string) string {
	return fmt.Sprintf("**%s**\n\n", title)
}

func (responseFormatter) Error(err error) string {
	return fmt.Sprintf("**Command error**: %s", err.Error())
}

func (responseFormatter) Label(label, value string) string {
	return fmt.Sprintf("**%s**  ›  `%s`\n", label, value)
}

func (responseFormatter) Quote(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, l := range lines {
		lines[i] = "> " + l
	}
	return strings.Join(lines, "\n")
}
