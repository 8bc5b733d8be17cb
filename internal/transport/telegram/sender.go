package telegram

import (
	"strings"
	"unicode/utf8"

	"github.com/sandevgo/motivate/pkg/conv"
)

// Telegram rejects messages over 4096 bytes; leave room for entity expansion.
const maxTelegramMsgLen = 4000

func markdownToTelegram(md string) string {
	return conv.MarkdownToTelegramHTML([]byte(md))
}

// openTag is an element still open at a cut: its name and its start tag as written.
type openTag struct {
	name  string
	start string
}

// splitHTML cuts Telegram HTML into chunks of at most maxLen bytes, preferring
// paragraph breaks, then line breaks, then spaces. Elements open at a cut are closed
// at the end of the chunk and reopened at the start of the next one, and cuts never
// land inside a tag, an entity or a UTF-8 sequence.
func splitHTML(text string, maxLen int) []string {
	var chunks []string
	var open []openTag
	for {
		prefix := startTags(open)
		if len(prefix) >= maxLen/2 {
			open, prefix = nil, ""
		}
		if len(prefix)+len(text) <= maxLen {
			if len(chunks) == 0 || hasText(text) {
				chunks = append(chunks, prefix+text)
			}
			return chunks
		}

		budget := maxLen - len(prefix)
		cut, after := 0, open
		for {
			cut = cutPoint(text, budget)
			after = scanTags(open, text[:cut])
			closing := len(endTags(after))
			if len(prefix)+cut+closing <= maxLen || budget <= closing {
				break
			}
			budget -= closing
		}

		chunks = append(chunks, prefix+strings.TrimRight(text[:cut], " \n")+endTags(after))
		text = strings.TrimLeft(text[cut:], " \n")
		open = after
	}
}

func cutPoint(text string, maxLen int) int {
	cut := maxLen
	window := text[:maxLen]
	for _, sep := range []string{"\n\n", "\n", " "} {
		if idx := strings.LastIndex(window, sep); idx > maxLen/3 {
			cut = idx
			break
		}
	}

	// Step back out of a tag or entity the window ends inside.
	if lt := strings.LastIndexByte(text[:cut], '<'); lt > 0 && lt > strings.LastIndexByte(text[:cut], '>') {
		cut = lt
	}
	if amp := strings.LastIndexByte(text[:cut], '&'); amp > 0 && amp > strings.LastIndexByte(text[:cut], ';') {
		cut = amp
	}

	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	if cut == 0 {
		return maxLen
	}
	return cut
}

// scanTags returns the elements still open after s, starting from open.
func scanTags(open []openTag, s string) []openTag {
	stack := append([]openTag(nil), open...)
	for {
		lt := strings.IndexByte(s, '<')
		if lt < 0 {
			return stack
		}
		gt := strings.IndexByte(s[lt:], '>')
		if gt < 0 {
			return stack
		}
		tag := s[lt : lt+gt+1]
		s = s[lt+gt+1:]

		if strings.HasSuffix(tag, "/>") {
			continue
		}
		if strings.HasPrefix(tag, "</") {
			name := tagName(tag[2:])
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i].name == name {
					stack = stack[:i]
					break
				}
			}
			continue
		}
		stack = append(stack, openTag{name: tagName(tag[1:]), start: tag})
	}
}

func tagName(s string) string {
	end := strings.IndexAny(s, " \t\n/>")
	if end < 0 {
		end = len(s)
	}
	return strings.ToLower(s[:end])
}

func startTags(open []openTag) string {
	var b strings.Builder
	for _, t := range open {
		b.WriteString(t.start)
	}
	return b.String()
}

func endTags(open []openTag) string {
	var b strings.Builder
	for i := len(open) - 1; i >= 0; i-- {
		b.WriteString("</" + open[i].name + ">")
	}
	return b.String()
}

// hasText reports whether s holds anything besides tags and whitespace.
func hasText(s string) bool {
	for {
		lt := strings.IndexByte(s, '<')
		if lt < 0 {
			return strings.TrimSpace(s) != ""
		}
		if strings.TrimSpace(s[:lt]) != "" {
			return true
		}
		gt := strings.IndexByte(s[lt:], '>')
		if gt < 0 {
			return true
		}
		s = s[lt+gt+1:]
	}
}
