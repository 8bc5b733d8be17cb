package session

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/sandevgo/motivate/internal/core"
)

// ExtractReply picks the reply text from an inference result: the response field
// first, then the result field, then core.FallbackReply. Non-string JSON values are
// returned as their JSON text. ok is false when the fallback was used.
func ExtractReply(res core.InferenceResult) (reply string, ok bool) {
	if text, found := fieldText(res.Response); found {
		return text, true
	}
	if text, found := fieldText(res.Result); found {
		return text, true
	}
	return core.FallbackReply, false
}

func fieldText(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", false
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			return "", false
		}
		return s, true
	}
	return string(trimmed), true
}
