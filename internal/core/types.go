package core

const (
	MotivateName          = "Motivate"
	MotivateUserAgent     = "Motivate-Session/0.1"
	MotivateRepositoryURL = "https://github.com/sandevgo/motivate"
	MotivateVersion       = "0.1.0"
)

// Role tags a chat turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

const (
	// SystemPreamble is turn 0 of every new session.
	SystemPreamble = "Be supportive, concise and practical. Ask one short follow-up question only when needed."

	// RetentionLimit is the number of non-system turns kept after a save.
	RetentionLimit = 20

	// FallbackReply is used when an inference result carries no usable reply field.
	FallbackReply = "Sorry — I couldn't generate a response right now."

	// DefaultSessionKey is used by transports when the caller does not name a session.
	DefaultSessionKey = "demo_user"
)

// ChatTurn is one message in a conversation.
type ChatTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Transcript is the ordered list of turns owned by one session key, oldest first.
type Transcript []ChatTurn

// NewTranscript returns a transcript seeded with the system preamble.
func NewTranscript() Transcript {
	return Transcript{SystemTurn()}
}

func SystemTurn() ChatTurn {
	return ChatTurn{Role: RoleSystem, Content: SystemPreamble}
}

// Clone returns a copy that shares no backing array with t.
func (t Transcript) Clone() Transcript {
	if t == nil {
		return nil
	}
	out := make(Transcript, len(t))
	copy(out, t)
	return out
}

// Trim applies the retention policy: a leading system turn is always kept, followed
// by at most limit of the most recent turns.
func (t Transcript) Trim(limit int) Transcript {
	if len(t) > 0 && t[0].Role == RoleSystem {
		start := len(t) - limit
		if start < 1 {
			start = 1
		}
		out := make(Transcript, 0, 1+len(t)-start)
		out = append(out, t[0])
		return append(out, t[start:]...)
	}

	start := len(t) - limit
	if start < 0 {
		start = 0
	}
	return t[start:].Clone()
}
