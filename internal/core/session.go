package core

import (
	"context"
	"strings"
)

// ChatService is what transports drive: one turn per call plus a read-only view of a
// session's stored transcript.
type ChatService interface {
	HandleTurn(ctx context.Context, key, message string) (string, error)
	History(ctx context.Context, key string) (Transcript, error)
}

// KeyOrDefault returns the trimmed key, or DefaultSessionKey when it is blank.
func KeyOrDefault(key string) string {
	if k := strings.TrimSpace(key); k != "" {
		return k
	}
	return DefaultSessionKey
}

// ValidateKey trims key and rejects a blank one.
func ValidateKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrEmptySessionKey
	}
	return key, nil
}

// ValidateMessage rejects blank input. The message itself is passed on unmodified.
func ValidateMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return ErrEmptyMessage
	}
	return nil
}
