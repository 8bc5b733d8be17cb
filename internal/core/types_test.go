package core

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func conversation(pairs int) Transcript {
	t := NewTranscript()
	for i := 0; i < pairs; i++ {
		t = append(t,
			ChatTurn{Role: RoleUser, Content: fmt.Sprintf("u%d", i)},
			ChatTurn{Role: RoleAssistant, Content: fmt.Sprintf("a%d", i)},
		)
	}
	return t
}

func TestNewTranscript(t *testing.T) {
	got := NewTranscript()
	require.Len(t, got, 1)
	assert.Equal(t, RoleSystem, got[0].Role)
	assert.Equal(t, SystemPreamble, got[0].Content)
}

func TestTrim_KeepsSystemAndLastTwenty(t *testing.T) {
	full := NewTranscript()
	for i := 0; i < 25; i++ {
		role := RoleUser
		if i%2 == 1 {
			role = RoleAssistant
		}
		full = append(full, ChatTurn{Role: role, Content: fmt.Sprintf("t%d", i)})
	}

	got := full.Trim(RetentionLimit)

	require.Len(t, got, 21)
	assert.Equal(t, SystemTurn(), got[0])
	assert.Equal(t, full[6:], got[1:])
	assert.Equal(t, "t5", got[1].Content)
	assert.Equal(t, "t24", got[20].Content)
}

func TestTrim_ShortTranscriptUnchanged(t *testing.T) {
	tests := []struct {
		name string
		in   Transcript
	}{
		{name: "system only", in: NewTranscript()},
		{name: "one pair", in: conversation(1)},
		{name: "exactly at limit", in: conversation(10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Trim(RetentionLimit)
			assert.Equal(t, tt.in, got)
		})
	}
}

func TestTrim_WithoutSystemHead(t *testing.T) {
	var in Transcript
	for i := 0; i < 30; i++ {
		in = append(in, ChatTurn{Role: RoleUser, Content: fmt.Sprintf("m%d", i)})
	}

	got := in.Trim(RetentionLimit)
	require.Len(t, got, 20)
	assert.Equal(t, "m10", got[0].Content)
	assert.Equal(t, "m29", got[19].Content)

	assert.Empty(t, Transcript{}.Trim(RetentionLimit))
}

func TestTrim_DoesNotAliasInput(t *testing.T) {
	in := conversation(15)
	got := in.Trim(RetentionLimit)
	got[1].Content = "changed"
	assert.NotEqual(t, "changed", in[11].Content)
}

func TestTranscript_JSONLayout(t *testing.T) {
	raw, err := json.Marshal(Transcript{SystemTurn(), {Role: RoleUser, Content: "hi"}})
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"role":"system","content":"`+SystemPreamble+`"},
		{"role":"user","content":"hi"}
	]`, string(raw))
}

func TestTextResult(t *testing.T) {
	res := TextResult(`say "hi"`)
	assert.JSONEq(t, `"say \"hi\""`, string(res.Response))
	assert.Nil(t, res.Result)
}

func TestKeyHelpers(t *testing.T) {
	assert.Equal(t, DefaultSessionKey, KeyOrDefault(""))
	assert.Equal(t, DefaultSessionKey, KeyOrDefault("   "))
	assert.Equal(t, "alice", KeyOrDefault(" alice "))

	key, err := ValidateKey(" bob ")
	require.NoError(t, err)
	assert.Equal(t, "bob", key)

	_, err = ValidateKey("\t")
	assert.ErrorIs(t, err, ErrEmptySessionKey)

	assert.NoError(t, ValidateMessage(" hi "))
	assert.ErrorIs(t, ValidateMessage(" \n "), ErrEmptyMessage)
}
