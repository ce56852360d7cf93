package hint

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_RolesAndTemplate(t *testing.T) {
	b := NewBuilder("BE CIPHER", 0)
	history := []Message{
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: "hello recruit"},
		{Role: RoleSystem, Content: "note"},
	}
	snapshot := append([]Message(nil), history...)

	p := b.Build("  Caesar Cipher basics ", " how? ", history, false)

	require.Len(t, p.Contents, 4)
	assert.Equal(t, "user", p.Contents[0].Role)
	assert.Equal(t, "model", p.Contents[1].Role)
	assert.Equal(t, "system", p.Contents[2].Role)
	assert.Equal(t, "hello recruit", p.Contents[1].Parts[0].Text)

	last := p.Contents[3]
	assert.Equal(t, "user", last.Role)
	assert.Equal(t, "BE CIPHER\n\nCONTEXT: Caesar Cipher basics\n\nUSER QUESTION: how?", last.Parts[0].Text)

	require.NotNil(t, p.GenerationConfig)
	require.NotNil(t, p.GenerationConfig.Temperature)
	assert.InDelta(t, 0.7, *p.GenerationConfig.Temperature, 1e-6)
	assert.Equal(t, snapshot, history)
}

func TestBuild_LevelComplete(t *testing.T) {
	b := NewBuilder("", 0.2)
	p := b.Build("ctx", "q", nil, true)

	text := p.Contents[0].Parts[0].Text
	assert.True(t, strings.HasPrefix(text, DefaultSystemInstruction))
	ctxStart := strings.Index(text, "CONTEXT: ")
	qStart := strings.Index(text, "USER QUESTION: ")
	require.True(t, ctxStart >= 0 && qStart > ctxStart)
	assert.Contains(t, text[ctxStart:qStart], levelCompleteClause)
	assert.InDelta(t, 0.2, *p.GenerationConfig.Temperature, 1e-6)
}

func TestOffline_Rules(t *testing.T) {
	assert.Contains(t, Offline("anything", "What IS encryption?"), "Encryption is")
	assert.Contains(t, Offline("Caesar Cipher basics", "how do I decrypt this?"), "slid the same number")
	assert.Contains(t, Offline("Man-in-the-Middle attack", "how to prevent it"), "HTTPS")
}

func TestOffline_Deterministic(t *testing.T) {
	a := Offline("Caesar cipher basics", "how do I decrypt this?")
	b := Offline("Caesar cipher basics", "how do I decrypt this?")
	assert.Equal(t, a, b)
}

func TestOffline_Filler(t *testing.T) {
	got := Offline("Block ciphers split data. More text here.", "no idea")
	assert.Contains(t, got, "Block ciphers split data.")
	assert.NotContains(t, got, "More text")
	assert.NotEmpty(t, Offline("", ""))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, MsgAuth, Classify(&ProviderError{Kind: KindAuth, Err: errors.New("x")}))
	assert.Equal(t, MsgRateLimit, Classify(errors.New("429 Too Many Requests")))
	assert.Equal(t, MsgNoSignal, Classify(ErrEmptyResponse))
	assert.Equal(t, MsgBlocked, Classify(nil))
	assert.Equal(t, MsgBlocked, Classify(ErrUnavailable))

	got := Classify(errors.New("connection reset by peer"))
	assert.Contains(t, got, "connection reset by peer")
	assert.True(t, strings.HasPrefix(got, msgConnPrefix))
}

func TestValidAPIKey(t *testing.T) {
	assert.True(t, ValidAPIKey(testKey))
	assert.False(t, ValidAPIKey(""))
	assert.False(t, ValidAPIKey("AIza with spaces in it 1234567890123"))
	assert.False(t, ValidAPIKey("changeme-changeme-changeme-changeme"))
}

// v1 endpoints reject systemInstruction, so the payload never carries it.
func TestBuild_PayloadHasNoSystemInstruction(t *testing.T) {
	raw, err := json.Marshal(NewBuilder("BE CIPHER", 0.4).Build("ctx", "q", nil, false))
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "systemInstruction")
	assert.Contains(t, fields, "contents")
	assert.Contains(t, string(fields["contents"]), "BE CIPHER")
}
