package hint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_KnownShapes(t *testing.T) {
	shapes := map[string]string{
		"direct":     `{"text":"hello"}`,
		"wrapped":    `{"response":{"text":"hello"}}`,
		"candidates": `{"candidates":[{"content":{"parts":[{"text":"hello"}]}}]}`,
		"string":     `"hello"`,
	}
	for name, raw := range shapes {
		t.Run(name, func(t *testing.T) {
			got, err := Extract([]byte(raw))
			require.NoError(t, err)
			assert.Equal(t, "hello", got)
		})
	}
}

func TestExtract_Priority(t *testing.T) {
	got, err := Extract([]byte(`{"text":"direct","response":{"text":"wrapped"},"candidates":[{"content":{"parts":[{"text":"cand"}]}}]}`))
	require.NoError(t, err)
	assert.Equal(t, "direct", got)

	got, err = Extract([]byte(`{"text":"  ","response":{"text":"wrapped"}}`))
	require.NoError(t, err)
	assert.Equal(t, "wrapped", got)
}

func TestExtract_SkipsBlankParts(t *testing.T) {
	got, err := Extract([]byte(`{"candidates":[{"content":{"parts":[{"text":""}]}},{"content":{"parts":[{"inlineData":{}},{"text":" second "}]}}]}`))
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestExtract_Empty(t *testing.T) {
	for _, raw := range []string{``, `"   "`, `{"text":""}`, `{"candidates":[]}`, `{"candidates":[{"finishReason":"SAFETY"}]}`} {
		_, err := Extract([]byte(raw))
		assert.ErrorIs(t, err, ErrEmptyResponse, raw)
	}
}

func TestExtract_Unrecognized(t *testing.T) {
	for _, raw := range []string{`{"foo":"bar"}`, `[1,2]`, `not json`, `42`} {
		_, err := Extract([]byte(raw))
		assert.ErrorIs(t, err, ErrUnrecognizedShape, raw)
	}
}
