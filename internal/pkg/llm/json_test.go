package llm

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalJSONPlain(t *testing.T) {
	var out struct {
		Summary string `json:"summary"`
	}
	require.NoError(t, UnmarshalJSON(`{"summary":"ok"}`, &out))
	assert.Equal(t, "ok", out.Summary)
}

func TestUnmarshalJSONFenced(t *testing.T) {
	var out struct {
		Summary string `json:"summary"`
	}
	raw := "```json\n{\"summary\":\"fenced\"}\n```"
	require.NoError(t, UnmarshalJSON(raw, &out))
	assert.Equal(t, "fenced", out.Summary)
}

func TestUnmarshalJSONEmbeddedInProse(t *testing.T) {
	var out struct {
		Summary string `json:"summary"`
	}
	raw := "Sure, here is the result:\n{\"summary\":\"prose\"}\nLet me know if you need more."
	require.NoError(t, UnmarshalJSON(raw, &out))
	assert.Equal(t, "prose", out.Summary)
}

func TestUnmarshalJSONGarbage(t *testing.T) {
	var out map[string]interface{}
	assert.Error(t, UnmarshalJSON("not json at all", &out))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "abcde", Truncate("abcdefgh", 5))
	assert.Equal(t, "abc", Truncate("abc", 0))
}

func TestTruncateCountsRunes(t *testing.T) {
	// The cap counts characters, and a cut never splits a rune.
	assert.Equal(t, "héll", Truncate("héllo", 4))
	assert.Equal(t, "日本", Truncate("日本語", 2))
	assert.True(t, utf8.ValidString(Truncate(strings.Repeat("a", 499)+"é more", 500)))
	assert.Equal(t, "日本語", Truncate("日本語", 3))
}
