package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextTxtTrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regulation.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n\n  Article 5. Data minimization.  \n\n"), 0o644))

	text, err := Text(path)
	require.NoError(t, err)
	assert.Equal(t, "Article 5. Data minimization.", text)
}

func TestTextTxtWhitespaceOnlyIsEmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("   \n\t\n"), 0o644))

	text, err := Text(path)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestTextUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slides.pptx")
	require.NoError(t, os.WriteFile(path, []byte("irrelevant"), 0o644))

	_, err := Text(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("gdpr.PDF"))
	assert.True(t, IsSupported("policy.docx"))
	assert.True(t, IsSupported("notes.txt"))
	assert.False(t, IsSupported("archive.zip"))
	assert.False(t, IsSupported("noextension"))
}
