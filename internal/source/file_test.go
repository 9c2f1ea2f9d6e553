package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDomainsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "domains.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileSource_SkipsCommentsAndBlanks(t *testing.T) {
	path := writeDomainsFile(t, "# watched domains\n\na.com\n  b.com  \n\n# disabled for now\n# c.com\nd.com\n")

	domains, err := NewFileSource(path, zerolog.Nop()).Domains(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"a.com", "b.com", "d.com"}, domains)
}

func TestFileSource_PreservesOrderAndDuplicates(t *testing.T) {
	path := writeDomainsFile(t, "b.com\na.com\nb.com\n")

	domains, err := NewFileSource(path, zerolog.Nop()).Domains(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"b.com", "a.com", "b.com"}, domains)
}

func TestFileSource_MissingFile(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.txt"), zerolog.Nop()).Domains(context.Background())
	assert.Error(t, err)
}
