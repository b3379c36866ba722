package astfmt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristofer/som/pkg/parser"
)

// TestFixtures parses every testdata/*.som file and compares its
// rendered form, whitespace trimmed, against the matching *.som.ast
// golden file.
func TestFixtures(t *testing.T) {
	sources, err := filepath.Glob("testdata/*.som")
	require.NoError(t, err)
	require.NotEmpty(t, sources)

	for _, path := range sources {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			source, err := os.Open(path)
			require.NoError(t, err)
			defer source.Close()

			p := parser.New(source, filepath.Base(path))
			class, err := p.ParseClass()
			require.NoError(t, err)

			golden, err := os.ReadFile(path + ".ast")
			require.NoError(t, err)

			assert.Equal(t, strings.TrimSpace(string(golden)), strings.TrimSpace(Format(class)))
		})
	}
}
