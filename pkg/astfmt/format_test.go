package astfmt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristofer/som/pkg/parser"
)

func TestFormatRendersFieldsAndMethods(t *testing.T) {
	source := `Counter = (
		|count|
		increment = ( count := count + 1 )
	)`
	p := parser.New(strings.NewReader(source), "counter.som")
	class, err := p.ParseClass()
	require.NoError(t, err)

	out := Format(class)
	assert.Contains(t, out, "Class Counter (super Object)")
	assert.Contains(t, out, "instance fields: count")
	assert.Contains(t, out, "method increment")
	assert.Contains(t, out, "(count := (count + 1))")
}

func TestFormatIsDeterministicAcrossRuns(t *testing.T) {
	source := `Hello = (
		run = ( 'Hello, World from SOM' println )
	)`

	render := func() string {
		p := parser.New(strings.NewReader(source), "hello.som")
		class, err := p.ParseClass()
		require.NoError(t, err)
		return Format(class)
	}

	first := render()
	second := render()
	assert.Equal(t, first, second)
}

func TestFormatPrimitiveMethod(t *testing.T) {
	source := `Hello = (
		hash = primitive
	)`
	p := parser.New(strings.NewReader(source), "hello.som")
	class, err := p.ParseClass()
	require.NoError(t, err)

	assert.Contains(t, Format(class), "method hash primitive")
}
