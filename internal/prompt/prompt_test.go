package prompt

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsk(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("  hello world \nlast"), &out)

	s, err := p.Ask("Name")
	require.NoError(t, err)
	assert.Equal(t, "hello world", s)
	assert.Equal(t, "Name: ", out.String())

	// 改行なしの最終行も読める
	s, err = p.Ask("Again")
	require.NoError(t, err)
	assert.Equal(t, "last", s)

	_, err = p.Ask("Empty")
	assert.ErrorIs(t, err, io.EOF)
}

func TestAskNumbers(t *testing.T) {
	p := New(strings.NewReader("2.5\nabc\n42\n4.2\n"), io.Discard)

	f, err := p.AskFloat("Hours")
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)

	_, err = p.AskFloat("Hours")
	assert.ErrorContains(t, err, "not a number")

	n, err := p.AskInt("Percent")
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = p.AskInt("Percent")
	assert.ErrorContains(t, err, "not a whole number")
}

func TestChoose(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("2\n\n5\nx\nq\n"), &out)
	options := []string{"alpha", "beta"}

	i, err := p.Choose("Pick one:", options)
	require.NoError(t, err)
	assert.Equal(t, 1, i)
	assert.Contains(t, out.String(), "  1) alpha\n  2) beta\n")

	_, err = p.Choose("Pick one:", options)
	assert.ErrorIs(t, err, ErrCancelled)

	_, err = p.Choose("Pick one:", options)
	assert.ErrorIs(t, err, ErrInvalidChoice)

	_, err = p.Choose("Pick one:", options)
	assert.ErrorIs(t, err, ErrInvalidChoice)

	_, err = p.Choose("Pick one:", options)
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestChooseNoOptions(t *testing.T) {
	p := New(strings.NewReader(""), io.Discard)
	_, err := p.Choose("Pick:", nil)
	assert.ErrorIs(t, err, ErrCancelled)
}
