package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run(&buf))

	want := "(0, 0)\n(0, 1)\n(0, 2)\n(1, 2)\n(2, 2)\n(2, 3)\n(2, 4)\n(3, 4)\n(4, 4)\n"
	assert.Equal(t, want, buf.String())
}

func TestPrintPathNoPath(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printPath(&buf, nil))
	assert.Equal(t, "no path found\n", buf.String())
}
