package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopher-blog/internal/model"
)

func TestPrintUsers(t *testing.T) {
	var buf bytes.Buffer
	users := []model.User{
		{ID: 1, Name: "Alice", Email: "alice@example.com"},
		{ID: 2, Name: "Bob", Email: "bob@example.com"},
	}
	require.NoError(t, printUsers(&buf, users, 1))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "Alice")
	assert.True(t, strings.HasSuffix(lines[1], "admin"))
	assert.True(t, strings.HasSuffix(lines[2], "reader"))
}
