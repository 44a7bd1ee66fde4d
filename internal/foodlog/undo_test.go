package foodlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUndoStack(t *testing.T) {
	t.Parallel()

	var s undoStack
	_, ok := s.pop()
	assert.False(t, ok)

	s.push(command{kind: commandAdd})
	s.push(command{kind: commandDelete, index: 3})
	assert.Equal(t, 2, s.len())

	cmd, ok := s.pop()
	assert.True(t, ok)
	assert.Equal(t, commandDelete, cmd.kind)
	assert.Equal(t, 3, cmd.index)

	s.clear()
	assert.Zero(t, s.len())
}

func TestCommandKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "add", commandAdd.String())
	assert.Equal(t, "delete", commandDelete.String())
	assert.Equal(t, "update", commandUpdate.String())
}
