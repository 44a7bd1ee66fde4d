// internal/foodlog/undo.go
package foodlog

import "diet-manager/internal/models"

type commandKind int

const (
	commandAdd commandKind = iota
	commandDelete
	commandUpdate
)

func (k commandKind) String() string {
	switch k {
	case commandAdd:
		return "add"
	case commandDelete:
		return "delete"
	case commandUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// command is the recorded inverse of one log mutation. Entries are copies,
// never the values held by the live log.
//
//	add:    after is the added entry
//	delete: before is the removed entry, index its former position
//	update: before and after are the entry around the change
type command struct {
	kind   commandKind
	before models.LogEntry
	after  models.LogEntry
	index  int
}

// undoStack is a LIFO of commands. Only Log.Undo pops it.
type undoStack struct {
	commands []command
}

func (s *undoStack) push(c command) {
	s.commands = append(s.commands, c)
}

func (s *undoStack) pop() (command, bool) {
	if len(s.commands) == 0 {
		return command{}, false
	}
	last := len(s.commands) - 1
	c := s.commands[last]
	s.commands = s.commands[:last]
	return c, true
}

func (s *undoStack) len() int { return len(s.commands) }

func (s *undoStack) clear() { s.commands = nil }
