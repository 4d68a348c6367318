package types

import (
	"sync/atomic"

	"github.com/google/uuid"
)

type SessionID string
type MessageID uint64

func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}

// MessageIDs hands out strictly increasing message ids, starting at 1.
type MessageIDs struct {
	last atomic.Uint64
}

// Next returns the next id in the sequence. Safe for concurrent use.
func (m *MessageIDs) Next() MessageID {
	return MessageID(m.last.Add(1))
}
