package stripe

import (
	"time"

	"github.com/kbukum/stripefdw/fdw"
)

// session is the state of one open scan.
type session struct {
	id      string
	object  ObjectType
	url     string
	started time.Time
	buffer  *fdw.RowBuffer
	served  int
}

func newSession(id string, obj ObjectType, url string, rows []fdw.Row) *session {
	return &session{
		id:      id,
		object:  obj,
		url:     url,
		started: time.Now(),
		buffer:  fdw.NewRowBuffer(rows),
	}
}

func (s *session) next() (fdw.Row, bool) {
	row, ok := s.buffer.Pop()
	if ok {
		s.served++
	}
	return row, ok
}

func (s *session) release() {
	s.buffer.Release()
}
