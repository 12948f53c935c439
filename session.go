package moda

import "time"

// Session represents a conversation session: the server correlation id,
// the ordered turns, and the ordered conversation entries.
type Session struct {
	// ID is the server-issued correlation id. It is empty until the first
	// streamed event carrying one arrives and immutable afterwards.
	ID        string
	Turns     []*Turn
	Entries   []*Entry
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OpenTurn returns the currently open turn, or nil when no turn is open.
func (s *Session) OpenTurn() *Turn {
	for i := len(s.Turns) - 1; i >= 0; i-- {
		if s.Turns[i].Open {
			return s.Turns[i]
		}
	}
	return nil
}

// clone returns a deep copy suitable for handing to a rendering layer.
func (s *Session) clone() Session {
	out := Session{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if len(s.Turns) > 0 {
		out.Turns = make([]*Turn, len(s.Turns))
		for i, t := range s.Turns {
			tc := *t
			tc.Stages = append([]StageStatus(nil), t.Stages...)
			if t.Search != nil {
				sc := *t.Search
				tc.Search = &sc
			}
			out.Turns[i] = &tc
		}
	}
	if len(s.Entries) > 0 {
		out.Entries = make([]*Entry, len(s.Entries))
		for i, e := range s.Entries {
			ec := *e
			ec.Stages = append([]StageStatus(nil), e.Stages...)
			ec.Followups = append([]string(nil), e.Followups...)
			out.Entries[i] = &ec
		}
	}
	return out
}
