package store

import "time"

// idSource hands out wall-clock millisecond ids, bumping past the previous
// id when the clock has not advanced (or went backwards).
type idSource struct {
	last int64
}

func (s *idSource) next(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}

func (s *idSource) observe(id int64) {
	if id > s.last {
		s.last = id
	}
}
