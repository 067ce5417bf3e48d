package mheap

import "fmt"

// Limited wraps a Segment and refuses to grow it past a byte limit.
type Limited struct {
	Segment
	max int
}

// Limit returns seg capped at max bytes. Growth that would cross the cap
// fails with ErrGrowFail and leaves seg untouched.
func Limit(seg Segment, max int) *Limited {
	return &Limited{Segment: seg, max: max}
}

// Grow extends the wrapped segment if the result stays within the limit.
func (l *Limited) Grow(delta int) (int, error) {
	if delta > 0 && l.max-l.Segment.Len() < delta {
		return 0, fmt.Errorf("%w: limit %d bytes reached (end=%d, delta=%d)",
			ErrGrowFail, l.max, l.Segment.Len(), delta)
	}
	return l.Segment.Grow(delta)
}

// Max returns the growth limit.
func (l *Limited) Max() int { return l.max }
