// Package codec converts time-based leaf payloads to and from their
// canonical text form. Leaf editors use these codecs to round-trip user input
// without losing precision.
package codec

import (
	"fmt"
	"strings"
	"time"
)

// Text converts between a payload T and its canonical text form.
type Text[T any] interface {
	Format(v T) string
	Parse(s string) (T, error)
}

// TimeRFC3339 returns a Text codec for time.Time using RFC 3339 with
// nanoseconds. Formatting normalizes to UTC.
func TimeRFC3339() Text[time.Time] { return rfc3339Codec{} }

// Duration returns a Text codec for time.Duration using Go duration syntax
// ("1h2m3s").
func Duration() Text[time.Duration] { return durationCodec{} }

type rfc3339Codec struct{}

func (rfc3339Codec) Format(t time.Time) string {
	// Go trims trailing zeros from RFC3339Nano.
	return t.UTC().Format(time.RFC3339Nano)
}

func (rfc3339Codec) Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, fmt.Errorf("codec: invalid RFC3339 time %q: %w", s, err)
	}
	return t, nil
}

type durationCodec struct{}

func (durationCodec) Format(d time.Duration) string { return d.String() }

func (durationCodec) Parse(s string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("codec: invalid duration %q: %w", s, err)
	}
	return d, nil
}
