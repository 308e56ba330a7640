package attendance

import (
	"fmt"
	"time"
)

// Config holds configuration for the attendance reconciler.
type Config struct {
	// LateCutoff is the local wall-clock time ("HH:MM") after which a
	// check-in is flagged late.
	LateCutoff string `mapstructure:"late_cutoff" default:"09:00"`
}

// CutoffOffset returns the late cutoff as an offset from the start of the
// day. An unparsable value is rejected rather than silently defaulted.
func (c Config) CutoffOffset() (time.Duration, error) {
	t, err := time.Parse("15:04", c.LateCutoff)
	if err != nil {
		return 0, fmt.Errorf("invalid late_cutoff %q: %w", c.LateCutoff, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
