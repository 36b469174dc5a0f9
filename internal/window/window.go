package window

import "time"

// Window is a half-open [Start, End) reporting interval in UTC.
type Window struct {
	Start time.Time
	End   time.Time
}

// Resolve returns the one-hour window ending at the most recent hour
// boundary before or at now. Both bounds are UTC; End has zero
// minutes, seconds and sub-second components.
func Resolve(now time.Time) Window {
	end := now.UTC().Truncate(time.Hour)
	return Window{
		Start: end.Add(-time.Hour),
		End:   end,
	}
}

// Duration returns the window length.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}
