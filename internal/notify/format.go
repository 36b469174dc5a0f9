package notify

import (
	"fmt"
	"strconv"
	"time"

	"github.com/queuepulse/backend/internal/summary"
	"github.com/queuepulse/backend/internal/window"
)

// Format renders the notification text for one window. Bounds are
// shifted into the display timezone offset and shown as HH:MM. A
// zero-activity window gets a short single-line variant with no
// numeric breakdown.
func Format(s summary.Summary, w window.Window, displayOffsetHours int) string {
	zone := time.FixedZone("display", displayOffsetHours*3600)
	start := w.Start.In(zone).Format("15:04")
	end := w.End.In(zone).Format("15:04")

	if s.ZeroActivity() {
		return fmt.Sprintf("<!here>\nNo inbound contacts between %s~%s.\n", start, end)
	}

	msg := fmt.Sprintf("<!here>\nInbound summary for %s~%s:\n", start, end)
	msg += fmt.Sprintf("- Answer rate: %d/%d (%s%%)\n",
		int(s.ContactsHandled), int(s.ContactsCreated), formatNumber(s.AnswerRate))
	msg += fmt.Sprintf("- SVL: %d/%d (%s%%)\n",
		s.ServiceLevelCount, int(s.ContactsCreated), formatNumber(s.ServiceLevel))
	msg += fmt.Sprintf("- ASA: %ss\n", formatNumber(s.AvgQueueAnswerTime))
	return msg
}

// formatNumber prints a value without trailing zeros (80, 80.5, 80.25).
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
