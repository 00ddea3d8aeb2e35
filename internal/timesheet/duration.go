package timesheet

import (
	"fmt"
	"time"
)

// FormatDuration renders a daily work time as H:MM:SS with an unpadded hour.
func FormatDuration(d time.Duration) string {
	sign, h, m, s := split(d)
	return fmt.Sprintf("%s%d:%02d:%02d", sign, h, m, s)
}

// FormatTotal renders a weekly total as HH:MM:SS. The hour is padded to two
// digits but not capped, so 32:54:47 and 00:54:47 are both valid. Negative
// totals carry a leading minus on the magnitude.
func FormatTotal(d time.Duration) string {
	sign, h, m, s := split(d)
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, h, m, s)
}

// split breaks d into whole hours, minutes and seconds of its magnitude.
func split(d time.Duration) (sign string, hours, minutes, seconds int64) {
	total := int64(d / time.Second)
	if total < 0 {
		sign = "-"
		total = -total
	}
	return sign, total / 3600, (total % 3600) / 60, total % 60
}
