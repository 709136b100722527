package util

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const timeLayout = "2006-01-02 15:04:05"

// FormatTime renders an epoch-milliseconds timestamp in local time.
func FormatTime(ms int64) string {
	if ms <= 0 {
		return "-"
	}
	return time.UnixMilli(ms).Format(timeLayout)
}

// FormatLatency renders milliseconds, switching to seconds from 1000 ms.
func FormatLatency(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%d ms", ms)
	}
	return decimal.New(ms, -3).StringFixed(2) + " s"
}

// TruncateString cuts s to maxLen runes, marking the cut with "…".
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if maxLen <= 0 || len(runes) <= maxLen {
		return s
	}
	if maxLen == 1 {
		return "…"
	}
	return string(runes[:maxLen-1]) + "…"
}
