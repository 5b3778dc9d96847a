// Package presenter shapes aggregates into what the dashboard renders:
// stat cards, chart series and per-section load states.
package presenter

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

// Percent rounds to a whole number, "66%".
func Percent(v float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(v)))
}

// Duration renders seconds as "Xm Ys".
func Duration(seconds float64) string {
	total := int(math.Round(seconds))
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%dm %ds", total/60, total%60)
}

func Number(n int) string {
	return humanize.Comma(int64(n))
}

// Ago is the relative time of t as seen at now, "3 minutes ago".
func Ago(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// Label turns a stored key into display text: "social_media" becomes
// "Social media".
func Label(key string) string {
	s := strings.TrimSpace(strings.ReplaceAll(key, "_", " "))
	if s == "" {
		return "Unknown"
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
