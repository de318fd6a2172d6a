package analytics

import (
	"fmt"
	"strings"
	"time"
)

// Period is the analyzed trade window. A zero Start means "everything".
type Period struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

const DefaultPeriod = "30d"

var periodDays = map[string]int{
	"7d":   7,
	"30d":  30,
	"90d":  90,
	"180d": 180,
	"365d": 365,
}

// ParsePeriod maps a dashboard period label to a concrete window ending at
// now. Empty input falls back to DefaultPeriod; unknown labels are an error
// so typos don't silently analyze the wrong window.
func ParsePeriod(label string, now time.Time) (Period, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		label = DefaultPeriod
	}
	if label == "all" {
		return Period{Label: label, End: now}, nil
	}
	days, ok := periodDays[label]
	if !ok {
		return Period{}, fmt.Errorf("unknown period %q (want 7d/30d/90d/180d/365d/all)", label)
	}
	return Period{
		Label: label,
		Start: now.AddDate(0, 0, -days),
		End:   now,
	}, nil
}
