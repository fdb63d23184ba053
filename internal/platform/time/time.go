// Package time parses the day bounds report filters take
package time

import (
	"fmt"
	"strings"
	"time"
)

// DayLayout is the layout of day precision request parameters
const DayLayout = "2006-01-02"

// ParseDay parses an optional YYYY-MM-DD bound in UTC
// blank input is no bound and returns nil
func ParseDay(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return nil, fmt.Errorf("want YYYY-MM-DD, got %q", s)
	}
	return &t, nil
}
