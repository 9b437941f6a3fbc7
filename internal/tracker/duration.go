package tracker

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	hoursPerDay = 8
	daysPerWeek = 5
)

var isoDurationRe = regexp.MustCompile(`^P(?:(\d+)W)?(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// ParseISOHours converts an ISO-8601 duration as reported by the tracker
// into working hours. A week is 5 working days and a day is 8 hours; minutes
// and seconds are ignored. An empty string is zero.
func ParseISOHours(s string) (int, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, nil
	}

	m := isoDurationRe.FindStringSubmatch(s)
	if m == nil || s == "P" || strings.HasSuffix(s, "T") {
		return 0, fmt.Errorf("invalid ISO-8601 duration %q (expected e.g. P1W2DT3H)", s)
	}

	weeks, _ := strconv.Atoi(m[1])
	days, _ := strconv.Atoi(m[2])
	hours, _ := strconv.Atoi(m[3])

	return (weeks*daysPerWeek+days)*hoursPerDay + hours, nil
}
