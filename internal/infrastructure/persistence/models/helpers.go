package models

import (
	"strconv"
	"strings"
	"time"
)

func joinStrings(values []string) string {
	return strings.Join(values, ",")
}

func splitStrings(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func joinWeekdays(days []time.Weekday) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(int(d))
	}
	return strings.Join(parts, ",")
}

func splitWeekdays(s string) []time.Weekday {
	var days []time.Weekday
	for _, p := range splitStrings(s) {
		n, err := strconv.Atoi(p)
		if err != nil {
			continue
		}
		days = append(days, time.Weekday(n))
	}
	return days
}
