// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package filters holds the presentation helpers used by the HTML templates:
// date and datetime formatting, human-readable durations and newline to
// <br /> conversion. All functions are pure and can be used without the web
// layer.
package filters

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

// Default layouts.
const (
	DateLayout     = "2006-01-02 - Monday"
	DatetimeLayout = DateLayout + " at 3:04pm"
)

const lineBreak = "<br />"

// Date formats t with layout, or with [DateLayout] when layout is omitted.
// A nil t yields "".
func Date(t *time.Time, layout ...string) string {
	return format(t, DateLayout, layout)
}

// Datetime formats t with layout, or with [DatetimeLayout] (12-hour clock,
// lowercase am/pm, no leading zero on the hour) when layout is omitted.
// A nil t yields "".
func Datetime(t *time.Time, layout ...string) string {
	return format(t, DatetimeLayout, layout)
}

func format(t *time.Time, def string, layout []string) string {
	if t == nil {
		return ""
	}
	if len(layout) > 0 && layout[0] != "" {
		return t.Format(layout[0])
	}
	return t.Format(def)
}

// Duration renders a number of seconds as "1 day, 2 hours, 1 minute, 5 seconds".
// Zero components are omitted, so 0 and negative inputs yield "".
func Duration(seconds int64) string {
	if seconds <= 0 {
		return ""
	}

	minutes, seconds := seconds/60, seconds%60
	hours, minutes := minutes/60, minutes%60
	days, hours := hours/24, hours%24

	parts := make([]string, 0, 4)
	for _, p := range []struct {
		value int64
		unit  string
	}{
		{days, "day"},
		{hours, "hour"},
		{minutes, "minute"},
		{seconds, "second"},
	} {
		switch {
		case p.value > 1:
			parts = append(parts, fmt.Sprintf("%d %ss", p.value, p.unit))
		case p.value == 1:
			parts = append(parts, "1 "+p.unit)
		}
	}

	return strings.Join(parts, ", ")
}

// Nl2br escapes value for HTML and replaces every newline with <br />.
// With autoescape on, the result is returned as template.HTML so templates
// insert it verbatim. Otherwise it is a plain string.
func Nl2br(value string, autoescape bool) any {
	formatted := strings.Join(strings.Split(template.HTMLEscapeString(value), "\n"), lineBreak)
	if autoescape {
		return template.HTML(formatted)
	}
	return formatted
}

// FuncMap exposes the filters to html/template as date, datetime, duration
// and nl2br. date and datetime accept time.Time, *time.Time or nil.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"date": func(v any, layout ...string) string {
			return Date(asTime(v), layout...)
		},
		"datetime": func(v any, layout ...string) string {
			return Datetime(asTime(v), layout...)
		},
		"duration": func(v any) string {
			return Duration(asSeconds(v))
		},
		"nl2br": func(value string) template.HTML {
			return Nl2br(value, true).(template.HTML)
		},
	}
}

func asTime(v any) *time.Time {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return nil
		}
		return &t
	case *time.Time:
		return t
	default:
		return nil
	}
}

func asSeconds(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case time.Duration:
		return int64(n / time.Second)
	default:
		return 0
	}
}
