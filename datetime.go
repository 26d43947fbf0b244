package plainjson

import (
	"strings"
	"time"
)

// DateTimeKind tags how a DateTime is written.
type DateTimeKind uint8

const (
	KindUnspecified DateTimeKind = iota // "2006-01-02T15:04:05"
	KindUTC                             // "2006-01-02T15:04:05Z"
	KindLocal                           // "2006-01-02T15:04:05-07:00"
)

func (k DateTimeKind) String() string {
	switch k {
	case KindUTC:
		return "utc"
	case KindLocal:
		return "local"
	default:
		return "unspecified"
	}
}

// DateTime is a wall-clock time with an explicit kind. It round-trips its
// kind through JSON; time.Time values are written as UTC when their location
// is time.UTC and as local-with-offset otherwise.
type DateTime struct {
	Time time.Time
	Kind DateTimeKind
}

// Local tags t with KindLocal; it is written with t's own UTC offset.
func Local(t time.Time) DateTime { return DateTime{Time: t, Kind: KindLocal} }

// UTC converts t to UTC and tags it with KindUTC.
func UTC(t time.Time) DateTime { return DateTime{Time: t.UTC(), Kind: KindUTC} }

// Unspecified keeps t's wall clock and drops the zone on output.
func Unspecified(t time.Time) DateTime { return DateTime{Time: t, Kind: KindUnspecified} }

// Equal reports whether both values name the same instant with the same kind.
// Unspecified values compare by wall clock.
func (d DateTime) Equal(o DateTime) bool {
	if d.Kind != o.Kind {
		return false
	}
	if d.Kind == KindUnspecified {
		return wall(d.Time).Equal(wall(o.Time))
	}
	return d.Time.Equal(o.Time)
}

func (d DateTime) String() string {
	return string(appendDateTime(nil, d))
}

const (
	layoutWall   = "2006-01-02T15:04:05"
	layoutOffset = "2006-01-02T15:04:05-07:00"
)

func appendDateTime(dst []byte, d DateTime) []byte {
	switch d.Kind {
	case KindUTC:
		dst = d.Time.UTC().AppendFormat(dst, layoutWall)
		return append(dst, 'Z')
	case KindLocal:
		return d.Time.AppendFormat(dst, layoutOffset)
	default:
		return d.Time.AppendFormat(dst, layoutWall)
	}
}

func appendTime(dst []byte, t time.Time) []byte {
	if t.Location() == time.UTC {
		return appendDateTime(dst, DateTime{Time: t, Kind: KindUTC})
	}
	return appendDateTime(dst, DateTime{Time: t, Kind: KindLocal})
}

var (
	zonedLayouts = [...]string{
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02T15:04:05-0700",
		"2006-01-02 15:04:05Z07:00",
		"2006-01-02 15:04:05-0700",
		"2006-01-02T15:04Z07:00",
	}
	wallLayouts = [...]string{
		layoutWall,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		"2006-01-02",
	}
)

// parseDateTime decides the kind from the suffix: "Z" is UTC, a numeric
// offset is local (kept as a fixed zone), no suffix is unspecified.
func parseDateTime(s string) (DateTime, bool) {
	s = strings.TrimSpace(s)
	if len(s) < len("2006-01-02") {
		return DateTime{}, false
	}
	if hasZoneSuffix(s) {
		for _, l := range zonedLayouts {
			t, err := time.Parse(l, s)
			if err != nil {
				continue
			}
			last := s[len(s)-1]
			if last == 'Z' || last == 'z' {
				return DateTime{Time: t.UTC(), Kind: KindUTC}, true
			}
			return DateTime{Time: t, Kind: KindLocal}, true
		}
		return DateTime{}, false
	}
	for _, l := range wallLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return DateTime{Time: t, Kind: KindUnspecified}, true
		}
	}
	return DateTime{}, false
}

func parseTime(s string) (time.Time, bool) {
	d, ok := parseDateTime(s)
	if !ok {
		return time.Time{}, false
	}
	if d.Kind == KindUnspecified {
		t := d.Time
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.Local), true
	}
	return d.Time, true
}

// hasZoneSuffix looks for Z or a signed offset after the time-of-day.
func hasZoneSuffix(s string) bool {
	last := s[len(s)-1]
	if last == 'Z' || last == 'z' {
		return true
	}
	if len(s) <= 10 {
		return false
	}
	tail := s[10:]
	return strings.LastIndexAny(tail, "+-") > 0
}

func wall(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
