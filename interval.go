package plainjson

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	tick = 100 * time.Nanosecond
	day  = 24 * time.Hour
)

// appendInterval writes d as d.hh:mm:ss.fffffff (days unpadded, 100ns ticks).
func appendInterval(dst []byte, d time.Duration) []byte {
	u := uint64(d)
	if d < 0 {
		dst = append(dst, '-')
		u = -u
	}
	dst = strconv.AppendUint(dst, u/uint64(day), 10)
	u %= uint64(day)
	dst = append(dst, '.')
	dst = appendPadded(dst, u/uint64(time.Hour), 2)
	u %= uint64(time.Hour)
	dst = append(dst, ':')
	dst = appendPadded(dst, u/uint64(time.Minute), 2)
	u %= uint64(time.Minute)
	dst = append(dst, ':')
	dst = appendPadded(dst, u/uint64(time.Second), 2)
	u %= uint64(time.Second)
	dst = append(dst, '.')
	return appendPadded(dst, u/uint64(tick), 7)
}

func appendPadded(dst []byte, v uint64, width int) []byte {
	var b [20]byte
	i := len(b)
	for v >= 10 {
		i--
		b[i] = byte('0' + v%10)
		v /= 10
	}
	i--
	b[i] = byte('0' + v)
	for n := len(b) - i; n < width; n++ {
		dst = append(dst, '0')
	}
	return append(dst, b[i:]...)
}

// parseInterval accepts [-]d, [-][d.]hh:mm, [-][d.]hh:mm:ss and
// [-][d.]hh:mm:ss.f with up to seven fraction digits.
func parseInterval(s string) (time.Duration, bool) {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	if s == "" {
		return 0, false
	}

	colon := strings.IndexByte(s, ':')
	if colon < 0 {
		days, ok := parseUnit(s, maxDays)
		if !ok {
			return 0, false
		}
		return sign(time.Duration(days)*day, neg), true
	}

	var total time.Duration
	if dot := strings.IndexByte(s[:colon], '.'); dot >= 0 {
		days, ok := parseUnit(s[:dot], maxDays)
		if !ok {
			return 0, false
		}
		total = time.Duration(days) * day
		s = s[dot+1:]
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	var frac string
	if last := parts[len(parts)-1]; len(parts) == 3 {
		if dot := strings.IndexByte(last, '.'); dot >= 0 {
			parts[2], frac = last[:dot], last[dot+1:]
		}
	}

	h, ok := parseUnit(parts[0], 23)
	if !ok {
		return 0, false
	}
	m, ok := parseUnit(parts[1], 59)
	if !ok {
		return 0, false
	}
	var sec uint64
	if len(parts) == 3 {
		if sec, ok = parseUnit(parts[2], 59); !ok {
			return 0, false
		}
	}
	if total, ok = addDuration(total, time.Duration(h)*time.Hour+time.Duration(m)*time.Minute+time.Duration(sec)*time.Second); !ok {
		return 0, false
	}

	if frac != "" {
		if len(frac) > 7 {
			return 0, false
		}
		ticks, err := strconv.ParseUint(frac+"0000000"[len(frac):], 10, 64)
		if err != nil {
			return 0, false
		}
		if total, ok = addDuration(total, time.Duration(ticks)*tick); !ok {
			return 0, false
		}
	}
	return sign(total, neg), true
}

// maxDays is the largest whole day count a time.Duration holds.
const maxDays = uint64(math.MaxInt64 / int64(day))

// addDuration adds two non-negative durations, false on overflow.
func addDuration(a, b time.Duration) (time.Duration, bool) {
	if a > math.MaxInt64-b {
		return 0, false
	}
	return a + b, true
}

func parseUnit(s string, max uint64) (uint64, bool) {
	if s == "" || s[0] == '+' || s[0] == '-' {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || v > max {
		return 0, false
	}
	return v, true
}

func sign(d time.Duration, neg bool) time.Duration {
	if neg {
		return -d
	}
	return d
}
