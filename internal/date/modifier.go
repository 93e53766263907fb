package date

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"
	"github.com/tartampluch/go-date/internal/config"
)

type unit int

const (
	unitMicro unit = iota
	unitMilli
	unitSecond
	unitMinute
	unitHour
	unitDay
	unitWeek
	unitFortnight
	unitMonth
	unitYear
)

var units = map[string]unit{
	"usec": unitMicro, "microsecond": unitMicro,
	"msec": unitMilli, "millisecond": unitMilli,
	"sec": unitSecond, "second": unitSecond,
	"min": unitMinute, "minute": unitMinute,
	"hour":      unitHour,
	"day":       unitDay,
	"week":      unitWeek,
	"fortnight": unitFortnight,
	"month":     unitMonth,
	"year":      unitYear,
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// directions maps next/last/previous/this to a unit count or weekday move.
var directions = map[string]int{
	config.ModNext:     1,
	config.ModLast:     -1,
	config.ModPrevious: -1,
	config.ModThis:     0,
}

// Layouts tried, in order, for time of day items.
var clockLayouts = []string{"G:i", "G:i:s", "G:i:s.u", "ga", "g:ia", "g:i:sa"}

// relative accumulates offsets; they apply after every absolute item.
type relative struct {
	years, months, days int
	dur                 time.Duration
}

var unitDurations = map[unit]time.Duration{
	unitMicro:  time.Microsecond,
	unitMilli:  time.Millisecond,
	unitSecond: time.Second,
	unitMinute: time.Minute,
	unitHour:   time.Hour,
}

// add accumulates n units. It reports false when the time of day offset
// no longer fits a time.Duration.
func (r *relative) add(u unit, n int) bool {
	if d, ok := unitDurations[u]; ok {
		limit := int64(math.MaxInt64 / d)
		if v := int64(n); v > limit || v < -limit {
			return false
		}
		step := time.Duration(n) * d
		if (step > 0 && r.dur > math.MaxInt64-step) || (step < 0 && r.dur < -math.MaxInt64-step) {
			return false
		}
		r.dur += step
		return true
	}

	switch u {
	case unitDay:
		r.days += n
	case unitWeek:
		r.days += 7 * n
	case unitFortnight:
		r.days += 14 * n
	case unitMonth:
		r.months += n
	case unitYear:
		r.years += n
	}
	return true
}

func (r *relative) negate() {
	r.years, r.months, r.days, r.dur = -r.years, -r.months, -r.days, -r.dur
}

type dayOf int

const (
	dayOfNone dayOf = iota
	dayOfFirst
	dayOfLast
)

// weekdayMove is a pending "monday", "next monday" or "last monday".
type weekdayMove struct {
	set    bool
	target time.Weekday
	dir    int // 0 this, 1 next, -1 last
}

// Modify evaluates a modifier expression against base.
//
// Absolute items (dates, times, "today", "tomorrow", "noon", "@<unix>")
// apply immediately in order. Relative offsets ("+2 days", "next month",
// "8 minutes ago") accumulate and apply afterwards, so "tomorrow 08:00" is
// tomorrow at 08:00 while "08:00 tomorrow" is tomorrow at midnight.
func Modify(base time.Time, expr string) (time.Time, error) {
	words := strings.Fields(strings.ToLower(expr))
	t := base
	var (
		rel  relative
		day  dayOf
		move weekdayMove
	)

	fail := func(token string) (time.Time, error) {
		return time.Time{}, &ModifierError{Modifier: expr, Token: token}
	}

	for i := 0; i < len(words); i++ {
		w := words[i]
		switch {
		case w == config.ModNow:
		case w == config.ModToday || w == config.ModMidnight:
			t = now.With(t).BeginningOfDay()
		case w == config.ModNoon:
			t = setClock(t, 12, 0, 0, 0)
		case w == config.ModTomorrow:
			t = now.With(t).BeginningOfDay().AddDate(0, 0, 1)
		case w == config.ModYesterday:
			t = now.With(t).BeginningOfDay().AddDate(0, 0, -1)
		case w == config.ModAgo:
			rel.negate()
		case strings.HasPrefix(w, config.ModTimestamp):
			n, err := strconv.ParseInt(w[len(config.ModTimestamp):], 10, 64)
			if err != nil {
				return fail(w)
			}
			t = time.Unix(n, 0).UTC()
		case (w == config.ModFirst || w == config.ModLast) && i+2 < len(words) &&
			words[i+1] == config.ModDay && words[i+2] == config.ModOf:
			day = dayOfFirst
			if w == config.ModLast {
				day = dayOfLast
			}
			i += 2
		case w == config.ModNext || w == config.ModLast || w == config.ModPrevious || w == config.ModThis:
			if i+1 >= len(words) {
				return fail(w)
			}
			n := directions[w]
			i++
			if wd, ok := weekdays[words[i]]; ok {
				move = weekdayMove{set: true, target: wd, dir: n}
				continue
			}
			u, ok := lookupUnit(words[i])
			if !ok || !rel.add(u, n) {
				return fail(words[i])
			}
		case isWeekday(w):
			move = weekdayMove{set: true, target: weekdays[w]}
		case startsNumber(w):
			n, rest, ok := splitNumber(w)
			if !ok {
				return fail(w)
			}
			if rest == "" {
				if i+1 >= len(words) {
					return fail(w)
				}
				i++
				rest = words[i]
			}
			u, ok := lookupUnit(rest)
			if !ok {
				return fail(rest)
			}
			if !rel.add(u, n) {
				return fail(w)
			}
		case strings.ContainsRune(w, '-') && isDigit(w[0]):
			d, reason := parseLayout(w, "Y-m-d", time.UTC)
			if reason != "" {
				return fail(w)
			}
			t = time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
		case isDigit(w[0]):
			c, ok := parseClock(w)
			if !ok {
				return fail(w)
			}
			t = setClock(t, c.Hour(), c.Minute(), c.Second(), c.Nanosecond())
		default:
			return fail(w)
		}
	}

	t = rel.apply(t, day)
	if move.set {
		t = move.apply(t)
	}
	return t, nil
}

func (r relative) apply(t time.Time, day dayOf) time.Time {
	switch day {
	case dayOfFirst, dayOfLast:
		first := now.With(t).BeginningOfMonth()
		t = setClock(first, t.Hour(), t.Minute(), t.Second(), t.Nanosecond())
		t = t.AddDate(r.years, r.months, 0)
		if day == dayOfLast {
			last := now.With(t).EndOfMonth()
			t = t.AddDate(0, 0, last.Day()-1)
		}
		t = t.AddDate(0, 0, r.days)
	default:
		t = t.AddDate(r.years, r.months, r.days)
	}
	return t.Add(r.dur)
}

func (m weekdayMove) apply(t time.Time) time.Time {
	diff := (int(m.target) - int(t.Weekday()) + 7) % 7
	switch m.dir {
	case 1:
		if diff == 0 {
			diff = 7
		}
	case -1:
		diff = -((int(t.Weekday()) - int(m.target) + 7) % 7)
		if diff == 0 {
			diff = -7
		}
	}
	return now.With(t).BeginningOfDay().AddDate(0, 0, diff)
}

func setClock(t time.Time, hour, minute, second, nanos int) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, hour, minute, second, nanos, t.Location())
}

func parseClock(w string) (time.Time, bool) {
	for _, layout := range clockLayouts {
		if c, reason := parseLayout(w, layout, time.UTC); reason == "" {
			return c, true
		}
	}
	return time.Time{}, false
}

func lookupUnit(w string) (unit, bool) {
	if u, ok := units[w]; ok {
		return u, true
	}
	u, ok := units[strings.TrimSuffix(w, "s")]
	return u, ok
}

func isWeekday(w string) bool {
	_, ok := weekdays[w]
	return ok
}

// startsNumber reports whether w is a signed number, or an unsigned one
// directly followed by a unit ("3days").
func startsNumber(w string) bool {
	if w[0] == '+' || w[0] == '-' {
		return len(w) > 1 && isDigit(w[1])
	}
	i := 0
	for i < len(w) && isDigit(w[i]) {
		i++
	}
	if i == 0 {
		return false
	}
	if i == len(w) {
		return true
	}
	_, ok := lookupUnit(w[i:])
	return ok
}

func splitNumber(w string) (int, string, bool) {
	i := 0
	if w[0] == '+' || w[0] == '-' {
		i++
	}
	for i < len(w) && isDigit(w[i]) {
		i++
	}
	n, err := strconv.Atoi(w[:i])
	if err != nil {
		return 0, "", false
	}
	return n, w[i:], true
}
