package date

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tartampluch/go-date/internal/config"
)

var (
	monthNames = []string{
		"january", "february", "march", "april", "may", "june",
		"july", "august", "september", "october", "november", "december",
	}
	dayNames = []string{
		"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
	}
	daySuffixes = []string{"st", "nd", "rd", "th"}
)

// fields holds the components read so far. The zero state of a parse is
// the baseline returned by newFields, never the wall clock.
type fields struct {
	year, month, day     int
	hour, minute, second int
	nanos                int
	hourSet              bool
	dayOfYear            int
	doySet               bool
	unix                 int64
	unixSet              bool
	loc                  *time.Location
	zoneSet              bool
	zoneAbbr             string
}

func newFields(loc *time.Location) fields {
	return fields{year: config.BaselineYear, month: 1, day: 1, loc: loc}
}

// scanner walks an input string against a pattern.
type scanner struct {
	input string
	pos   int
	f     fields
	loc   *time.Location
}

// parseLayout reads input under pattern. On failure it returns a short
// reason suitable for logs.
func parseLayout(input, pattern string, loc *time.Location) (time.Time, string) {
	s := &scanner{input: input, f: newFields(loc), loc: loc}

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c == config.TokenEscape {
			i++
			if i >= len(pattern) {
				return time.Time{}, config.ReasonUnexpected
			}
			if reason := s.literal(pattern[i]); reason != "" {
				return time.Time{}, reason
			}
			continue
		}
		if reason := s.token(c); reason != "" {
			return time.Time{}, reason
		}
	}

	if s.pos < len(s.input) {
		return time.Time{}, config.ReasonTrailingData
	}
	return s.f.resolve()
}

func (s *scanner) token(c byte) string {
	var reason string
	switch c {
	case config.TokenDayPadded, config.TokenDay:
		s.f.day, reason = s.number(1, 2)
	case config.TokenMonthPadded, config.TokenMonth:
		s.f.month, reason = s.number(1, 2)
	case config.TokenYear:
		s.f.year, reason = s.number(1, 4)
	case config.TokenYearShort:
		var y int
		if y, reason = s.number(2, 2); reason == "" {
			s.f.year = expandYear(y)
		}
	case config.TokenHour24, config.TokenHour24Pad:
		s.f.hour, reason = s.number(1, 2)
		s.f.hourSet = true
	case config.TokenHour12, config.TokenHour12Pad:
		if s.f.hour, reason = s.number(1, 2); reason == "" && (s.f.hour < 1 || s.f.hour > 12) {
			reason = config.ReasonInvalidTime
		}
		s.f.hourSet = true
	case config.TokenMinute:
		s.f.minute, reason = s.number(2, 2)
	case config.TokenSecond:
		s.f.second, reason = s.number(2, 2)
	case config.TokenMicro:
		s.f.nanos, reason = s.fraction(6)
	case config.TokenMilli:
		s.f.nanos, reason = s.fraction(3)
	case config.TokenMeridian, config.TokenMeridianUp:
		reason = s.meridian()
	case config.TokenUnix:
		reason = s.timestamp()
	case config.TokenDayShort, config.TokenDayLong:
		_, reason = s.name(dayNames)
	case config.TokenMonthShort, config.TokenMonthLong:
		var m int
		if m, reason = s.name(monthNames); reason == "" {
			s.f.month = m + 1
		}
	case config.TokenDaySuffix:
		_, reason = s.name(daySuffixes)
	case config.TokenDayOfYear:
		s.f.dayOfYear, reason = s.number(1, 3)
		s.f.doySet = true
	case config.TokenZoneID, config.TokenZoneAbbr:
		reason = s.zone()
	case config.TokenOffset, config.TokenOffsetColon:
		reason = s.offset()
	case config.TokenSeparator:
		if s.pos >= len(s.input) {
			return config.ReasonDataMissing
		}
		if !strings.ContainsRune(config.SeparatorChars, rune(s.input[s.pos])) {
			return config.ReasonUnexpected
		}
		s.pos++
	case config.TokenAnyByte:
		if s.pos >= len(s.input) {
			return config.ReasonDataMissing
		}
		s.pos++
	case config.TokenAnyUntil:
		for s.pos < len(s.input) && !isSeparator(s.input[s.pos]) && !isDigit(s.input[s.pos]) {
			s.pos++
		}
	case config.TokenResetAll:
		s.f = newFields(s.loc)
	case config.TokenResetRest, config.TokenTrailing:
		// Parses always start from the baseline, and trailing data is
		// rejected regardless.
	default:
		reason = s.literal(c)
	}
	return reason
}

func (s *scanner) literal(c byte) string {
	if s.pos >= len(s.input) {
		return config.ReasonDataMissing
	}
	if s.input[s.pos] != c {
		return config.ReasonUnexpected
	}
	s.pos++
	return ""
}

// number reads between minDigits and maxDigits decimal digits.
func (s *scanner) number(minDigits, maxDigits int) (int, string) {
	if s.pos >= len(s.input) {
		return 0, config.ReasonDataMissing
	}
	start := s.pos
	for s.pos < len(s.input) && s.pos-start < maxDigits && isDigit(s.input[s.pos]) {
		s.pos++
	}
	if s.pos-start < minDigits {
		return 0, config.ReasonUnexpected
	}
	n, err := strconv.Atoi(s.input[start:s.pos])
	if err != nil {
		return 0, config.ReasonUnexpected
	}
	return n, ""
}

// fraction reads up to maxDigits digits as the fractional part of a second.
func (s *scanner) fraction(maxDigits int) (int, string) {
	if s.pos >= len(s.input) {
		return 0, config.ReasonDataMissing
	}
	start := s.pos
	for s.pos < len(s.input) && s.pos-start < maxDigits && isDigit(s.input[s.pos]) {
		s.pos++
	}
	digits := s.input[start:s.pos]
	if digits == "" {
		return 0, config.ReasonUnexpected
	}
	n, _ := strconv.Atoi(digits + strings.Repeat("0", 9-len(digits)))
	return n, ""
}

func (s *scanner) meridian() string {
	if !s.f.hourSet {
		return config.ReasonMeridian
	}
	if s.pos+2 > len(s.input) {
		return config.ReasonDataMissing
	}
	word := strings.ToLower(s.input[s.pos : s.pos+2])
	if word != config.ModAM && word != config.ModPM {
		return config.ReasonUnexpected
	}
	s.pos += 2

	h := s.f.hour
	if h < 1 || h > 12 {
		return config.ReasonInvalidTime
	}
	switch {
	case word == config.ModAM && h == 12:
		h = 0
	case word == config.ModPM && h != 12:
		h += 12
	}
	s.f.hour = h
	return ""
}

func (s *scanner) timestamp() string {
	if s.pos >= len(s.input) {
		return config.ReasonDataMissing
	}
	start := s.pos
	if c := s.input[s.pos]; c == '-' || c == '+' {
		s.pos++
	}
	digitsStart := s.pos
	for s.pos < len(s.input) && isDigit(s.input[s.pos]) {
		s.pos++
	}
	if s.pos == digitsStart {
		return config.ReasonUnexpected
	}
	n, err := strconv.ParseInt(s.input[start:s.pos], 10, 64)
	if err != nil {
		return config.ReasonUnexpected
	}
	s.f.unix, s.f.unixSet = n, true
	return ""
}

// name matches the longest full or three letter form of one of names,
// case-insensitively, and returns its index.
func (s *scanner) name(names []string) (int, string) {
	if s.pos >= len(s.input) {
		return 0, config.ReasonDataMissing
	}
	start := s.pos
	for s.pos < len(s.input) && isLetter(s.input[s.pos]) {
		s.pos++
	}
	word := strings.ToLower(s.input[start:s.pos])
	for i, n := range names {
		if word == n || (len(n) > 3 && word == n[:3]) {
			return i, ""
		}
	}
	return 0, config.ReasonUnknownText
}

func (s *scanner) zone() string {
	if s.pos >= len(s.input) {
		return config.ReasonDataMissing
	}
	if c := s.input[s.pos]; c == '+' || c == '-' {
		return s.offset()
	}
	start := s.pos
	for s.pos < len(s.input) && isZoneChar(s.input[s.pos]) {
		s.pos++
	}
	id := s.input[start:s.pos]
	switch {
	case id == "":
		return config.ReasonUnexpected
	case id == "Z" || strings.EqualFold(id, "UTC") || strings.EqualFold(id, "GMT"):
		s.f.loc, s.f.zoneSet, s.f.zoneAbbr = time.UTC, true, ""
		return ""
	}
	if loc, err := time.LoadLocation(id); err == nil {
		s.f.loc, s.f.zoneSet, s.f.zoneAbbr = loc, true, ""
		return ""
	}
	if isAlpha(id) {
		// Abbreviations are checked against the parser location once the
		// date is known.
		s.f.loc, s.f.zoneSet, s.f.zoneAbbr = s.loc, true, id
		return ""
	}
	return config.ReasonUnknownZone
}

// offset reads ±hh:mm, ±hhmm or ±hh.
func (s *scanner) offset() string {
	if s.pos >= len(s.input) {
		return config.ReasonDataMissing
	}
	sign := 1
	switch s.input[s.pos] {
	case '+':
	case '-':
		sign = -1
	default:
		return config.ReasonUnexpected
	}
	s.pos++
	hh, reason := s.number(2, 2)
	if reason != "" {
		return reason
	}
	mm := 0
	switch {
	case s.pos < len(s.input) && s.input[s.pos] == ':':
		s.pos++
		if mm, reason = s.number(2, 2); reason != "" {
			return reason
		}
	case s.pos < len(s.input) && isDigit(s.input[s.pos]):
		if mm, reason = s.number(2, 2); reason != "" {
			return reason
		}
	}
	if hh > 14 || mm > 59 {
		return config.ReasonUnknownZone
	}
	s.f.loc, s.f.zoneSet, s.f.zoneAbbr = time.FixedZone("", sign*(hh*3600+mm*60)), true, ""
	return ""
}

// resolve validates the collected fields and builds the instant.
func (f fields) resolve() (time.Time, string) {
	if f.unixSet {
		t := time.Unix(f.unix, int64(f.nanos)).UTC()
		if f.zoneSet && f.zoneAbbr == "" {
			t = t.In(f.loc)
		}
		return t, ""
	}

	if f.minute > 59 || f.second > 59 || f.hour > 23 {
		return time.Time{}, config.ReasonInvalidTime
	}

	if f.doySet {
		if f.dayOfYear >= daysInYear(f.year) {
			return time.Time{}, config.ReasonInvalidDate
		}
		t := time.Date(f.year, time.January, 1+f.dayOfYear, f.hour, f.minute, f.second, f.nanos, f.loc)
		return f.checkAbbr(t)
	}

	if f.month < 1 || f.month > 12 || f.day < 1 || f.day > daysIn(time.Month(f.month), f.year) {
		return time.Time{}, config.ReasonInvalidDate
	}
	t := time.Date(f.year, time.Month(f.month), f.day, f.hour, f.minute, f.second, f.nanos, f.loc)
	return f.checkAbbr(t)
}

func (f fields) checkAbbr(t time.Time) (time.Time, string) {
	if f.zoneAbbr != "" && !strings.EqualFold(t.Format("MST"), f.zoneAbbr) {
		return time.Time{}, config.ReasonUnknownZone
	}
	return t, ""
}

// formatLayout renders t under pattern. Parse-only directives produce no
// output.
func formatLayout(t time.Time, pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch c {
		case config.TokenEscape:
			i++
			if i < len(pattern) {
				b.WriteByte(pattern[i])
			}
		case config.TokenDayPadded:
			fmt.Fprintf(&b, "%02d", t.Day())
		case config.TokenDay:
			b.WriteString(strconv.Itoa(t.Day()))
		case config.TokenDayShort:
			b.WriteString(t.Format("Mon"))
		case config.TokenDayLong:
			b.WriteString(t.Format("Monday"))
		case config.TokenDaySuffix:
			b.WriteString(ordinalSuffix(t.Day()))
		case config.TokenDayOfYear:
			b.WriteString(strconv.Itoa(t.YearDay() - 1))
		case config.TokenMonthPadded:
			fmt.Fprintf(&b, "%02d", int(t.Month()))
		case config.TokenMonth:
			b.WriteString(strconv.Itoa(int(t.Month())))
		case config.TokenMonthShort:
			b.WriteString(t.Format("Jan"))
		case config.TokenMonthLong:
			b.WriteString(t.Format("January"))
		case config.TokenYear:
			fmt.Fprintf(&b, "%04d", t.Year())
		case config.TokenYearShort:
			fmt.Fprintf(&b, "%02d", t.Year()%100)
		case config.TokenMeridian:
			b.WriteString(t.Format("pm"))
		case config.TokenMeridianUp:
			b.WriteString(t.Format("PM"))
		case config.TokenHour12:
			b.WriteString(t.Format("3"))
		case config.TokenHour12Pad:
			b.WriteString(t.Format("03"))
		case config.TokenHour24:
			b.WriteString(strconv.Itoa(t.Hour()))
		case config.TokenHour24Pad:
			fmt.Fprintf(&b, "%02d", t.Hour())
		case config.TokenMinute:
			fmt.Fprintf(&b, "%02d", t.Minute())
		case config.TokenSecond:
			fmt.Fprintf(&b, "%02d", t.Second())
		case config.TokenMicro:
			fmt.Fprintf(&b, "%06d", t.Nanosecond()/int(time.Microsecond))
		case config.TokenMilli:
			fmt.Fprintf(&b, "%03d", t.Nanosecond()/int(time.Millisecond))
		case config.TokenUnix:
			b.WriteString(strconv.FormatInt(t.Unix(), 10))
		case config.TokenZoneID:
			if name := t.Location().String(); name != "" {
				b.WriteString(name)
			} else {
				b.WriteString(t.Format("-07:00"))
			}
		case config.TokenZoneAbbr:
			b.WriteString(t.Format("MST"))
		case config.TokenOffset:
			b.WriteString(t.Format("-0700"))
		case config.TokenOffsetColon:
			b.WriteString(t.Format("-07:00"))
		case config.TokenSeparator, config.TokenAnyByte, config.TokenAnyUntil,
			config.TokenResetAll, config.TokenResetRest, config.TokenTrailing:
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func expandYear(y int) int {
	if y < config.TwoDigitYearPivot {
		return 2000 + y
	}
	return 1900 + y
}

func ordinalSuffix(day int) string {
	switch day {
	case 1, 21, 31:
		return "st"
	case 2, 22:
		return "nd"
	case 3, 23:
		return "rd"
	}
	return "th"
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func daysInYear(year int) int {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func isSeparator(c byte) bool {
	return c == ' ' || c == '\t' || strings.IndexByte(config.SeparatorChars, c) >= 0
}

func isZoneChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_' || c == '/' || c == '-' || c == '+'
}

func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isLetter(s[i]) {
			return false
		}
	}
	return s != ""
}
