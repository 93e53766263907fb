package date

import (
	"log/slog"
	"time"

	"github.com/tartampluch/go-date/internal/config"
)

// Parser converts formatted strings into instants.
// The zero value parses in time.Local and reads the current time from the
// process-wide Stack.
type Parser struct {
	// Location applies to fields the pattern does not pin to a zone.
	Location *time.Location

	// Clock supplies the current instant for Optional.
	Clock Clock
}

func (p Parser) location() *time.Location {
	if p.Location == nil {
		return time.Local
	}
	return p.Location
}

func (p Parser) clock() Clock {
	if p.Clock == nil {
		return std
	}
	return p.Clock
}

// Strict parses input against pattern. Trailing characters, missing data,
// unknown text and out of range fields (such as day 35) are rejected with a
// *FormatError. Fields missing from pattern default to
// 1970-01-01 00:00:00, so the result never depends on the wall clock.
func (p Parser) Strict(input, pattern string) (time.Time, error) {
	if input == "" {
		return time.Time{}, p.reject(input, pattern, config.ReasonDataMissing)
	}

	t, reason := parseLayout(input, pattern, p.location())
	if reason != "" {
		return time.Time{}, p.reject(input, pattern, reason)
	}
	return t, nil
}

// Optional behaves like Strict, except that an empty input stands for the
// current instant truncated to the precision of pattern.
func (p Parser) Optional(input, pattern string) (time.Time, error) {
	if input == "" {
		input = formatLayout(p.clock().Now().In(p.location()), pattern)
	}
	return p.Strict(input, pattern)
}

func (p Parser) reject(input, pattern, reason string) error {
	slog.Debug(config.MsgParseRejected,
		config.LogKeyComponent, config.CompParser,
		config.LogKeyInput, input,
		config.LogKeyPattern, pattern,
		config.LogKeyReason, reason,
	)
	return &FormatError{Input: input, Pattern: pattern, Reason: reason}
}

// ParseStrict parses input against pattern in time.Local.
//
//	t, err := date.ParseStrict("2017-11-28 14:05:10", "Y-m-d H:i:s")
func ParseStrict(input, pattern string) (time.Time, error) {
	return Parser{}.Strict(input, pattern)
}

// ParseOptional is ParseStrict with an empty input standing for Now.
func ParseOptional(input, pattern string) (time.Time, error) {
	return Parser{}.Optional(input, pattern)
}

// ParseOptionalPtr is ParseOptional for nullable inputs: nil counts as empty.
func ParseOptionalPtr(input *string, pattern string) (time.Time, error) {
	if input == nil {
		return ParseOptional("", pattern)
	}
	return ParseOptional(*input, pattern)
}

// Format renders t with the pattern tokens understood by ParseStrict.
func Format(t time.Time, pattern string) string {
	return formatLayout(t, pattern)
}
