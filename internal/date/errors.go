package date

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-date/internal/config"
)

var (
	// ErrInvalidFormat is matched by every *FormatError.
	ErrInvalidFormat = errors.New(config.ErrInvalidFormat)

	// ErrEmptyStack is returned by Unfreeze when nothing is frozen.
	// It signals unbalanced Freeze/Unfreeze calls, not a runtime condition.
	ErrEmptyStack = errors.New(config.ErrEmptyStack)

	// ErrInvalidModifier is matched by every *ModifierError.
	ErrInvalidModifier = errors.New(config.ErrInvalidModifier)
)

// FormatError reports an input that strict parsing rejected.
type FormatError struct {
	Input   string // The offending string.
	Pattern string // The pattern it was expected to match.
	Reason  string // What the parser tripped on, for logs.
}

func (e *FormatError) Error() string {
	return fmt.Sprintf(config.FormatInvalidFormat, e.Pattern, e.Input)
}

// Is makes errors.Is(err, ErrInvalidFormat) hold for any *FormatError.
func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

// ModifierError reports a modifier expression that could not be evaluated.
type ModifierError struct {
	Modifier string
	Token    string // First item that failed.
}

func (e *ModifierError) Error() string {
	return fmt.Sprintf(config.FormatInvalidModifier, e.Modifier, e.Token)
}

func (e *ModifierError) Is(target error) bool {
	return target == ErrInvalidModifier
}
