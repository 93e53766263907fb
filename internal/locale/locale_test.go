package locale_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-date/internal/config"
	"github.com/tartampluch/go-date/internal/date"
	"github.com/tartampluch/go-date/internal/locale"
)

// TestI18nIntegrity ensures that every translation key defined in config.go
// exists in every locale file.
func TestI18nIntegrity(t *testing.T) {
	keys := []string{
		config.TKeyErrInvalidFormat,
		config.TKeyErrInvalidModifier,
		config.TKeyErrEmptyStack,
	}

	for _, lang := range config.SupportedLanguages {
		t.Run(lang, func(t *testing.T) {
			content, err := os.ReadFile(filepath.Join("locales", "active."+lang+".json"))
			require.NoError(t, err)

			var messages map[string]string
			require.NoError(t, json.Unmarshal(content, &messages))

			for _, k := range keys {
				assert.NotEmpty(t, messages[k], "Missing key %q in %s locale", k, lang)
			}
		})
	}
}

func TestLanguages(t *testing.T) {
	assert.ElementsMatch(t, config.SupportedLanguages, locale.Languages())
}

func TestTranslator_FormatError(t *testing.T) {
	_, err := date.ParseStrict("2017-01-35", "Y-m-d")
	require.Error(t, err)

	en := locale.New("en").Error(err)
	assert.Equal(t, `Date must comply with format "Y-m-d" but "2017-01-35" given.`, en)

	fr := locale.New("fr").Error(err)
	assert.Contains(t, fr, "Y-m-d")
	assert.Contains(t, fr, "2017-01-35")
	assert.NotEqual(t, en, fr)
}

func TestTranslator_WrappedErrors(t *testing.T) {
	_, err := date.Modify(date.Now(), "whenever")
	wrapped := fmt.Errorf("at: %w", err)

	msg := locale.New("en").Error(wrapped)
	assert.Equal(t, `Invalid date modifier "whenever" near "whenever".`, msg)
}

func TestTranslator_EmptyStack(t *testing.T) {
	_, err := date.NewStack().Unfreeze()

	assert.Contains(t, locale.New("en").Error(err), "Unfreeze()")
	assert.Contains(t, locale.New("fr").Error(err), "Unfreeze()")
}

func TestTranslator_Fallbacks(t *testing.T) {
	tr := locale.New("de")
	_, err := date.ParseStrict("x", "Y")

	assert.Contains(t, tr.Error(err), "Date must comply", "Unknown languages fall back to English")
	assert.Equal(t, "boom", tr.Error(errors.New("boom")), "Foreign errors are passed through")
	assert.Empty(t, tr.Error(nil))
	assert.Contains(t, locale.New("").Error(err), "Date must comply")
}
