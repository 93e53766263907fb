package locale

import (
	"embed"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-date/internal/config"
	"github.com/tartampluch/go-date/internal/date"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var (
	loadOnce      sync.Once
	bundle        *i18n.Bundle
	detectedLangs []string
)

// load builds the translation bundle from the embedded locale files.
func load() {
	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		detectedLangs = append(detectedLangs, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
		)
	}
}

// Languages lists the language codes found in the embedded locale files.
func Languages() []string {
	loadOnce.Do(load)
	return append([]string(nil), detectedLangs...)
}

// Translator renders errors of the date package in one language.
type Translator struct {
	localizer *i18n.Localizer
}

// New returns a Translator for lang, falling back to English.
func New(lang string) *Translator {
	loadOnce.Do(load)
	if lang == "" {
		lang = config.DefaultLanguage
	}
	return &Translator{localizer: i18n.NewLocalizer(bundle, lang, config.DefaultLanguage)}
}

// Error returns the localized message for err. Errors the date package does
// not define are returned as err.Error().
func (tr *Translator) Error(err error) string {
	if err == nil {
		return ""
	}

	var (
		formatErr   *date.FormatError
		modifierErr *date.ModifierError
	)
	switch {
	case errors.As(err, &formatErr):
		return tr.msg(config.TKeyErrInvalidFormat, err, map[string]string{
			"Pattern": formatErr.Pattern,
			"Input":   formatErr.Input,
		})
	case errors.As(err, &modifierErr):
		return tr.msg(config.TKeyErrInvalidModifier, err, map[string]string{
			"Modifier": modifierErr.Modifier,
			"Token":    modifierErr.Token,
		})
	case errors.Is(err, date.ErrEmptyStack):
		return tr.msg(config.TKeyErrEmptyStack, err, nil)
	}
	return err.Error()
}

// msg translates key, falling back to the untranslated error text.
func (tr *Translator) msg(key string, err error, data map[string]string) string {
	if tr.localizer == nil {
		return err.Error()
	}
	out, lerr := tr.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if lerr != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, lerr,
		)
		return err.Error()
	}
	return out
}
