// Package locale loads the embedded message catalogs used for user-facing text.
package locale

import (
	"embed"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-ctfcal/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator resolves message keys for one language.
type Translator struct {
	Lang      string
	Languages []string // Languages found in the embedded catalogs.

	bundle    *i18n.Bundle
	localizer *i18n.Localizer
}

// New loads every embedded catalog and selects lang. An unknown language
// falls back to the default one.
func New(lang string) *Translator {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	tr := &Translator{bundle: bundle}

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
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

		tr.Languages = append(tr.Languages, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
		)
	}

	if !slices.Contains(tr.Languages, lang) {
		if lang != "" {
			slog.Warn(config.ErrUnsupportedTrans,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyLang, lang,
			)
		}
		lang = config.DefaultLanguage
	}

	tr.Lang = lang
	tr.localizer = i18n.NewLocalizer(bundle, lang)
	return tr
}

// Msg translates key with optional template data.
// It returns the key itself when the message is missing.
func (tr *Translator) Msg(key string, data map[string]any) string {
	if tr == nil || tr.localizer == nil {
		return key
	}

	msg, err := tr.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// Description renders the event description for an info URL.
func (tr *Translator) Description(infoURL string) string {
	return tr.Msg(config.TKeyEvtDescription, map[string]any{"URL": infoURL})
}
