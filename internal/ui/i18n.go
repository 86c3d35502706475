package ui

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-addressbook/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// SetupI18n builds the message bundle from the embedded catalogs and selects
// the localizer for the preferred language.
func (app *AddressBookApp) SetupI18n() {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	app.SupportedLanguages = loadCatalogs(bundle, localeFS, localeDir)
	app.I18nBundle = bundle
	app.UpdateLocalizer()
}

const localeDir = "locales"

// loadCatalogs registers every active.<lang>.json under dir and returns the
// language codes that loaded, sorted.
func loadCatalogs(bundle *i18n.Bundle, fsys fs.ReadDirFS, dir string) []string {
	log := slog.With(config.LogKeyComponent, config.CompI18n)

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		log.Error(config.ErrLocalesAccess, config.LogKeyError, err)
		return nil
	}

	var langs []string
	for _, entry := range entries {
		code, ok := catalogLang(entry.Name())
		if !ok {
			log.Debug(config.MsgLocaleSkip, config.LogKeyFile, entry.Name())
			continue
		}
		if _, err := bundle.LoadMessageFileFS(fsys, path.Join(dir, entry.Name())); err != nil {
			log.Error(config.ErrLocaleLoad, config.LogKeyFile, entry.Name(), config.LogKeyError, err)
			continue
		}
		langs = append(langs, code)
		log.Debug(config.MsgLocaleLoaded, config.LogKeyLang, code)
	}
	sort.Strings(langs)
	return langs
}

// catalogLang extracts "fr" from "active.fr.json".
func catalogLang(name string) (string, bool) {
	if !strings.HasPrefix(name, catalogPrefix) || !strings.HasSuffix(name, catalogSuffix) {
		return "", false
	}
	code := strings.TrimSuffix(strings.TrimPrefix(name, catalogPrefix), catalogSuffix)
	if code == "" {
		slog.Warn(config.MsgLocaleBadName, config.LogKeyComponent, config.CompI18n, config.LogKeyFile, name)
		return "", false
	}
	return code, true
}

const (
	catalogPrefix = "active."
	catalogSuffix = ".json"
)

// UpdateLocalizer refreshes the translator from the language preference.
func (app *AddressBookApp) UpdateLocalizer() {
	if app.I18nBundle == nil {
		return
	}
	lang := app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage)
	app.Localizer = i18n.NewLocalizer(app.I18nBundle, lang, config.DefaultLanguage)
}

// GetMsg translates a key without placeholders. Unknown keys come back verbatim.
func (app *AddressBookApp) GetMsg(key string) string {
	return app.localize(&i18n.LocalizeConfig{MessageID: key}, key)
}

// GetMsgCount translates a pluralized message, falling back to fallbackFmt
// formatted with args when the catalog cannot serve it.
func (app *AddressBookApp) GetMsgCount(key string, count int, data map[string]interface{}, fallbackFmt string, args ...interface{}) string {
	return app.localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
		PluralCount:  count,
	}, fmt.Sprintf(fallbackFmt, args...))
}

// GetMsgData translates a message with template data and no plural forms.
func (app *AddressBookApp) GetMsgData(key string, data map[string]interface{}) string {
	return app.localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data}, key)
}

// GetMsgOr translates key with optional data, returning fallback when the
// catalog cannot serve it.
func (app *AddressBookApp) GetMsgOr(key string, data map[string]interface{}, fallback string) string {
	return app.localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data}, fallback)
}

func (app *AddressBookApp) localize(lc *i18n.LocalizeConfig, fallback string) string {
	if app.Localizer == nil {
		return fallback
	}
	msg, err := app.Localizer.Localize(lc)
	if err != nil || msg == "" {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, lc.MessageID,
			config.LogKeyError, err,
		)
		return fallback
	}
	return msg
}
