package ui

import (
	"encoding/json"
	"testing"
	"testing/fstest"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestCatalogLang(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"active.en.json", "en", true},
		{"active.pt-BR.json", "pt-BR", true},
		{"active..json", "", false},
		{"translate.fr.json", "", false},
		{"active.de.toml", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := catalogLang(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadCatalogs(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/active.fr.json": {Data: []byte(`{"btn_save": "Enregistrer"}`)},
		"locales/active.en.json": {Data: []byte(`{"btn_save": "Save"}`)},
		"locales/active.xx.json": {Data: []byte(`{not json`)},
		"locales/README.md":      {Data: []byte("notes")},
	}
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	langs := loadCatalogs(bundle, fsys, "locales")

	assert.Equal(t, []string{"en", "fr"}, langs, "malformed and foreign files are skipped")

	msg, err := i18n.NewLocalizer(bundle, "fr").Localize(&i18n.LocalizeConfig{MessageID: "btn_save"})
	require.NoError(t, err)
	assert.Equal(t, "Enregistrer", msg)
}

func TestLoadCatalogs_MissingDir(t *testing.T) {
	bundle := i18n.NewBundle(language.English)
	assert.Nil(t, loadCatalogs(bundle, fstest.MapFS{}, "locales"))
}
