package ui_test

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// TestI18nIntegrity ensures every translation key in config exists in the
// English catalog, and flags catalog entries no key refers to.
func TestI18nIntegrity(t *testing.T) {
	keysToCheck := []string{
		config.TKeyWinTitle,
		config.TKeyWinSettings,
		config.TKeyWinPreview,
		config.TKeyWinAdd,
		config.TKeyWinEdit,
		config.TKeyBtnAdd,
		config.TKeyBtnImport,
		config.TKeyBtnImportURL,
		config.TKeyBtnExport,
		config.TKeyBtnExportVCard,
		config.TKeyBtnSettings,
		config.TKeyBtnUndo,
		config.TKeyBtnSave,
		config.TKeyBtnCancel,
		config.TKeyBtnEdit,
		config.TKeyBtnDelete,
		config.TKeyBtnFavorite,
		config.TKeyBtnImportSel,
		config.TKeyLblSearch,
		config.TKeyLblSortBy,
		config.TKeySortName,
		config.TKeySortEmail,
		config.TKeySortFavorite,
		config.TKeyLblFirstName,
		config.TKeyLblLastName,
		config.TKeyLblPhone,
		config.TKeyLblEmail,
		config.TKeyLblStreet1,
		config.TKeyLblStreet2,
		config.TKeyLblCity,
		config.TKeyLblState,
		config.TKeyLblZip,
		config.TKeyLblNotes,
		config.TKeyLblFavorite,
		config.TKeyLblAddress,
		config.TKeyLblEmpty,
		config.TKeyLblURL,
		config.TKeyHelpURL,
		config.TKeyLblUser,
		config.TKeyLblPass,
		config.TKeyLblPort,
		config.TKeyHelpPort,
		config.TKeyLblFooter,
		config.TKeyLblRemote,
		config.TKeyLblFeed,
		config.TKeyConfirmDelete,
		config.TKeyPreviewFound,
		config.TKeyPreviewSkipped,
		config.TKeyPreviewSel,
		config.TKeyImportDone,
		config.TKeyImportAllDup,
		config.TKeyImportEmpty,
		config.TKeyImportFailed,
		config.TKeyFetchFailed,
		config.TKeyImportBusy,
		config.TKeyUndoDone,
		config.TKeyExportFailed,
		config.TKeyRemoteMissing,
		config.TKeyTitleImport,
		config.TKeyTitleExport,
		config.TKeyErrNameReq,
		config.TKeyErrEmail,
		config.TKeyErrPortReq,
		config.TKeyErrPortNum,
		config.TKeyErrPortRange,
		config.TKeyStatusCount,
		config.TKeyStatusFeed,
		config.TKeyLblLanguage,
		config.TKeyLblGeneral,
		config.TKeyLblDefaultSort,
		config.TKeyHelpRestart,
		config.TKeyBtnClose,
		config.TKeyBtnSelectAll,
		config.TKeyBtnSelectNone,
	}

	content, err := os.ReadFile("locales/active.en.json")
	require.NoError(t, err, "Must load active.en.json")

	var jsonMap map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &jsonMap), "JSON must be valid")

	definedKeys := make(map[string]bool, len(keysToCheck))
	for _, k := range keysToCheck {
		definedKeys[k] = true
		_, exists := jsonMap[k]
		assert.Truef(t, exists, "Key '%s' defined in config.go is missing in active.en.json", k)
	}

	for jsonKey := range jsonMap {
		if strings.HasPrefix(jsonKey, "_") {
			continue
		}
		assert.Truef(t, definedKeys[jsonKey], "Key '%s' in active.en.json has no config constant", jsonKey)
	}
}
