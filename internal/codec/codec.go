// Package codec adapts external file formats (spreadsheets, vCards, remote
// downloads) to the address-book row model.
package codec

import (
	"path/filepath"
	"strings"

	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// ForPath picks a decoder from the file extension. Anything that is not a
// vCard is treated as a spreadsheet; content is not sniffed.
func ForPath(path string) addressbook.Decoder {
	switch strings.ToLower(filepath.Ext(path)) {
	case config.ExtVCF, config.ExtVCard:
		return VCard{}
	default:
		return XLSX{}
	}
}

// ImportExtensions is the file-picker filter for imports.
var ImportExtensions = []string{config.ExtXLSX, config.ExtXLS, config.ExtVCF, config.ExtVCard}
