// Package charset detects and decodes the text encodings supplier price
// list exports commonly arrive in.
package charset

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Encoding represents a text encoding
type Encoding string

const (
	EncodingUTF8        Encoding = "utf-8"
	EncodingWindows1250 Encoding = "windows-1250"
	EncodingISO88592    Encoding = "iso-8859-2"
)

// DetectEncoding detects the encoding of a byte buffer. Valid UTF-8 wins;
// anything else is assumed to be a Windows-1250 legacy export.
func DetectEncoding(data []byte) Encoding {
	// UTF-8 BOM
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return EncodingUTF8
	}

	if utf8.Valid(data) {
		return EncodingUTF8
	}

	return EncodingWindows1250
}

// Decode converts a byte buffer from the given encoding to a UTF-8 string.
// Data that is already valid UTF-8 passes through unchanged regardless of
// the requested encoding, so a mislabeled file never gets double-decoded.
func Decode(data []byte, enc Encoding) (string, error) {
	// Strip BOM if present
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		data = data[3:]
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	var cm *charmap.Charmap
	switch enc {
	case EncodingISO88592:
		cm = charmap.ISO8859_2
	default:
		cm = charmap.Windows1250
	}

	decoded, err := cm.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
