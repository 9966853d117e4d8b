package extract

import (
	"bytes"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decodeText turns raw text-kind bytes into a string using a cascade of
// encodings: UTF-8 (with or without signature), UTF-16 via BOM, UTF-16LE,
// UTF-16BE, then a total Latin-1 fallback that substitutes every byte
// one-to-one. The fallback cannot fail, so decodeText always returns a
// string for any input.
func decodeText(data []byte) (text string, encoding string) {
	if bytes.HasPrefix(data, bomUTF8) && utf8.Valid(data[len(bomUTF8):]) {
		return string(data[len(bomUTF8):]), "utf-8-sig"
	}
	if utf8.Valid(data) {
		return string(data), "utf-8"
	}
	if bytes.HasPrefix(data, bomUTF16LE) {
		if s, ok := decodeUTF16(data[2:], true); ok {
			return s, "utf-16"
		}
	}
	if bytes.HasPrefix(data, bomUTF16BE) {
		if s, ok := decodeUTF16(data[2:], false); ok {
			return s, "utf-16"
		}
	}
	if s, ok := decodeUTF16(data, true); ok {
		return s, "utf-16le"
	}
	if s, ok := decodeUTF16(data, false); ok {
		return s, "utf-16be"
	}
	return decodeLatin1(data), "latin-1"
}

// decodeUTF16 decodes strictly: odd lengths and unpaired surrogates fail
// so the cascade can move on instead of silently producing U+FFFD runs.
func decodeUTF16(data []byte, littleEndian bool) (string, bool) {
	if len(data)%2 != 0 {
		return "", false
	}
	units := make([]uint16, 0, len(data)/2)
	for i := 0; i < len(data); i += 2 {
		var u uint16
		if littleEndian {
			u = uint16(data[i]) | uint16(data[i+1])<<8
		} else {
			u = uint16(data[i])<<8 | uint16(data[i+1])
		}
		units = append(units, u)
	}
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case u >= 0xD800 && u <= 0xDBFF:
			if i+1 >= len(units) || units[i+1] < 0xDC00 || units[i+1] > 0xDFFF {
				return "", false
			}
			i++
		case u >= 0xDC00 && u <= 0xDFFF:
			return "", false
		}
	}
	return string(utf16.Decode(units)), true
}

// decodeLatin1 maps each byte to the code point of the same value.
func decodeLatin1(data []byte) string {
	var b strings.Builder
	b.Grow(len(data))
	for _, c := range data {
		b.WriteRune(rune(c))
	}
	return b.String()
}
