package dataprocessing

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// fallbackEncodings is the strict attempt order for decoding source
// exports. Spanish-language ERP extracts usually arrive in a legacy
// single-byte encoding, so those are tried before UTF-8.
var fallbackEncodings = []textEncoding{
	{name: "latin1", decode: decodeLatin1},
	{name: "iso-8859-1", decode: decodeLatin1},
	{name: "cp1252", decode: decodeWindows1252},
	{name: "utf-8", decode: decodeUTF8},
}

// textEncoding pairs an encoding name with its strict decoder. A decoder
// returns an error instead of substituting replacement runes, so a
// rejected encoding moves the loader on to the next candidate.
type textEncoding struct {
	name   string
	decode func([]byte) (string, error)
}

// decodeWithFallback tries each candidate encoding in order and returns
// the decoded text together with the name of the accepted encoding.
// A wrong-but-decodable encoding is accepted; only decode failures move
// to the next candidate. When every candidate rejects the payload the
// returned error lists the attempted encodings.
func decodeWithFallback(data []byte) (string, string, error) {
	var lastErr error
	for _, enc := range fallbackEncodings {
		text, err := enc.decode(data)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", enc.name, err)
			continue
		}
		return text, enc.name, nil
	}
	return "", "", fmt.Errorf("all %d encodings rejected, last: %w", len(fallbackEncodings), lastErr)
}

// decodeLatin1 decodes ISO 8859-1 strictly: the 0x80-0x9F range holds C1
// control codes, never text, so payloads using it (typically cp1252
// punctuation) are rejected rather than silently mangled.
func decodeLatin1(data []byte) (string, error) {
	for i, b := range data {
		if b >= 0x80 && b <= 0x9F {
			return "", fmt.Errorf("C1 control byte 0x%02X at offset %d", b, i)
		}
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// decodeWindows1252 decodes cp1252, rejecting its five unassigned bytes.
func decodeWindows1252(data []byte) (string, error) {
	for i, b := range data {
		switch b {
		case 0x81, 0x8D, 0x8F, 0x90, 0x9D:
			return "", fmt.Errorf("unassigned byte 0x%02X at offset %d", b, i)
		}
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

func decodeUTF8(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("invalid UTF-8 sequence")
	}
	return string(data), nil
}
