package scheme

import (
	"bytes"
	"fmt"
	"mime"
	"strings"
	"unicode/utf8"
)

// normalizeBody converts a handler response into the final byte payload.
// Raw byte bodies pass through untouched regardless of content type.
// Textual bodies declared as markup are encoded with EncodeMarkup so the
// result is always well formed; other textual bodies are plain UTF-8.
func normalizeBody(resp *Response) []byte {
	if resp.Data != nil {
		return resp.Data
	}
	if isMarkup(resp.ContentType) {
		return EncodeMarkup(resp.Text)
	}
	return []byte(resp.Text)
}

func isMarkup(contentType string) bool {
	mediatype, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.HasPrefix(contentType, "text/html")
	}
	return mediatype == "text/html"
}

// EncodeMarkup renders s as UTF-8 bytes, substituting numeric character
// references for anything that cannot be encoded. Surrogate code points
// and stray bytes become "&#NNNN;" escapes instead of failing or being
// dropped, so the page still shows what the handler produced.
func EncodeMarkup(s string) []byte {
	if utf8.ValidString(s) {
		return []byte(s)
	}

	var buf bytes.Buffer
	buf.Grow(len(s))

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r != utf8.RuneError || size > 1 {
			buf.WriteString(s[i : i+size])
			i += size
			continue
		}

		// An invalid sequence. A lone surrogate shows up as a
		// three-byte sequence with a code point in D800-DFFF; escape
		// it as one reference. Anything else is escaped per byte.
		if cp, n := decodeSurrogate(s[i:]); n > 0 {
			fmt.Fprintf(&buf, "&#%d;", cp)
			i += n
			continue
		}

		fmt.Fprintf(&buf, "&#%d;", s[i])
		i++
	}

	return buf.Bytes()
}

// decodeSurrogate decodes a UTF-8-shaped encoding of a surrogate code
// point at the start of s. Returns (0, 0) when s starts with something
// else.
func decodeSurrogate(s string) (rune, int) {
	if len(s) < 3 {
		return 0, 0
	}
	b0, b1, b2 := s[0], s[1], s[2]
	if b0&0xF0 != 0xE0 || b1&0xC0 != 0x80 || b2&0xC0 != 0x80 {
		return 0, 0
	}

	cp := rune(b0&0x0F)<<12 | rune(b1&0x3F)<<6 | rune(b2&0x3F)
	if cp < 0xD800 || cp > 0xDFFF {
		return 0, 0
	}
	return cp, 3
}
