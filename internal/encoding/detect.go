package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	peekSize = 4096
	// Hebrew text can score as a weak Latin match; only trust confident Latin guesses.
	latinConfidence = 50
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Spreadsheets exported on Hebrew Windows default to windows-1255, so that is the
// fallback when nothing else matches.
var fallback = charmap.Windows1255

// NewUTF8Reader returns a reader that decodes r to UTF-8, together with the name of the
// charset it settled on.
//
// Detection order:
//  1. BOM (a UTF-8 BOM is stripped; UTF-16 LE/BE is decoded)
//  2. Valid UTF-8 passes through
//  3. chardet heuristics for Hebrew and Latin code pages
//  4. windows-1255
func NewUTF8Reader(r io.Reader) (io.Reader, string, error) {
	br := bufio.NewReader(r)

	buf, err := br.Peek(peekSize)
	if err != nil && err != io.EOF {
		return nil, "", fmt.Errorf("peek: %w", err)
	}

	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return br, "UTF-8", nil
	case bytes.HasPrefix(buf, bomUTF16LE):
		return decode(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)), "UTF-16LE", nil
	case bytes.HasPrefix(buf, bomUTF16BE):
		return decode(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM)), "UTF-16BE", nil
	case utf8.Valid(buf):
		return br, "UTF-8", nil
	}

	result, err := chardet.NewTextDetector().DetectBest(buf)
	if err == nil {
		switch result.Charset {
		case "UTF-8":
			return br, "UTF-8", nil
		case "ISO-8859-8", "ISO-8859-8-I", "windows-1255":
			return decode(br, charmap.Windows1255), "windows-1255", nil
		case "ISO-8859-1", "windows-1252":
			if result.Confidence >= latinConfidence {
				return decode(br, charmap.Windows1252), "windows-1252", nil
			}
		}
	}

	return decode(br, fallback), "windows-1255", nil
}

func decode(r io.Reader, enc encoding.Encoding) io.Reader {
	return transform.NewReader(r, enc.NewDecoder())
}
