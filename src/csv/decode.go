// src/csv/decode.go
package csv

import (
	"strings"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/dogwood008/kabucom-pl-calendar/src/logger"
)

const replacementChar = "\uFFFD"

// DecodeBuffer turns a raw CSV byte buffer into text. Broker exports arrive
// either as UTF-8 or as Shift_JIS with no declared encoding, so the buffer is
// decoded both ways in permissive mode and the result with fewer replacement
// characters wins. Ties favor UTF-8. This is a heuristic: truly corrupt input
// can still pick the wrong side, which is accepted because the real-world
// character set is constrained to these two encodings.
func DecodeBuffer(buf []byte) string {
	if len(buf) == 0 {
		return ""
	}

	utf8Text, ok := decodeWith(unicode.UTF8.NewDecoder(), buf)
	if !ok {
		utf8Text = string(buf)
	}
	utf8Replacements := strings.Count(utf8Text, replacementChar)
	if utf8Replacements == 0 {
		return utf8Text
	}

	shiftJisText, ok := decodeWith(japanese.ShiftJIS.NewDecoder(), buf)
	if ok {
		shiftJisReplacements := strings.Count(shiftJisText, replacementChar)
		if shiftJisReplacements == 0 || shiftJisReplacements < utf8Replacements {
			return shiftJisText
		}
	}

	return utf8Text
}

func decodeWith(t transform.Transformer, buf []byte) (string, bool) {
	decoded, _, err := transform.Bytes(t, buf)
	if err != nil {
		logger.L.Warn("CSV decode failed, falling back to UTF-8", "error", err)
		return "", false
	}
	return string(decoded), true
}
