package validation

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dogwood008/kabucom-pl-calendar/src/logger"
)

// AllowedClientContentTypes is a map for quick lookup of allowed client-declared MIME types.
var AllowedClientContentTypes = map[string]bool{
	"text/csv":                 true,
	"application/csv":          true,
	"application/vnd.ms-excel": true, // Often used for CSV by older Excel
	"text/plain":               true, // CSVs are often plain text
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": false, // .xlsx explicitly disallow
}

// ValidateClientContentType checks the Content-Type header provided by the client.
func ValidateClientContentType(contentType string) error {
	normalized := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if allowed, exists := AllowedClientContentTypes[normalized]; !exists || !allowed {
		logger.L.Warn("Disallowed client-declared Content-Type", "contentType", contentType)
		return fmt.Errorf("client-declared file type '%s' is not allowed for CSV upload", contentType)
	}
	return nil
}

// ValidateCsvContent rejects payloads that cannot be a broker CSV export
// before any parsing happens. Only a byte-level binary check is possible here:
// legitimate exports may be Shift_JIS, so the content is deliberately not
// required to be valid UTF-8.
func ValidateCsvContent(buf []byte) error {
	if len(buf) == 0 {
		return fmt.Errorf("file is empty")
	}
	// Text files (CSV) never contain null bytes.
	if bytes.IndexByte(buf, 0) != -1 {
		logger.L.Warn("File rejected: binary content detected in CSV upload")
		return fmt.Errorf("file appears to be binary or executable, not text/CSV")
	}
	return nil
}
