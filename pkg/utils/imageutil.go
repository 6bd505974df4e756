package utils

import (
	"encoding/base64"
	"strings"
)

// IsValidImageType checks a sniffed content type against the allowed list.
func IsValidImageType(contentType string, allowed []string) bool {
	ct := strings.ToLower(contentType)
	for _, validType := range allowed {
		if strings.Contains(ct, strings.ToLower(validType)) {
			return true
		}
	}
	return false
}

// DataURL encodes data as a base64 data URL.
func DataURL(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
