package descriptor

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// Extension is appended to the sanitized name to form the descriptor file name.
const Extension = ".xml"

var videoExtensions = []string{".mp4", ".mov"}

// SanitizeName strips one trailing ".mp4" or ".mov" (matched case-sensitively)
// and replaces every "@" with "_at_".
func SanitizeName(raw string) string {
	for _, ext := range videoExtensions {
		if strings.HasSuffix(raw, ext) {
			raw = strings.TrimSuffix(raw, ext)
			break
		}
	}
	return strings.ReplaceAll(raw, "@", "_at_")
}

// UniqueID returns the lowercase hex MD5 digest of the raw filename.
func UniqueID(raw string) string {
	sum := md5.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func validStem(stem string) bool {
	if strings.TrimSpace(stem) == "" || stem == "." || stem == ".." {
		return false
	}
	return !strings.ContainsAny(stem, `/\`)
}
