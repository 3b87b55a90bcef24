// Package classify assigns a domain tag to uploads from their media type.
package classify

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/soulfile-vault/backend/internal/models"
)

const octetStream = "application/octet-stream"

// Classify returns DomainImage when mediaType begins with "image/", DomainDocument otherwise.
// The comparison is case-sensitive.
func Classify(mediaType string) models.Domain {
	if strings.HasPrefix(mediaType, "image/") {
		return models.DomainImage
	}
	return models.DomainDocument
}

// ResolveMediaType trusts the declared type unless it is empty or the generic
// octet-stream, in which case the type is detected from the content.
func ResolveMediaType(declared string, data []byte) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != octetStream {
		return declared
	}
	if len(data) == 0 {
		if declared == "" {
			return octetStream
		}
		return declared
	}
	return mimetype.Detect(data).String()
}
