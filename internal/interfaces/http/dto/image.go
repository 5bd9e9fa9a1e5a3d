package dto

import (
	"encoding/base64"
	"regexp"
	"strings"

	"github.com/tripshare/backend/internal/domain/shared"
)

// DefaultCoverPhotoURL is returned for trips without a stored cover photo.
const DefaultCoverPhotoURL = "/images/default-cover.png"

var dataURLPattern = regexp.MustCompile(`^data:(image/[a-zA-Z0-9.+-]+);base64,`)

// ParseImageDataURL decodes a `data:image/<fmt>;base64,<payload>` string into
// raw bytes and the declared media type. Anything else is rejected.
func ParseImageDataURL(s string) ([]byte, string, error) {
	match := dataURLPattern.FindStringSubmatch(s)
	if match == nil {
		return nil, "", shared.NewDomainError("VALIDATION_ERROR", "invalid image format, expected a base64 image data URL")
	}
	payload := s[len(match[0]):]
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", shared.NewDomainError("VALIDATION_ERROR", "invalid base64 image payload")
	}
	if len(data) == 0 {
		return nil, "", shared.NewDomainError("VALIDATION_ERROR", "empty image payload")
	}
	return data, match[1], nil
}

// ImageDataURL encodes raw image bytes as a data URL for the wire.
func ImageDataURL(data []byte, mediaType string) string {
	if len(data) == 0 {
		return ""
	}
	if mediaType == "" || !strings.HasPrefix(mediaType, "image/") {
		mediaType = "image/png"
	}
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
