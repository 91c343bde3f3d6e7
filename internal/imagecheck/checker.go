// Package imagecheck validates the uploaded image payload before any paid
// vision call is made.
package imagecheck

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// MaxImageBytes matches the vision API's per-image limit.
const MaxImageBytes = 5 * 1024 * 1024

const defaultMediaType = "image/jpeg"

var (
	ErrMissingImage = errors.New("image_base64 is required")
	ErrInvalidImage = errors.New("image_base64 is not valid base64")
)

// Decode validates and decodes the uploaded payload. A data URL prefix
// ("data:image/png;base64,...") is tolerated and stripped. The returned
// media type is the declared one, the data URL's, a sniffed image type, or
// image/jpeg, in that order of preference.
func Decode(imageBase64 string, declaredMediaType string) ([]byte, string, error) {
	imageBase64 = strings.TrimSpace(imageBase64)
	if imageBase64 == "" {
		return nil, "", ErrMissingImage
	}

	prefixType := ""
	if strings.HasPrefix(imageBase64, "data:") {
		comma := strings.IndexByte(imageBase64, ',')
		if comma == -1 {
			return nil, "", ErrInvalidImage
		}
		header := imageBase64[len("data:"):comma]
		prefixType = strings.TrimSuffix(header, ";base64")
		imageBase64 = imageBase64[comma+1:]
	}

	data, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s", ErrInvalidImage, err)
	}
	if len(data) == 0 {
		return nil, "", ErrMissingImage
	}
	if len(data) > MaxImageBytes {
		return nil, "", fmt.Errorf("image exceeds %d bytes", MaxImageBytes)
	}

	return data, mediaType(declaredMediaType, prefixType, data), nil
}

func mediaType(declared string, prefix string, data []byte) string {
	if declared != "" {
		return declared
	}
	if strings.HasPrefix(prefix, "image/") {
		return prefix
	}
	if sniffed := http.DetectContentType(data); strings.HasPrefix(sniffed, "image/") {
		return sniffed
	}
	return defaultMediaType
}
