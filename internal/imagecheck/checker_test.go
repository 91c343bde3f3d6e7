package imagecheck

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

// Minimal JPEG magic followed by filler, enough for content sniffing.
func jpegBytes() []byte {
	data := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	return append(data, make([]byte, 64)...)
}

func TestDecode_Valid(t *testing.T) {
	raw := jpegBytes()
	encoded := base64.StdEncoding.EncodeToString(raw)

	data, mediaType, err := Decode(encoded, "")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(data) != len(raw) {
		t.Errorf("Expected %d bytes, got %d", len(raw), len(data))
	}
	if mediaType != "image/jpeg" {
		t.Errorf("Expected sniffed image/jpeg, got %s", mediaType)
	}
}

func TestDecode_DeclaredMediaTypeWins(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(jpegBytes())

	_, mediaType, err := Decode(encoded, "image/webp")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if mediaType != "image/webp" {
		t.Errorf("Expected declared image/webp, got %s", mediaType)
	}
}

func TestDecode_DataURLPrefix(t *testing.T) {
	encoded := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("not really a png but fine"))

	_, mediaType, err := Decode(encoded, "")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if mediaType != "image/png" {
		t.Errorf("Expected image/png from data URL, got %s", mediaType)
	}
}

func TestDecode_MissingImage(t *testing.T) {
	for _, payload := range []string{"", "   "} {
		if _, _, err := Decode(payload, ""); !errors.Is(err, ErrMissingImage) {
			t.Errorf("Decode(%q) = %v, want ErrMissingImage", payload, err)
		}
	}
}

func TestDecode_InvalidBase64(t *testing.T) {
	if _, _, err := Decode("%%% not base64 %%%", ""); !errors.Is(err, ErrInvalidImage) {
		t.Errorf("Expected ErrInvalidImage, got %v", err)
	}
}

func TestDecode_TooLarge(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(make([]byte, MaxImageBytes+1))

	_, _, err := Decode(encoded, "")
	if err == nil || !strings.Contains(err.Error(), "exceeds") {
		t.Errorf("Expected size error, got %v", err)
	}
}
