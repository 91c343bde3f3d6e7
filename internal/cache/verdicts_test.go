package cache

import (
	"strings"
	"testing"

	"github.com/findmymarket/screening-agent/internal/models"
)

func TestKey_Deterministic(t *testing.T) {
	image := []byte{0xFF, 0xD8, 0xFF, 0xE0}

	first := Key(image, "비타민C 세럼", models.ImageRoleProduct)
	second := Key(image, "비타민C 세럼", models.ImageRoleProduct)

	if first != second {
		t.Errorf("Expected identical keys, got %s and %s", first, second)
	}
	if !strings.HasPrefix(first, "screening:verdict:") {
		t.Errorf("Expected namespaced key, got %s", first)
	}
}

func TestKey_VariesWithSubject(t *testing.T) {
	image := []byte{0xFF, 0xD8, 0xFF, 0xE0}

	if Key(image, "비타민C 세럼", models.ImageRoleProduct) == Key(image, "보톡스", models.ImageRoleProduct) {
		t.Error("Expected different subjects to produce different keys")
	}
}

func TestKey_VariesWithImage(t *testing.T) {
	if Key([]byte{1, 2, 3}, "보톡스", models.ImageRoleProduct) == Key([]byte{4, 5, 6}, "보톡스", models.ImageRoleProduct) {
		t.Error("Expected different images to produce different keys")
	}
}

func TestKey_VariesWithImageRole(t *testing.T) {
	image := []byte{0xFF, 0xD8, 0xFF, 0xE0}

	// The role changes the prompt, so a receipt verdict must not answer a
	// product screening of the same image.
	if Key(image, "비타민C 세럼", models.ImageRoleReceipt) == Key(image, "비타민C 세럼", models.ImageRoleProduct) {
		t.Error("Expected different image roles to produce different keys")
	}
}

func TestKey_SeparatorPreventsBoundaryCollisions(t *testing.T) {
	// "ab"+"c" and "a"+"bc" must not hash to the same key.
	if Key([]byte("ab"), "c", models.ImageRoleProduct) == Key([]byte("a"), "bc", models.ImageRoleProduct) {
		t.Error("Expected the separator to keep image and subject bytes distinct")
	}
}
