package screening

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/findmymarket/screening-agent/internal/category"
	"github.com/findmymarket/screening-agent/internal/imagecheck"
	"github.com/findmymarket/screening-agent/internal/models"
	"github.com/google/uuid"
)

// Normalize validates an inbound request and resolves it into a
// ScreeningContext. All failures here are client errors; no external call
// has been made yet. Shared by the HTTP handler, the stream consumer, and
// the MCP adapter.
func Normalize(req models.ScreeningRequest, categories *category.Table) (models.ScreeningContext, error) {
	imageData, mediaType, err := imagecheck.Decode(req.ImageBase64, req.MediaType)
	if err != nil {
		return models.ScreeningContext{}, err
	}

	subject, err := resolveSubject(req, categories)
	if err != nil {
		return models.ScreeningContext{}, err
	}

	role := req.ImageRole
	if role == "" {
		role = models.ImageRoleProduct
	}

	return models.ScreeningContext{
		RequestID:    uuid.NewString(),
		ImageData:    imageData,
		MediaType:    mediaType,
		ImageRole:    role,
		Subject:      subject,
		ContactID:    req.ContactID,
		ContactEmail: req.ContactEmail,
		CreatedAt:    time.Now(),
	}, nil
}

func resolveSubject(req models.ScreeningRequest, categories *category.Table) (models.Subject, error) {
	if req.Category != "" {
		profile, ok := categories.Lookup(req.Category)
		if !ok {
			return models.Subject{}, fmt.Errorf("invalid category %q. Valid: %s",
				req.Category, strings.Join(categories.Keys(), ", "))
		}
		return models.Subject{
			CategoryKey:   profile.Key,
			CategoryLabel: profile.Label,
			Instruction:   profile.Instruction,
		}, nil
	}

	if strings.TrimSpace(req.ProductName) != "" {
		return models.Subject{ProductName: strings.TrimSpace(req.ProductName)}, nil
	}

	return models.Subject{}, errors.New("product_name or category is required")
}
