package crm

import (
	"context"

	"github.com/findmymarket/screening-agent/internal/models"
)

// ContactSyncer pushes a screening result into a CRM contact record.
// This allows mocking in tests without making real API calls.
type ContactSyncer interface {
	SyncResult(ctx context.Context, contactID string, email string, result models.ScreeningResult) error
}
