package models

import (
	"time"
)

type Recommendation string

const (
	RecommendApprove Recommendation = "approve"
	RecommendReview  Recommendation = "review"
	RecommendReject  Recommendation = "reject"
)

type ImageType string

const (
	ImageTypeReceipt         ImageType = "receipt"
	ImageTypeProductPhoto    ImageType = "product_photo"
	ImageTypeOrderScreenshot ImageType = "order_screenshot"
	ImageTypeMedicalDocument ImageType = "medical_document"
	ImageTypeOther           ImageType = "other"
	ImageTypeUnidentifiable  ImageType = "unidentifiable"
)

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ImageRole tells the prompt builder which kind of evidence the
// participant claims to have uploaded.
type ImageRole string

const (
	ImageRoleReceipt ImageRole = "receipt"
	ImageRoleProduct ImageRole = "product"
)

// Input message

type ScreeningRequest struct {
	ImageBase64  string    `json:"image_base64"`
	MediaType    string    `json:"media_type,omitempty"`
	ImageRole    ImageRole `json:"image_role,omitempty"`
	ProductName  string    `json:"product_name,omitempty"`
	Category     string    `json:"category,omitempty"`
	ContactID    string    `json:"contact_id,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
}

// Subject is the resolved subject descriptor: either a free-text product
// name or a category profile from the closed category table.
type Subject struct {
	ProductName   string
	CategoryKey   string
	CategoryLabel string
	Instruction   string
}

// Description is the human-readable subject used in result metadata and
// CRM fields.
func (s Subject) Description() string {
	if s.ProductName != "" {
		return s.ProductName
	}
	return s.CategoryLabel
}

// Normalized internal object
type ScreeningContext struct {
	RequestID    string
	ImageData    []byte
	MediaType    string
	ImageRole    ImageRole
	Subject      Subject
	ContactID    string
	ContactEmail string
	CreatedAt    time.Time
}

// Verdict is the structured outcome of classifying one image against one
// subject descriptor, as reported by the vision model.
type Verdict struct {
	ImageType          ImageType      `json:"image_type"`
	ProductOrProcedure *string        `json:"product_or_procedure"`
	BrandOrClinic      *string        `json:"brand_or_clinic"`
	DateDetected       *string        `json:"date_detected"`
	AmountDetected     *string        `json:"amount_detected"`
	CategoryMatch      bool           `json:"category_match"`
	RelevanceScore     float64        `json:"relevance_score"`
	Confidence         Confidence     `json:"confidence"`
	RedFlags           []string       `json:"red_flags"`
	Recommendation     Recommendation `json:"recommendation"`
	Reasoning          string         `json:"reasoning"`
}

// Final output returned to the caller.
type ScreeningResult struct {
	Verdict

	Subject       string    `json:"subject"`
	Category      string    `json:"category,omitempty"`
	CategoryLabel string    `json:"category_label,omitempty"`
	ImageRole     ImageRole `json:"image_role,omitempty"`
	ValidatedAt   time.Time `json:"validated_at"`
	ModelUsed     string    `json:"model_used,omitempty"`
	Cached        bool      `json:"cached,omitempty"`

	// Set when the locally derived recommendation disagreed with the
	// model's stated one and replaced it.
	ModelRecommendation Recommendation `json:"model_recommendation,omitempty"`

	// Nil when no sync was attempted.
	CRMSynced *bool  `json:"crm_synced,omitempty"`
	CRMError  string `json:"crm_error,omitempty"`
}
