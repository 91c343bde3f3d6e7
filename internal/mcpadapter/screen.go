package mcpadapter

import (
	"context"

	"github.com/findmymarket/screening-agent/internal/category"
	"github.com/findmymarket/screening-agent/internal/models"
	"github.com/findmymarket/screening-agent/internal/screening"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ScreenImageInput is the MCP tool input schema (matches HTTP API field names).
type ScreenImageInput struct {
	ImageBase64  string `json:"image_base64" jsonschema:"base64-encoded image to screen"`
	MediaType    string `json:"media_type,omitempty" jsonschema:"declared image media type, default image/jpeg"`
	ImageRole    string `json:"image_role,omitempty" jsonschema:"receipt or product, default product"`
	ProductName  string `json:"product_name,omitempty" jsonschema:"free-text product or procedure the participant selected"`
	Category     string `json:"category,omitempty" jsonschema:"category key from the closed screening table"`
	ContactID    string `json:"contact_id,omitempty" jsonschema:"CRM contact id to update with the verdict"`
	ContactEmail string `json:"contact_email,omitempty" jsonschema:"CRM contact email to look up and update"`
}

// NewScreenImageHandler returns a tool handler that uses the given screener.
// Pass the returned function to mcp.AddTool.
func NewScreenImageHandler(screener *screening.Screener, categories *category.Table) func(context.Context, *mcp.CallToolRequest, ScreenImageInput) (*mcp.CallToolResult, models.ScreeningResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ScreenImageInput) (*mcp.CallToolResult, models.ScreeningResult, error) {
		return ScreenImage(ctx, screener, categories, req, input)
	}
}

// ScreenImage runs the screening pipeline and returns the result.
func ScreenImage(
	ctx context.Context,
	screener *screening.Screener,
	categories *category.Table,
	req *mcp.CallToolRequest,
	input ScreenImageInput,
) (*mcp.CallToolResult, models.ScreeningResult, error) {
	sc, err := screening.Normalize(models.ScreeningRequest{
		ImageBase64:  input.ImageBase64,
		MediaType:    input.MediaType,
		ImageRole:    models.ImageRole(input.ImageRole),
		ProductName:  input.ProductName,
		Category:     input.Category,
		ContactID:    input.ContactID,
		ContactEmail: input.ContactEmail,
	}, categories)
	if err != nil {
		return nil, models.ScreeningResult{}, err
	}

	result, err := screener.Screen(ctx, sc)
	return nil, result, err
}
