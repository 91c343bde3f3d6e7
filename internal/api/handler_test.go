package api_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/emicklei/go-restful/v3"
	"github.com/findmymarket/screening-agent/internal/api"
	"github.com/findmymarket/screening-agent/internal/api/middleware"
	"github.com/findmymarket/screening-agent/internal/category"
	"github.com/findmymarket/screening-agent/internal/crm"
	crmmocks "github.com/findmymarket/screening-agent/internal/crm/mocks"
	"github.com/findmymarket/screening-agent/internal/llm"
	llmmocks "github.com/findmymarket/screening-agent/internal/llm/mocks"
	"github.com/findmymarket/screening-agent/internal/models"
	"github.com/findmymarket/screening-agent/internal/screening"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

const approveReply = `{
  "image_type": "receipt",
  "product_or_procedure": "비타민C 세럼",
  "category_match": true,
  "relevance_score": 0.82,
  "confidence": "high",
  "red_flags": [],
  "recommendation": "approve",
  "reasoning": "영수증에 제품명이 명확히 표시되어 있습니다."
}`

// setupTestAPI builds the full HTTP stack (routes, filters, CORS) around a
// mocked vision client, mirroring cmd/api wiring.
func setupTestAPI(t *testing.T, llmClient llm.VisionClient, syncer crm.ContactSyncer) http.Handler {
	t.Helper()

	logger := zerolog.Nop()
	screener := screening.NewScreener(llmClient, syncer, nil, screening.Options{ModelID: "test-model"}, &logger)
	handler := api.NewHandler(screener, category.Default(), &logger)

	container := restful.NewContainer()
	container.Filter(middleware.RecoverPanic)
	container.Filter(container.OPTIONSFilter)
	api.RegisterRoutes(container, handler)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})

	return corsHandler.Handler(container)
}

func validImage() string {
	return base64.StdEncoding.EncodeToString([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'})
}

func postScreen(t *testing.T, stack http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/screen", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://findmymarket.example")

	recorder := httptest.NewRecorder()
	stack.ServeHTTP(recorder, req)
	return recorder
}

func TestAPI_Health(t *testing.T) {
	ctrl := gomock.NewController(t)
	stack := setupTestAPI(t, llmmocks.NewMockVisionClient(ctrl), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	recorder := httptest.NewRecorder()
	stack.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", recorder.Code)
	}

	var response api.HealthResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response.Status != "ok" {
		t.Errorf("Expected status 'ok', got '%s'", response.Status)
	}
}

func TestAPI_Categories(t *testing.T) {
	ctrl := gomock.NewController(t)
	stack := setupTestAPI(t, llmmocks.NewMockVisionClient(ctrl), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	recorder := httptest.NewRecorder()
	stack.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", recorder.Code)
	}

	var response api.CategoriesResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(response.Categories) != 6 {
		t.Errorf("Expected 6 categories, got %d", len(response.Categories))
	}
}

func TestAPI_Screen_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLLM := llmmocks.NewMockVisionClient(ctrl)
	mockLLM.EXPECT().
		InvokeModel(gomock.Any(), gomock.Any()).
		Return(&llm.VisionResponse{Content: approveReply}, nil)

	stack := setupTestAPI(t, mockLLM, nil)

	recorder := postScreen(t, stack, models.ScreeningRequest{
		ImageBase64: validImage(),
		ProductName: "비타민C 세럼",
	})

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", recorder.Code, recorder.Body.String())
	}
	if got := recorder.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected Access-Control-Allow-Origin header, got %q", got)
	}

	var result models.ScreeningResult
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if result.Recommendation != models.RecommendApprove {
		t.Errorf("Expected approve, got %s", result.Recommendation)
	}
	if result.Subject != "비타민C 세럼" {
		t.Errorf("Unexpected subject: %s", result.Subject)
	}
	if result.ValidatedAt.IsZero() {
		t.Error("Expected validated_at timestamp")
	}
}

func TestAPI_ScreenCategory_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLLM := llmmocks.NewMockVisionClient(ctrl)
	mockLLM.EXPECT().
		InvokeModel(gomock.Any(), gomock.Any()).
		Return(&llm.VisionResponse{Content: approveReply}, nil)

	stack := setupTestAPI(t, mockLLM, nil)

	data, err := json.Marshal(models.ScreeningRequest{ImageBase64: validImage()})
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/screen/category/cosmetics", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	stack.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", recorder.Code, recorder.Body.String())
	}

	var result models.ScreeningResult
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if result.Category != "cosmetics" {
		t.Errorf("Expected category 'cosmetics', got %q", result.Category)
	}
	if result.CategoryLabel != "화장품" {
		t.Errorf("Unexpected category label: %q", result.CategoryLabel)
	}
}

func TestAPI_Screen_UnknownCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	// No EXPECT: the classification client must never be invoked.
	stack := setupTestAPI(t, llmmocks.NewMockVisionClient(ctrl), nil)

	recorder := postScreen(t, stack, models.ScreeningRequest{
		ImageBase64: validImage(),
		Category:    "crypto",
	})

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", recorder.Code)
	}

	var response middleware.ErrorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if !bytes.Contains([]byte(response.Error), []byte("supplements")) {
		t.Errorf("Expected error to list valid keys, got %q", response.Error)
	}
}

func TestAPI_Screen_MissingImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	stack := setupTestAPI(t, llmmocks.NewMockVisionClient(ctrl), nil)

	recorder := postScreen(t, stack, models.ScreeningRequest{
		ProductName: "비타민C 세럼",
	})

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", recorder.Code)
	}
}

func TestAPI_Screen_ClassificationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLLM := llmmocks.NewMockVisionClient(ctrl)
	mockLLM.EXPECT().
		InvokeModel(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("ServiceUnavailableException: model overloaded"))

	stack := setupTestAPI(t, mockLLM, nil)

	recorder := postScreen(t, stack, models.ScreeningRequest{
		ImageBase64: validImage(),
		ProductName: "비타민C 세럼",
	})

	if recorder.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", recorder.Code)
	}
	if got := recorder.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected CORS header on error response, got %q", got)
	}
}

func TestAPI_Screen_SyncFailureStillReturns200(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLLM := llmmocks.NewMockVisionClient(ctrl)
	mockLLM.EXPECT().
		InvokeModel(gomock.Any(), gomock.Any()).
		Return(&llm.VisionResponse{Content: approveReply}, nil)

	mockSyncer := crmmocks.NewMockContactSyncer(ctrl)
	mockSyncer.EXPECT().
		SyncResult(gomock.Any(), "12345", "", gomock.Any()).
		Return(errors.New("hubspot PATCH failed: status 502"))

	stack := setupTestAPI(t, mockLLM, mockSyncer)

	recorder := postScreen(t, stack, models.ScreeningRequest{
		ImageBase64: validImage(),
		ProductName: "비타민C 세럼",
		ContactID:   "12345",
	})

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", recorder.Code, recorder.Body.String())
	}

	var result models.ScreeningResult
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if result.Recommendation != models.RecommendApprove {
		t.Errorf("Expected verdict intact, got %s", result.Recommendation)
	}
	if result.CRMSynced == nil || *result.CRMSynced {
		t.Error("Expected crm_synced=false")
	}
}

func TestAPI_Screen_MethodNotAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	stack := setupTestAPI(t, llmmocks.NewMockVisionClient(ctrl), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/screen", nil)
	recorder := httptest.NewRecorder()
	stack.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", recorder.Code)
	}
}

func TestAPI_Screen_CORSPreflight(t *testing.T) {
	ctrl := gomock.NewController(t)
	stack := setupTestAPI(t, llmmocks.NewMockVisionClient(ctrl), nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/screen", nil)
	req.Header.Set("Origin", "https://findmymarket.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type")

	recorder := httptest.NewRecorder()
	stack.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusNoContent && recorder.Code != http.StatusOK {
		t.Errorf("Expected preflight success, got %d", recorder.Code)
	}
	if got := recorder.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected Access-Control-Allow-Origin '*', got %q", got)
	}
	if got := recorder.Header().Get("Access-Control-Allow-Methods"); got != "POST" {
		t.Errorf("Expected allowed method POST, got %q", got)
	}
}

func TestAPI_Screen_BareOptions(t *testing.T) {
	ctrl := gomock.NewController(t)
	stack := setupTestAPI(t, llmmocks.NewMockVisionClient(ctrl), nil)

	// OPTIONS without preflight headers bypasses the CORS short-circuit and
	// must still get an empty success, not a 405.
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/screen", nil)
	req.Header.Set("Origin", "https://findmymarket.example")

	recorder := httptest.NewRecorder()
	stack.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", recorder.Code)
	}
	if recorder.Body.Len() != 0 {
		t.Errorf("Expected empty body, got %q", recorder.Body.String())
	}
	if got := recorder.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected Access-Control-Allow-Origin '*', got %q", got)
	}
	if allow := recorder.Header().Get("Allow"); !bytes.Contains([]byte(allow), []byte("POST")) {
		t.Errorf("Expected Allow header listing POST, got %q", allow)
	}
}
