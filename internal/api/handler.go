package api

import (
	"errors"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/findmymarket/screening-agent/internal/api/middleware"
	"github.com/findmymarket/screening-agent/internal/category"
	"github.com/findmymarket/screening-agent/internal/models"
	"github.com/findmymarket/screening-agent/internal/screening"
	"github.com/rs/zerolog"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type CategoryInfo struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type CategoriesResponse struct {
	Categories []CategoryInfo `json:"categories"`
}

type Handler struct {
	screener   *screening.Screener
	categories *category.Table
	logger     *zerolog.Logger
}

func NewHandler(screener *screening.Screener, categories *category.Table, logger *zerolog.Logger) *Handler {
	return &Handler{
		screener:   screener,
		categories: categories,
		logger:     logger,
	}
}

// POST /api/v1/screen
// Body: ScreeningRequest
// Returns: ScreeningResult
func (h *Handler) Screen(req *restful.Request, resp *restful.Response) {
	var screenRequest models.ScreeningRequest
	if err := req.ReadEntity(&screenRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	h.screen(req, resp, screenRequest)
}

// POST /api/v1/screen/category/{category}
// Same contract as Screen, with the category fixed by the path. A category
// in the body is ignored in favor of the path parameter.
func (h *Handler) ScreenCategory(req *restful.Request, resp *restful.Response) {
	var screenRequest models.ScreeningRequest
	if err := req.ReadEntity(&screenRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	screenRequest.Category = req.PathParameter("category")
	screenRequest.ProductName = ""

	h.screen(req, resp, screenRequest)
}

func (h *Handler) screen(req *restful.Request, resp *restful.Response, screenRequest models.ScreeningRequest) {
	sc, err := screening.Normalize(screenRequest, h.categories)
	if err != nil {
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	h.logger.Info().
		Str("request_id", sc.RequestID).
		Str("subject", sc.Subject.Description()).
		Str("category", sc.Subject.CategoryKey).
		Str("media_type", sc.MediaType).
		Msg("Start screening")

	ctx := req.Request.Context()
	result, err := h.screener.Screen(ctx, sc)
	if err != nil {
		h.logger.Error().Err(err).Str("request_id", sc.RequestID).Msg("Screening failed")
		middleware.HandleError(resp, errors.New("image validation failed"), http.StatusInternalServerError)
		return
	}

	h.logger.Info().
		Str("request_id", sc.RequestID).
		Str("recommendation", string(result.Recommendation)).
		Float64("relevance_score", result.RelevanceScore).
		Msg("Screening complete")

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// GET /api/v1/categories
func (h *Handler) Categories(req *restful.Request, resp *restful.Response) {
	out := CategoriesResponse{Categories: []CategoryInfo{}}
	for _, p := range h.categories.Profiles() {
		out.Categories = append(out.Categories, CategoryInfo{Key: p.Key, Label: p.Label})
	}

	resp.WriteHeaderAndEntity(http.StatusOK, out)
}

// Health handler GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	healthResponse := HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	}

	resp.WriteHeaderAndEntity(http.StatusOK, healthResponse)
}
