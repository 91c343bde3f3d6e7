package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/findmymarket/screening-agent/internal/api/middleware"
	"github.com/findmymarket/screening-agent/internal/models"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.GET("/categories").
			To(handler.Categories).
			Doc("List valid screening categories").
			Metadata(restfulspec.KeyOpenAPITags, []string{"screen"}).
			Writes(CategoriesResponse{}).
			Returns(200, "OK", CategoriesResponse{}))

	ws.
		Route(ws.POST("/screen").
			To(handler.Screen).
			Doc("Screen an uploaded image against a product or category").
			Metadata(restfulspec.KeyOpenAPITags, []string{"screen"}).
			Reads(models.ScreeningRequest{}).
			Writes(models.ScreeningResult{}).
			Returns(200, "OK", models.ScreeningResult{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/screen/category/{category}").
			To(handler.ScreenCategory).
			Doc("Screen an uploaded image against a fixed category from the path").
			Metadata(restfulspec.KeyOpenAPITags, []string{"screen"}).
			Param(ws.PathParameter("category", "category key from the screening table").DataType("string")).
			Reads(models.ScreeningRequest{}).
			Writes(models.ScreeningResult{}).
			Returns(200, "OK", models.ScreeningResult{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	container.Add(ws)
}
