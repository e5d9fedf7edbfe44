package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the endpoint handlers the router mounts.
type HandlerBundle struct {
	// Session
	IssueTokenHandler gin.HandlerFunc
	LogoutHandler     gin.HandlerFunc

	// Services
	GetServicesByOwnerHandler gin.HandlerFunc
	ListServicesHandler       gin.HandlerFunc
	SearchServicesHandler     gin.HandlerFunc
	GetServiceByIDHandler     gin.HandlerFunc
	CreateServiceHandler      gin.HandlerFunc
	UpdateServiceHandler      gin.HandlerFunc
	DeleteServiceHandler      gin.HandlerFunc

	// Reviews
	GetReviewsByReviewerHandler gin.HandlerFunc
	GetReviewsByServiceHandler  gin.HandlerFunc
	CreateReviewHandler         gin.HandlerFunc
	UpdateReviewHandler         gin.HandlerFunc
	DeleteReviewHandler         gin.HandlerFunc

	// Catalogue
	PlatformStatsHandler  gin.HandlerFunc
	ListCategoriesHandler gin.HandlerFunc

	// Liveness
	RootHandler    gin.HandlerFunc
	HealthHandler  gin.HandlerFunc
	MetricsHandler gin.HandlerFunc
}

// NewHandlerBundle wires the handler methods into a bundle. metricsHandler
// serves the Prometheus exposition.
func NewHandlerBundle(auth *AuthHandler, services *ServiceHandler, reviews *ReviewHandler,
	categories *CategoryHandler, platformStats *StatsHandler, health *HealthHandler,
	metricsHandler http.Handler) *HandlerBundle {
	return &HandlerBundle{
		IssueTokenHandler: auth.IssueTokenHandler,
		LogoutHandler:     auth.LogoutHandler,

		GetServicesByOwnerHandler: services.GetServicesByOwner,
		ListServicesHandler:       services.ListServices,
		SearchServicesHandler:     services.SearchServices,
		GetServiceByIDHandler:     services.GetServiceByID,
		CreateServiceHandler:      services.CreateService,
		UpdateServiceHandler:      services.UpdateService,
		DeleteServiceHandler:      services.DeleteService,

		GetReviewsByReviewerHandler: reviews.GetReviewsByReviewer,
		GetReviewsByServiceHandler:  reviews.GetReviewsByService,
		CreateReviewHandler:         reviews.CreateReview,
		UpdateReviewHandler:         reviews.UpdateReview,
		DeleteReviewHandler:         reviews.DeleteReview,

		PlatformStatsHandler:  platformStats.GetPlatformStats,
		ListCategoriesHandler: categories.ListCategories,

		RootHandler:    health.Root,
		HealthHandler:  health.Health,
		MetricsHandler: gin.WrapH(metricsHandler),
	}
}
