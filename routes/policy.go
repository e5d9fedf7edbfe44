package routes

import (
	"fmt"
	"net/http"

	"portal/handlers"
	"portal/middleware"

	"github.com/gin-gonic/gin"
)

// Access is the check a route runs before its handler.
type Access int

const (
	// Public routes run no check.
	Public Access = iota
	// Authenticated routes run the token gate. The handler authorizes
	// against the request body or the stored document.
	Authenticated
	// OwnerParam routes run the token gate and match the session email
	// against a path parameter.
	OwnerParam
)

func (a Access) String() string {
	switch a {
	case Public:
		return "public"
	case Authenticated:
		return "authenticated"
	case OwnerParam:
		return "owner-param"
	default:
		return fmt.Sprintf("access(%d)", int(a))
	}
}

// Policy binds one route to its access level and handler.
type Policy struct {
	Method  string
	Path    string
	Access  Access
	Param   string // path parameter holding the owner, OwnerParam only
	Handler func(hb *handlers.HandlerBundle) gin.HandlerFunc
}

// Policies is the single source of truth for what every route requires.
var Policies = []Policy{
	{http.MethodGet, "/", Public, "", func(hb *handlers.HandlerBundle) gin.HandlerFunc { return hb.RootHandler }},
	{http.MethodGet, "/health", Public, "", func(hb *handlers.HandlerBundle) gin.HandlerFunc { return hb.HealthHandler }},
	{http.MethodGet, "/metrics", Public, "", func(hb *handlers.HandlerBundle) gin.HandlerFunc { return hb.MetricsHandler }},

	// Session
	{http.MethodPost, "/jwt", Public, "", func(hb *handlers.HandlerBundle) gin.HandlerFunc { return hb.IssueTokenHandler }},
	{http.MethodPost, "/logout", Public, "", func(hb *handlers.HandlerBundle) gin.HandlerFunc { return hb.LogoutHandler }},

	// Services
	{http.MethodGet, "/api/services/:email", OwnerParam, "email", func(hb *handlers.HandlerBundle) gin.HandlerFunc { return hb.GetServicesByOwnerHandler }},
	{http.MethodGet, "/api/services", Public, "", func(hb *handlers.HandlerBundle) gin.HandlerFunc { return hb.ListServicesHandler }},
	{http.MethodGet, "/api/allServices", Public, "", func(hb *handlers.HandlerBundle) gin.HandlerFunc { return hb.SearchServicesHandler }},
	{http.MethodGet, "/services/:id", Public, "", func(hb *handlers.HandlerBundle) gin.HandlerFunc { return hb.GetServiceByIDHandler }},
	{http.MethodPost, "/api/services", Authenticated, "", func(hb *handlers.HandlerBundle) gin.HandlerFunc { return hb.CreateServiceHandler }},
	{http.MethodPut, "/api/services/:id", Authenticated, "", func(hb *handlers.HandlerBundle) gin.HandlerFunc { return hb.UpdateServiceHandler }},
	{http.MethodDelete, "/api/services/:id", Authenticated, "", func(hb *handlers.HandlerBundle) gin.HandlerFunc { return hb.DeleteServiceHandler }},

	// Reviews
	{http.MethodGet, "/api/reviews/:email", OwnerParam, "email", func(hb *handlers.HandlerBundle) gin.HandlerFunc { return hb.GetReviewsByReviewerHandler }},
	{http.MethodGet, "/api/reviews/service/:serviceId", Public, "", func(hb *handlers.HandlerBundle) gin.HandlerFunc { return hb.GetReviewsByServiceHandler }},
	{http.MethodPost, "/api/reviews", Authenticated, "", func(hb *handlers.HandlerBundle) gin.HandlerFunc { return hb.CreateReviewHandler }},
	{http.MethodPatch, "/api/reviews/:id", Authenticated, "", func(hb *handlers.HandlerBundle) gin.HandlerFunc { return hb.UpdateReviewHandler }},
	{http.MethodDelete, "/api/reviews/:id", Authenticated, "", func(hb *handlers.HandlerBundle) gin.HandlerFunc { return hb.DeleteReviewHandler }},

	// Catalogue
	{http.MethodGet, "/api/platform-stats", Public, "", func(hb *handlers.HandlerBundle) gin.HandlerFunc { return hb.PlatformStatsHandler }},
	{http.MethodGet, "/api/categories", Public, "", func(hb *handlers.HandlerBundle) gin.HandlerFunc { return hb.ListCategoriesHandler }},
}

// Chain returns the middleware and handler to mount for the policy.
func (p Policy) Chain(gate *middleware.Gate, hb *handlers.HandlerBundle) []gin.HandlerFunc {
	switch p.Access {
	case Authenticated:
		return []gin.HandlerFunc{gate.VerifyToken(), p.Handler(hb)}
	case OwnerParam:
		return []gin.HandlerFunc{gate.VerifyToken(), gate.RequireOwnerParam(p.Param), p.Handler(hb)}
	default:
		return []gin.HandlerFunc{p.Handler(hb)}
	}
}
