package routes

import (
	"time"

	"portal/handlers"
	"portal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows the listed front-ends to send the session cookie.
func CORSMiddleware(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// RegisterRoutes mounts every entry of Policies behind the CORS middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, gate *middleware.Gate, origins []string) {
	r.Use(CORSMiddleware(origins))

	for _, p := range Policies {
		r.Handle(p.Method, p.Path, p.Chain(gate, hb)...)
	}
}
