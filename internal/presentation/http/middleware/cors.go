package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/xylem-api/internal/config"
)

var (
	defaultOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	defaultMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	defaultHeaders = []string{"Accept", "Authorization", "Content-Type", "Origin", RequestIDHeader}
)

func orDefault(v, def []string) []string {
	if len(v) == 0 {
		return def
	}
	return v
}

// CORSMiddleware lets the back-office frontends call the API. An origin list
// of "*" opens the API to any origin without credentials. Export downloads
// need Content-Disposition exposed.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	headers := slices.Clone(orDefault(cfg.AllowedHeaders, defaultHeaders))
	if !slices.Contains(headers, IdempotencyKeyHeader) {
		headers = append(headers, IdempotencyKeyHeader)
	}

	c := cors.Config{
		AllowMethods:  orDefault(cfg.AllowedMethods, defaultMethods),
		AllowHeaders:  headers,
		ExposeHeaders: []string{"Content-Length", "Content-Type", "Content-Disposition", RequestIDHeader, ReplayedHeader},
		MaxAge:        12 * time.Hour,
	}
	origins := orDefault(cfg.AllowedOrigins, defaultOrigins)
	if slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
		c.AllowCredentials = true
	}
	return cors.New(c)
}
