package api

import (
	"log"
	stdhttp "net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	intconfig "bigtrip/internal/config"
	h "bigtrip/internal/http/handlers"
	"bigtrip/internal/http/middleware"
	"bigtrip/internal/repositories"
)

// NewRouter assembles the reference point server: the big-trip store routes
// guarded by Basic/Bearer auth, plus the auth and system endpoints.
func NewRouter(env intconfig.Env, db *sqlx.DB) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Request-ID"},
		AllowCredentials: true,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	pointHandler := h.PointHandler{Points: repositories.PointRepository{DB: db}}
	catalogHandler := h.CatalogHandler{
		Destinations: repositories.DestinationRepository{DB: db},
		Offers:       repositories.OfferRepository{DB: db},
	}
	authHandler := h.AuthHandler{
		Users:     repositories.UserRepository{DB: db},
		JWTSecret: []byte(env.JWTSecret),
	}

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck(env))
		api.POST("/auth/login", authHandler.Login)
	}

	store := r.Group("/big-trip")
	store.Use(middleware.Auth(env.AuthToken, []byte(env.JWTSecret)))
	{
		store.GET("/points", pointHandler.List)
		store.POST("/points", pointHandler.Create)
		store.PUT("/points/:id", pointHandler.Update)
		store.DELETE("/points/:id", pointHandler.Delete)

		store.GET("/destinations", catalogHandler.ListDestinations)
		store.GET("/offers", catalogHandler.ListOffers)
	}

	return r
}
