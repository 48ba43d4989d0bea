package api

import (
	"stpaul-crime/api/handlers"
	"stpaul-crime/api/routegroups"

	"github.com/go-chi/chi/v5"
)

type routeHandlers struct {
	crime  *handlers.CrimeHandler
	health *handlers.HealthHandler
}

func (s *Server) registerRoutes(r chi.Router, h routeHandlers) {
	routegroups.RegisterCrime(r, h.crime)
	routegroups.RegisterHealth(r, h.health)
}
