package routegroups

import (
	"stpaul-crime/api/handlers"

	"github.com/go-chi/chi/v5"
)

func RegisterCrime(r chi.Router, crime *handlers.CrimeHandler) {
	r.MethodFunc("GET", "/codes", crime.ListCodes)
	r.MethodFunc("GET", "/neighborhoods", crime.ListNeighborhoods)
	r.MethodFunc("GET", "/incidents", crime.ListIncidents)
	r.MethodFunc("PUT", "/new-incident", crime.CreateIncident)
	r.MethodFunc("DELETE", "/remove-incident", crime.RemoveIncident)
}

func RegisterHealth(r chi.Router, health *handlers.HealthHandler) {
	r.MethodFunc("GET", "/health", health.Health)
}
