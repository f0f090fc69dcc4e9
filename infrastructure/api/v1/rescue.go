package v1

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/helixml/chickenrescue"
	"github.com/helixml/chickenrescue/application/service"
	"github.com/helixml/chickenrescue/infrastructure/api/middleware"
	"github.com/helixml/chickenrescue/infrastructure/api/v1/dto"
)

// RescueRouter handles the roof coverage endpoint.
type RescueRouter struct {
	client *chickenrescue.Client
	logger *slog.Logger
}

// NewRescueRouter creates a new RescueRouter.
func NewRescueRouter(client *chickenrescue.Client) *RescueRouter {
	return &RescueRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for rescue endpoints.
func (r *RescueRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", r.Solve)
	return router
}

// Solve handles POST /api/v1/rescue.
func (r *RescueRouter) Solve(w http.ResponseWriter, req *http.Request) {
	var body dto.RescueRequest
	if err := decode(w, req, &body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	best, err := r.client.Coverage.Solve(req.Context(), service.SolveParams{
		ChickenCount: body.ChickenCount,
		RoofLength:   body.RoofLength,
		Positions:    body.Positions,
		Sort:         body.Sort,
	})
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.RescueResponse{
		MaxProtected: best,
		Strategy:     string(r.client.Coverage.Strategy()),
	})
}
