package v1

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/helixml/chickenrescue"
	"github.com/helixml/chickenrescue/domain/boss"
	"github.com/helixml/chickenrescue/infrastructure/api/middleware"
	"github.com/helixml/chickenrescue/infrastructure/api/v1/dto"
)

// BossRouter handles the boss behaviour endpoint.
type BossRouter struct {
	client *chickenrescue.Client
	logger *slog.Logger
}

// NewBossRouter creates a new BossRouter.
func NewBossRouter(client *chickenrescue.Client) *BossRouter {
	return &BossRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for boss endpoints.
func (r *BossRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", r.Check)
	return router
}

// Check handles POST /api/v1/boss.
func (r *BossRouter) Check(w http.ResponseWriter, req *http.Request) {
	var body dto.BossRequest
	if err := decode(w, req, &body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	verdict, err := r.client.Boss.Judge(body.Actions)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.BossResponse{
		Verdict: verdict.String(),
		Good:    verdict == boss.GoodBoy,
	})
}
