package v1

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/helixml/chickenrescue"
	"github.com/helixml/chickenrescue/infrastructure/api/middleware"
	"github.com/helixml/chickenrescue/infrastructure/api/v1/dto"
	"github.com/helixml/chickenrescue/infrastructure/transaction"
)

// TransactionsRouter proxies broadcasts and status checks to the node.
type TransactionsRouter struct {
	client *chickenrescue.Client
	logger *slog.Logger
}

// NewTransactionsRouter creates a new TransactionsRouter.
func NewTransactionsRouter(client *chickenrescue.Client) *TransactionsRouter {
	return &TransactionsRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for transaction endpoints.
func (r *TransactionsRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", r.Broadcast)
	router.Get("/{hash}", r.Status)
	return router
}

// Broadcast handles POST /api/v1/transactions.
func (r *TransactionsRouter) Broadcast(w http.ResponseWriter, req *http.Request) {
	node, err := r.node()
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	var body dto.BroadcastRequest
	if err := decode(w, req, &body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	tx, err := transaction.NewTransaction(body.Symbol, body.Price)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	receipt, err := node.Broadcast(req.Context(), tx)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusAccepted, dto.BroadcastResponse{
		TxHash:    receipt.Hash,
		Timestamp: uint64(tx.Timestamp),
	})
}

// Status handles GET /api/v1/transactions/{hash}.
func (r *TransactionsRouter) Status(w http.ResponseWriter, req *http.Request) {
	node, err := r.node()
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	hash := chi.URLParam(req, "hash")
	status, err := node.Monitor(req.Context(), hash)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.TransactionStatusResponse{
		TxHash: hash,
		Status: string(status),
		Final:  status.Final(),
	})
}

func (r *TransactionsRouter) node() (*transaction.Client, error) {
	node, err := r.client.RequireTransactions()
	if err != nil {
		return nil, middleware.NewServerError(http.StatusServiceUnavailable, err.Error())
	}
	return node, nil
}
