// Package mcp provides Model Context Protocol server functionality.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/helixml/chickenrescue"
	"github.com/helixml/chickenrescue/application/service"
	"github.com/helixml/chickenrescue/domain/boss"
	"github.com/helixml/chickenrescue/infrastructure/transaction"
)

// ServerName is reported to MCP clients during initialisation.
const ServerName = "chickenrescue"

// Solver computes roof coverage for MCP tools.
type Solver interface {
	Solve(ctx context.Context, params service.SolveParams) (int, error)
}

// Judge checks boss behaviour for MCP tools.
type Judge interface {
	Judge(actions string) (boss.Verdict, error)
}

// Node broadcasts and monitors transactions for MCP tools.
type Node interface {
	Broadcast(ctx context.Context, tx transaction.Transaction) (transaction.Receipt, error)
	Monitor(ctx context.Context, hash string) (transaction.Status, error)
}

// Server wraps the MCP server with the puzzle tools.
type Server struct {
	mcpServer *server.MCPServer
	solver    Solver
	judge     Judge
	node      Node
	logger    *slog.Logger

	toolTimeout time.Duration
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithToolTimeout bounds how long a single tool call may run.
// Zero or negative leaves calls bounded only by the caller's context.
func WithToolTimeout(d time.Duration) ServerOption {
	return func(s *Server) { s.toolTimeout = d }
}

// NewServer creates a new MCP server. The transaction tools are registered
// only when node is non-nil.
func NewServer(solver Solver, judge Judge, node Node, version string, logger *slog.Logger, opts ...ServerOption) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		solver: solver,
		judge:  judge,
		node:   node,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(true),
	)
	s.registerTools(mcpServer)

	s.mcpServer = mcpServer
	return s
}

// NewServerForClient creates an MCP server backed by a library client.
func NewServerForClient(client *chickenrescue.Client, version string, opts ...ServerOption) *Server {
	var node Node
	if client.Transactions != nil {
		node = client.Transactions
	}
	return NewServer(client.Coverage, client.Boss, node, version, client.Logger(), opts...)
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	maxProtected := mcp.NewTool("max_protected",
		mcp.WithDescription("Compute the maximum number of chickens a single roof can protect. "+
			"A roof of length L placed at x covers positions in [x, x+L)."),
		mcp.WithNumber("roof_length",
			mcp.Required(),
			mcp.Description("Roof length, between 1 and 1000000"),
		),
		mcp.WithArray("positions",
			mcp.Required(),
			mcp.Description("Distinct chicken positions, ascending, each between 1 and 1000000000"),
			mcp.Items(map[string]any{"type": "integer", "minimum": 1}),
		),
		mcp.WithNumber("chicken_count",
			mcp.Description("Declared number of chickens; must equal the number of positions"),
		),
		mcp.WithBoolean("sort",
			mcp.Description("Sort positions first instead of rejecting unsorted input"),
		),
	)
	mcpServer.AddTool(maxProtected, s.handleMaxProtected)

	checkBoss := mcp.NewTool("check_boss",
		mcp.WithDescription("Judge whether a boss answered every shot. "+
			"S is a shot from the rival gang, R a retaliation. Returns Good boy or Bad boy."),
		mcp.WithString("actions",
			mcp.Required(),
			mcp.Description("Sequence of S and R, for example SRSSRRR"),
		),
	)
	mcpServer.AddTool(checkBoss, s.handleCheckBoss)

	if s.node == nil {
		return
	}

	broadcast := mcp.NewTool("broadcast_transaction",
		mcp.WithDescription("Broadcast a price transaction to the node and return its hash"),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Three letter ticker, for example ETH"),
		),
		mcp.WithNumber("price",
			mcp.Required(),
			mcp.Description("Non-zero integer price"),
		),
	)
	mcpServer.AddTool(broadcast, s.handleBroadcast)

	check := mcp.NewTool("check_transaction",
		mcp.WithDescription("Fetch the status of a broadcast transaction: CONFIRMED, FAILED, PENDING or DNE"),
		mcp.WithString("tx_hash",
			mcp.Required(),
			mcp.Description("Hash returned by broadcast_transaction"),
		),
	)
	mcpServer.AddTool(check, s.handleCheckTransaction)
}

func (s *Server) handleMaxProtected(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	roof, err := request.RequireFloat("roof_length")
	if err != nil {
		return mcp.NewToolResultError("roof_length is required"), nil
	}
	roofLength, err := wholeNumber("roof_length", roof)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	positions, err := positionsArgument(request.GetArguments()["positions"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	params := service.SolveParams{
		RoofLength: roofLength,
		Positions:  positions,
		Sort:       request.GetBool("sort", false),
	}
	if raw, ok := request.GetArguments()["chicken_count"].(float64); ok {
		count, err := wholeNumber("chicken_count", raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		params.ChickenCount = &count
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	best, err := s.solver.Solve(ctx, params)
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return mcp.NewToolResultError(fmt.Sprintf("solve abandoned: %v", err)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid input: %v", err)), nil
	}

	return jsonResult(map[string]int{"max_protected": best})
}

func (s *Server) handleCheckBoss(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	actions, err := request.RequireString("actions")
	if err != nil {
		return mcp.NewToolResultError("actions is required"), nil
	}

	verdict, err := s.judge.Judge(actions)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(verdict.String()), nil
}

func (s *Server) handleBroadcast(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	symbol, err := request.RequireString("symbol")
	if err != nil {
		return mcp.NewToolResultError("symbol is required"), nil
	}
	rawPrice, err := request.RequireFloat("price")
	if err != nil {
		return mcp.NewToolResultError("price is required"), nil
	}
	price, err := wholeNumber("price", rawPrice)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	tx, err := transaction.NewTransaction(symbol, price)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	receipt, err := s.node.Broadcast(ctx, tx)
	if err != nil {
		s.logger.Error("broadcast failed", slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("broadcast failed: %v", err)), nil
	}

	return jsonResult(map[string]any{"tx_hash": receipt.Hash, "timestamp": uint64(tx.Timestamp)})
}

func (s *Server) handleCheckTransaction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	hash, err := request.RequireString("tx_hash")
	if err != nil {
		return mcp.NewToolResultError("tx_hash is required"), nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	status, err := s.node.Monitor(ctx, hash)
	if err != nil {
		s.logger.Error("status check failed", slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("status check failed: %v", err)), nil
	}

	return mcp.NewToolResultText(string(status)), nil
}

// positionsArgument converts a JSON array of numbers into positions.
// Range checks are left to the domain.
func positionsArgument(raw any) ([]uint32, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("positions must be an array of integers")
	}
	out := make([]uint32, len(items))
	for i, item := range items {
		f, ok := item.(float64)
		if !ok || f < 0 || f > math.MaxUint32 || f != math.Trunc(f) {
			return nil, fmt.Errorf("positions[%d] must be a non-negative integer, got %v", i, item)
		}
		out[i] = uint32(f)
	}
	return out, nil
}

// maxExactFloat is the largest integer a JSON number carries without loss.
const maxExactFloat = 1 << 53

func wholeNumber(name string, f float64) (uint64, error) {
	if f < 0 || f != math.Trunc(f) || f > maxExactFloat {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %v", name, f)
	}
	return uint64(f), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio runs the MCP server on stdio.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.toolTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.toolTimeout)
}
