// Package mcpserver exposes the expense service as Model Context Protocol
// tools. Exactly four tools are registered: add_expense, list_expenses,
// summarize_expenses and monthly_report. Tenant identity (user_id) is a
// trusted argument injected by the upstream orchestrator; there is no
// authentication at this layer.
package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/Saksham-hacked/expense-mcp-server/internal/dto"
	"github.com/Saksham-hacked/expense-mcp-server/internal/service"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

type Server struct {
	mcp     *server.MCPServer
	service *service.ExpenseService
	logger  *zap.Logger
}

func New(svc *service.ExpenseService, version string, logger *zap.Logger) *Server {
	s := &Server{
		mcp: server.NewMCPServer(
			"Expense Management",
			version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
		service: svc,
		logger:  logger,
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("add_expense",
		mcp.WithDescription("Add a new expense for a user."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User identifier")),
		mcp.WithString("date", mcp.Required(), mcp.Description("Expense date in YYYY-MM-DD format")),
		mcp.WithNumber("amount", mcp.Required(), mcp.Description("Expense amount, must be positive")),
		mcp.WithString("category", mcp.Required(), mcp.Description("Expense category")),
		mcp.WithString("merchant", mcp.Description("Merchant name (optional)")),
		mcp.WithString("note", mcp.Description("Additional note (optional)")),
	), s.handleAddExpense)

	s.mcp.AddTool(mcp.NewTool("list_expenses",
		mcp.WithDescription("List a user's expenses within a date range, ordered by date ascending."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User identifier")),
		mcp.WithString("start_date", mcp.Required(), mcp.Description("Range start in YYYY-MM-DD format")),
		mcp.WithString("end_date", mcp.Required(), mcp.Description("Range end in YYYY-MM-DD format")),
	), s.handleListExpenses)

	s.mcp.AddTool(mcp.NewTool("summarize_expenses",
		mcp.WithDescription("Summarize a user's expenses by category within a date range, ordered by total descending."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User identifier")),
		mcp.WithString("start_date", mcp.Required(), mcp.Description("Range start in YYYY-MM-DD format")),
		mcp.WithString("end_date", mcp.Required(), mcp.Description("Range end in YYYY-MM-DD format")),
	), s.handleSummarizeExpenses)

	s.mcp.AddTool(mcp.NewTool("monthly_report",
		mcp.WithDescription("Generate a monthly expense report with total, count, category breakdown and a summary line."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User identifier")),
		mcp.WithString("month", mcp.Required(), mcp.Description("Month in YYYY-MM format")),
	), s.handleMonthlyReport)
}

func (s *Server) handleAddExpense(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := request.RequireString("user_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	date, err := request.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	amount, err := request.RequireFloat("amount")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	category, err := request.RequireString("category")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resp, err := s.service.AddExpense(ctx, &dto.AddExpenseRequest{
		UserID:   userID,
		Date:     date,
		Amount:   amount,
		Category: category,
		Merchant: request.GetString("merchant", ""),
		Note:     request.GetString("note", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.jsonResult(resp)
}

func (s *Server) handleListExpenses(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req, result := s.rangeRequest(request)
	if result != nil {
		return result, nil
	}

	resp, err := s.service.ListExpenses(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.jsonResult(resp)
}

func (s *Server) handleSummarizeExpenses(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req, result := s.rangeRequest(request)
	if result != nil {
		return result, nil
	}

	resp, err := s.service.SummarizeExpenses(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.jsonResult(resp)
}

func (s *Server) handleMonthlyReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := request.RequireString("user_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	month, err := request.RequireString("month")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resp, err := s.service.MonthlyReport(ctx, &dto.MonthlyReportRequest{UserID: userID, Month: month})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.jsonResult(resp)
}

func (s *Server) rangeRequest(request mcp.CallToolRequest) (*dto.ListExpensesRequest, *mcp.CallToolResult) {
	userID, err := request.RequireString("user_id")
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}
	startDate, err := request.RequireString("start_date")
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}
	endDate, err := request.RequireString("end_date")
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}
	return &dto.ListExpensesRequest{UserID: userID, StartDate: startDate, EndDate: endDate}, nil
}

func (s *Server) jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("failed to marshal tool result", zap.Error(err))
		return mcp.NewToolResultError("failed to encode result"), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// ServeStdio blocks serving MCP over stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// NewHTTPServer returns a streamable-HTTP wrapper around the MCP server.
func (s *Server) NewHTTPServer() *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(s.mcp)
}
