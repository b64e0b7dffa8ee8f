package handlers

import (
	"errors"

	"github.com/Saksham-hacked/expense-mcp-server/internal/dto"
	"github.com/Saksham-hacked/expense-mcp-server/internal/service"
	"github.com/Saksham-hacked/expense-mcp-server/internal/validate"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ExpenseHandler struct {
	expenseService *service.ExpenseService
	logger         *zap.Logger
}

func NewExpenseHandler(expenseService *service.ExpenseService, logger *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		logger:         logger,
	}
}

func (h *ExpenseHandler) AddExpense(c *fiber.Ctx) error {
	var req dto.AddExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	resp, err := h.expenseService.AddExpense(c.Context(), &req)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *ExpenseHandler) ListExpenses(c *fiber.Ctx) error {
	resp, err := h.expenseService.ListExpenses(c.Context(), &dto.ListExpensesRequest{
		UserID:    c.Query("user_id"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	})
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(resp)
}

func (h *ExpenseHandler) SummarizeExpenses(c *fiber.Ctx) error {
	resp, err := h.expenseService.SummarizeExpenses(c.Context(), &dto.ListExpensesRequest{
		UserID:    c.Query("user_id"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	})
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(resp)
}

func (h *ExpenseHandler) MonthlyReport(c *fiber.Ctx) error {
	resp, err := h.expenseService.MonthlyReport(c.Context(), &dto.MonthlyReportRequest{
		UserID: c.Query("user_id"),
		Month:  c.Query("month"),
	})
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(resp)
}

// fail maps caller-correctable validation failures to 400 and everything else
// (storage failures) to 500, surfacing the message as-is.
func (h *ExpenseHandler) fail(c *fiber.Ctx, err error) error {
	if isValidationError(err) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	h.logger.Error("expense operation failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func isValidationError(err error) bool {
	return errors.Is(err, validate.ErrMissingField) ||
		errors.Is(err, validate.ErrInvalidFormat) ||
		errors.Is(err, validate.ErrInvalidAmount) ||
		errors.Is(err, validate.ErrInvalidRange)
}
