package handlers

import (
	"papatacos/internal/adapters/http/middleware"
	"papatacos/internal/core/services"
	"papatacos/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// EntryHandler records and lists income, expenses and fixed charges
type EntryHandler struct {
	entryService  *services.EntryService
	reportService *services.ReportService
}

// NewEntryHandler creates a new entry handler
func NewEntryHandler(entryService *services.EntryService, reportService *services.ReportService) *EntryHandler {
	return &EntryHandler{
		entryService:  entryService,
		reportService: reportService,
	}
}

// ListIncome returns every income entry, newest first
// @Summary List income
// @Tags Income
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /income [get]
func (h *EntryHandler) ListIncome(c *fiber.Ctx) error {
	history, err := h.reportService.ListIncome(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Historique des recettes", history)
}

// RecordIncome stores an income entry
// @Summary Record income
// @Tags Income
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RecordIncomeInput true "Income"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /income [post]
func (h *EntryHandler) RecordIncome(c *fiber.Ctx) error {
	session := middleware.GetSession(c)
	if session == nil {
		return response.Unauthorized(c, msgUnauthorized)
	}

	var input services.RecordIncomeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, msgInvalidBody)
	}

	entry, err := h.entryService.RecordIncome(c.Context(), session, &input)
	if err != nil {
		return respondError(c, err)
	}
	return response.Created(c, "Recette enregistrée", entry)
}

// ListExpenses returns every expense, newest first
// @Summary List expenses
// @Tags Expenses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /expenses [get]
func (h *EntryHandler) ListExpenses(c *fiber.Ctx) error {
	history, err := h.reportService.ListExpenses(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Historique des dépenses", history)
}

// RecordExpense stores an expense
// @Summary Record expense
// @Tags Expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RecordExpenseInput true "Expense"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /expenses [post]
func (h *EntryHandler) RecordExpense(c *fiber.Ctx) error {
	session := middleware.GetSession(c)
	if session == nil {
		return response.Unauthorized(c, msgUnauthorized)
	}

	var input services.RecordExpenseInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, msgInvalidBody)
	}

	entry, err := h.entryService.RecordExpense(c.Context(), session, &input)
	if err != nil {
		return respondError(c, err)
	}
	return response.Created(c, "Dépense enregistrée", entry)
}

// ListCharges returns every fixed charge, newest first
// @Summary List fixed charges
// @Tags Charges
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /charges [get]
func (h *EntryHandler) ListCharges(c *fiber.Ctx) error {
	history, err := h.reportService.ListCharges(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Historique des charges", history)
}

// RecordCharge stores a fixed charge
// @Summary Record fixed charge
// @Tags Charges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RecordChargeInput true "Fixed charge"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /charges [post]
func (h *EntryHandler) RecordCharge(c *fiber.Ctx) error {
	session := middleware.GetSession(c)
	if session == nil {
		return response.Unauthorized(c, msgUnauthorized)
	}

	var input services.RecordChargeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, msgInvalidBody)
	}

	entry, err := h.entryService.RecordCharge(c.Context(), session, &input)
	if err != nil {
		return respondError(c, err)
	}
	return response.Created(c, "Charge enregistrée", entry)
}
