package handlers

import (
	"time"

	"papatacos/internal/config"
	"papatacos/internal/core/services"
	"papatacos/internal/pkg/period"
	"papatacos/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler serves the dashboard totals
type ReportHandler struct {
	reportService *services.ReportService
	cfg           *config.Config
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService, cfg *config.Config) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		cfg:           cfg,
	}
}

// date reads ?date=YYYY-MM-DD, today in the business zone when absent
func (h *ReportHandler) date(c *fiber.Ctx) (time.Time, error) {
	return period.ParseDate(c.Query("date"), h.cfg.Location, time.Now())
}

// Daily returns income, expenses and balance of a day
// @Summary Daily totals
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param date query string false "Day (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /dashboard/daily [get]
func (h *ReportHandler) Daily(c *fiber.Ctx) error {
	date, err := h.date(c)
	if err != nil {
		return response.ValidationError(c, "date", "Date invalide, format attendu AAAA-MM-JJ")
	}

	totals, err := h.reportService.DailyTotals(c.Context(), date)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Totaux du jour", totals)
}

// Monthly returns the profit and loss of a month
// @Summary Monthly totals
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param date query string false "Any day of the month (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /dashboard/monthly [get]
func (h *ReportHandler) Monthly(c *fiber.Ctx) error {
	date, err := h.date(c)
	if err != nil {
		return response.ValidationError(c, "date", "Date invalide, format attendu AAAA-MM-JJ")
	}

	totals, err := h.reportService.MonthlyTotals(c.Context(), date)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Totaux du mois", totals)
}

// Dashboard returns the daily and monthly figures together
// @Summary Full dashboard
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param date query string false "Day (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	date, err := h.date(c)
	if err != nil {
		return response.ValidationError(c, "date", "Date invalide, format attendu AAAA-MM-JJ")
	}

	dashboard, err := h.reportService.Dashboard(c.Context(), date)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Tableau de bord", dashboard)
}

// ChargesOfMonth lists the fixed charges of a month
// @Summary Fixed charges of a month
// @Tags Charges
// @Produce json
// @Security BearerAuth
// @Param date query string false "Any day of the month (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /charges/month [get]
func (h *ReportHandler) ChargesOfMonth(c *fiber.Ctx) error {
	date, err := h.date(c)
	if err != nil {
		return response.ValidationError(c, "date", "Date invalide, format attendu AAAA-MM-JJ")
	}

	charges, err := h.reportService.ChargesOfMonth(c.Context(), date)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Charges du mois", charges)
}
