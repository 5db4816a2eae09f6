package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/municipalreports/backend/internal/config"
	"github.com/municipalreports/backend/internal/dto"
	"github.com/municipalreports/backend/internal/services"
)

type DashboardHandler struct {
	cfg              *config.Config
	dashboardService *services.DashboardService
}

func NewDashboardHandler(cfg *config.Config, dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{cfg: cfg, dashboardService: dashboardService}
}

func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	data, err := h.dashboardService.Overview()
	if err != nil {
		return h.storeError(c, "Failed to compute overview", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func (h *DashboardHandler) CategoryStats(c *fiber.Ctx) error {
	data, err := h.dashboardService.CategoryStats()
	if err != nil {
		return h.storeError(c, "Failed to compute category stats", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func (h *DashboardHandler) MonthlyTrends(c *fiber.Ctx) error {
	months := c.QueryInt("months", 12)
	data, err := h.dashboardService.MonthlyTrends(months)
	if err != nil {
		return h.storeError(c, "Failed to compute monthly trends", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func (h *DashboardHandler) RecentActivity(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	data, err := h.dashboardService.RecentActivity(limit)
	if err != nil {
		return h.storeError(c, "Failed to fetch recent activity", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func (h *DashboardHandler) PerformanceMetrics(c *fiber.Ctx) error {
	data, err := h.dashboardService.PerformanceMetrics()
	if err != nil {
		return h.storeError(c, "Failed to compute performance metrics", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func (h *DashboardHandler) storeError(c *fiber.Ctx, message string, err error) error {
	if h.cfg.Development() {
		message = message + ": " + err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Success: false, Message: message,
	})
}
