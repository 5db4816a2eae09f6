package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/municipalreports/backend/internal/config"
	"github.com/municipalreports/backend/internal/dto"
	"github.com/municipalreports/backend/internal/middleware"
	"github.com/municipalreports/backend/internal/models"
	"github.com/municipalreports/backend/internal/services"
)

type ReportHandler struct {
	cfg              *config.Config
	reportService    *services.ReportService
	searchService    *services.SearchService
	lifecycleService *services.LifecycleService
}

func NewReportHandler(
	cfg *config.Config,
	reportService *services.ReportService,
	searchService *services.SearchService,
	lifecycleService *services.LifecycleService,
) *ReportHandler {
	return &ReportHandler{
		cfg:              cfg,
		reportService:    reportService,
		searchService:    searchService,
		lifecycleService: lifecycleService,
	}
}

func (h *ReportHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid request body",
		})
	}

	report, err := h.reportService.Create(middleware.OptionalUserID(c), &req)
	if err != nil {
		if errors.Is(err, services.ErrPersistence) {
			return h.persistenceError(c, "Failed to create report", err)
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":   true,
		"report_id": report.ID,
		"message":   "Report created successfully",
	})
}

func (h *ReportHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid report ID",
		})
	}

	row, err := h.reportService.Get(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Success: false, Message: "Report not found",
			})
		}
		return h.persistenceError(c, "Failed to fetch report", err)
	}

	return c.JSON(fiber.Map{"success": true, "data": row})
}

func (h *ReportHandler) ListMine(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Success: false, Message: "Unauthorized",
		})
	}

	rows, err := h.reportService.ListByUser(userID)
	if err != nil {
		return h.persistenceError(c, "Failed to fetch reports", err)
	}

	return c.JSON(fiber.Map{"success": true, "reports": rows})
}

func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid report ID",
		})
	}

	if err := h.reportService.Delete(uint(id)); err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Success: false, Message: "Report not found",
			})
		}
		return h.persistenceError(c, "Failed to delete report", err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Report deleted successfully"})
}

func (h *ReportHandler) Search(c *fiber.Ctx) error {
	q := parseSearchQuery(c)

	resp, err := h.searchService.Search(q)
	if err != nil {
		return h.persistenceError(c, "Failed to search reports", err)
	}
	return c.JSON(resp)
}

func (h *ReportHandler) FilterOptions(c *fiber.Ctx) error {
	resp, err := h.reportService.FilterOptions()
	if err != nil {
		return h.persistenceError(c, "Failed to fetch filter options", err)
	}
	return c.JSON(resp)
}

func (h *ReportHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid report ID",
		})
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid request body",
		})
	}

	report, err := h.lifecycleService.ChangeStatus(uint(id), req.Status, req.AdminNotes)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReportNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Success: false, Message: "Report not found",
			})
		case errors.Is(err, services.ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Success: false, Message: "Invalid report status",
			})
		default:
			return h.persistenceError(c, "Failed to update report status", err)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Report status updated successfully",
		"data":    report,
	})
}

// persistenceError hides storage detail from callers unless the deployment
// runs in development mode.
func (h *ReportHandler) persistenceError(c *fiber.Ctx, message string, err error) error {
	if h.cfg.Development() {
		message = message + ": " + err.Error()
	}
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Success: false, Message: message,
	})
}

func parseSearchQuery(c *fiber.Ctx) *dto.SearchQuery {
	q := &dto.SearchQuery{
		Keyword:   c.Query("keyword"),
		Address:   c.Query("address"),
		SortBy:    c.Query("sortBy", "created"),
		SortOrder: c.Query("sortOrder", "desc"),
		Page:      c.QueryInt("page", 1),
		PageSize:  c.QueryInt("pageSize", 20),
	}

	if v := c.Query("categoryId"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			cid := uint(id)
			q.CategoryID = &cid
		}
	}
	if v := c.Query("status"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			st := models.ReportStatus(n)
			q.Status = &st
		}
	}
	if t := parseQueryTime(c.Query("fromDate")); t != nil {
		q.FromDate = t
	}
	if t := parseQueryTime(c.Query("toDate")); t != nil {
		q.ToDate = t
	}
	if v := c.Query("hasImage"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			q.HasImage = &b
		}
	}
	if v := c.Query("isAnonymous"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			q.IsAnonymous = &b
		}
	}
	return q
}

func parseQueryTime(v string) *time.Time {
	if v == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return &t
	}
	return nil
}
