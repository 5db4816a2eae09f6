package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/municipalreports/backend/internal/dto"
	"github.com/municipalreports/backend/internal/services"
)

type ImageHandler struct {
	uploadService *services.UploadService
}

func NewImageHandler(uploadService *services.UploadService) *ImageHandler {
	return &ImageHandler{uploadService: uploadService}
}

func (h *ImageHandler) Upload(c *fiber.Ctx) error {
	reportID, err := c.ParamsInt("reportId")
	if err != nil || reportID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid report ID",
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "No file provided",
		})
	}

	imagePath, err := h.uploadService.Attach(uint(reportID), file)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Success: false, Message: "Report not found",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "Image uploaded successfully",
		"image_path": imagePath,
	})
}

func (h *ImageHandler) View(c *fiber.Ctx) error {
	path, contentType, err := h.uploadService.Resolve(c.Params("filename"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Success: false, Message: "Image not found",
		})
	}

	c.Set(fiber.HeaderContentType, contentType)
	return c.SendFile(path)
}

func (h *ImageHandler) Delete(c *fiber.Ctx) error {
	reportID, err := c.ParamsInt("reportId")
	if err != nil || reportID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid report ID",
		})
	}

	if err := h.uploadService.Remove(uint(reportID)); err != nil {
		switch {
		case errors.Is(err, services.ErrReportNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Success: false, Message: "Report not found",
			})
		case errors.Is(err, services.ErrNoImage):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Success: false, Message: "No image to delete",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Success: false, Message: "Failed to delete image",
			})
		}
	}

	return c.JSON(fiber.Map{"success": true, "message": "Image deleted successfully"})
}
