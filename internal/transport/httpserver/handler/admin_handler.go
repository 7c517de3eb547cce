package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"contractor-directory/internal/app/service"
	"contractor-directory/internal/transport/httpserver/dto"
)

// AdminHandler handles admin-related HTTP requests.
type AdminHandler struct {
	service *service.DirectoryService
	logger  *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(svc *service.DirectoryService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: svc,
		logger:  logger,
	}
}

// Warm handles POST /api/v1/admin/warm
// Primes the search cache with the first unfiltered directory page.
func (h *AdminHandler) Warm(c *fiber.Ctx) error {
	h.logger.Info("manual cache warm triggered")

	start := time.Now()
	count, err := h.service.Warm(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: "cache warm failed",
			Code:  "WARM_FAILED",
		})
	}

	return c.JSON(dto.WarmResponse{
		Count:    count,
		Duration: time.Since(start).String(),
	})
}

// PurgeCache handles POST /api/v1/admin/cache/purge
func (h *AdminHandler) PurgeCache(c *fiber.Ctx) error {
	h.logger.Info("cache purge triggered")

	if err := h.service.PurgeCache(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "cache purge failed",
			Code:  "PURGE_FAILED",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
