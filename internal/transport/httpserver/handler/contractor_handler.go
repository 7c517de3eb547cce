// Package handler provides HTTP handlers for the API.
package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"contractor-directory/internal/app/service"
	"contractor-directory/internal/infra/wordpress"
	"contractor-directory/internal/transport/httpserver/dto"
	"contractor-directory/internal/validator"
)

// ContractorHandler handles contractor directory HTTP requests.
type ContractorHandler struct {
	service   *service.DirectoryService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewContractorHandler creates a new ContractorHandler.
func NewContractorHandler(svc *service.DirectoryService, v *validator.Validator, logger *zap.Logger) *ContractorHandler {
	return &ContractorHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// Search handles POST /api/v1/contractors/search
// This is the form-driven write path: pagination controls and the filter
// form both re-submit here.
func (h *ContractorHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid form submission",
			Code:  "INVALID_FORM",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	page, err := h.service.Search(c.Context(), req.ToFilters(), req.Page(), req.Size())
	if err != nil {
		h.logger.Error("contractor search failed", zap.Error(err))

		// No upstream detail reaches the client.
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: "contractor search failed",
			Code:  "UPSTREAM_ERROR",
		})
	}

	return c.JSON(dto.FromPage(page))
}

// Index handles GET /api/v1/contractors
// The read path for initial render: an empty result set, the directory
// defers all data loading to the first client-driven search.
func (h *ContractorHandler) Index(c *fiber.Ctx) error {
	return c.JSON(dto.FromPage(h.service.InitialPage()))
}

// GetByID handles GET /api/v1/contractors/:id
func (h *ContractorHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "id is required",
			Code:  "MISSING_ID",
		})
	}

	contractor, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		var apiErr *wordpress.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == fiber.StatusNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "contractor not found",
				Code:  "NOT_FOUND",
			})
		}

		h.logger.Error("get contractor failed", zap.String("id", id), zap.Error(err))

		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: "failed to get contractor",
			Code:  "UPSTREAM_ERROR",
		})
	}

	return c.JSON(contractor)
}

// ServiceTypes handles GET /api/v1/service-types
func (h *ContractorHandler) ServiceTypes(c *fiber.Ctx) error {
	types, err := h.service.ServiceTypes(c.Context())
	if err != nil {
		h.logger.Error("service types fetch failed", zap.Error(err))

		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: "failed to list service types",
			Code:  "UPSTREAM_ERROR",
		})
	}

	return c.JSON(dto.ServiceTypesResponse{ServiceTypes: types})
}
