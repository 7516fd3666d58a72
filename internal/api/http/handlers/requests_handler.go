package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/request-tracker/internal/api/dto"
	"github.com/spec-kit/request-tracker/internal/auth"
	"github.com/spec-kit/request-tracker/internal/domain"
	"github.com/spec-kit/request-tracker/internal/service"
	apperrors "github.com/spec-kit/request-tracker/pkg/util"
)

// RequestsHandler manages service-request endpoints.
type RequestsHandler struct {
	service *service.RequestService
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(requestService *service.RequestService) *RequestsHandler {
	return &RequestsHandler{service: requestService}
}

// CreateRequest POST /api/requests.
func (h *RequestsHandler) CreateRequest(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ServiceType == "" || req.Description == "" {
		return apperrors.NewValidationError("serviceType and description required", nil)
	}

	request, err := h.service.CreateRequest(c.Context(), principal.User.ID, service.RequestCreateInput{
		ServiceType: req.ServiceType,
		Description: req.Description,
		Priority:    req.Priority,
		Location:    req.Location,
	})
	if err != nil {
		return err
	}
	return jsonSuccess(c, http.StatusCreated, "service request created successfully", requestResponse(request))
}

// ListRequests GET /api/requests.
func (h *RequestsHandler) ListRequests(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	requests, err := h.service.ListRequests(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	items := make([]dto.RequestResponse, 0, len(requests))
	for i := range requests {
		items = append(items, requestResponse(&requests[i]))
	}
	return jsonSuccess(c, http.StatusOK, "retrieved "+strconv.Itoa(len(items))+" service requests", items)
}

// GetRequest GET /api/requests/:id.
func (h *RequestsHandler) GetRequest(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	requestID, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}
	request, err := h.service.GetRequest(c.Context(), principal.User.ID, requestID)
	if err != nil {
		return err
	}
	return jsonSuccess(c, http.StatusOK, "service request retrieved", requestResponse(request))
}

// UpdateRequest PUT /api/requests/:id.
func (h *RequestsHandler) UpdateRequest(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	requestID, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}
	var req dto.UpdateRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	request, err := h.service.UpdateRequestFields(c.Context(), principal.User.ID, requestID, service.RequestUpdateInput{
		ServiceType: req.ServiceType,
		Description: req.Description,
		Priority:    req.Priority,
		Location:    req.Location,
	})
	if err != nil {
		return err
	}
	return jsonSuccess(c, http.StatusOK, "service request updated successfully", requestResponse(request))
}

// DeleteRequest DELETE /api/requests/:id.
func (h *RequestsHandler) DeleteRequest(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	requestID, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}
	if err := h.service.DeleteRequest(c.Context(), principal.User.ID, requestID); err != nil {
		return err
	}
	return jsonSuccess(c, http.StatusOK, "service request deleted successfully", dto.DeleteRequestResponse{DeletedID: requestID})
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id", map[string]any{"id": raw})
	}
	return id, nil
}

func requestResponse(request *domain.ServiceRequest) dto.RequestResponse {
	return dto.RequestResponse{
		ID:          request.ID,
		UserID:      request.UserID,
		ServiceType: request.ServiceType,
		Description: request.Description,
		Priority:    request.Priority,
		Location:    request.Location,
		Status:      request.Status,
		CreatedAt:   request.CreatedAt,
		UpdatedAt:   request.UpdatedAt,
		CompletedAt: request.CompletedAt,
	}
}
