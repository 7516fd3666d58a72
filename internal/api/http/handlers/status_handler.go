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

// StatusHandler manages status-tracking endpoints.
type StatusHandler struct {
	service *service.RequestService
}

// NewStatusHandler constructs handler.
func NewStatusHandler(requestService *service.RequestService) *StatusHandler {
	return &StatusHandler{service: requestService}
}

// TrackStatus POST /api/status/track.
func (h *StatusHandler) TrackStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.TrackStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.RequestID == 0 || req.Status == "" {
		return apperrors.NewValidationError("requestId and status required", nil)
	}

	entry, err := h.service.RecordStatusTransition(c.Context(), principal.User.ID, req.RequestID, service.StatusTransitionInput{
		Status:     req.Status,
		AssignedTo: req.AssignedTo,
		Notes:      req.Notes,
	})
	if err != nil {
		return err
	}
	return jsonSuccess(c, http.StatusCreated, "status update recorded successfully", dto.TrackStatusResponse{
		TrackingID: entry.ID,
		RequestID:  entry.RequestID,
		Status:     entry.Status,
		Timestamp:  entry.CreatedAt,
	})
}

// StatusHistory GET /api/status/history/:requestId.
func (h *StatusHandler) StatusHistory(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	requestID, err := parseID(c.Params("requestId"))
	if err != nil {
		return err
	}

	history, err := h.service.GetStatusHistory(c.Context(), principal.User.ID, requestID)
	if err != nil {
		return err
	}
	entries := make([]dto.StatusEntryResponse, 0, len(history))
	for i := range history {
		entries = append(entries, statusEntryResponse(&history[i]))
	}
	return jsonSuccess(c, http.StatusOK, "retrieved "+strconv.Itoa(len(entries))+" status updates", entries)
}

// CurrentStatus GET /api/status/current/:requestId.
func (h *StatusHandler) CurrentStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	requestID, err := parseID(c.Params("requestId"))
	if err != nil {
		return err
	}

	latest, err := h.service.GetLatestStatus(c.Context(), principal.User.ID, requestID)
	if err != nil {
		return err
	}
	resp := dto.CurrentStatusResponse{
		RequestID:     latest.RequestID,
		CurrentStatus: latest.CurrentStatus,
		LastUpdated:   latest.LastUpdated,
	}
	if latest.LatestEntry != nil {
		entry := statusEntryResponse(latest.LatestEntry)
		resp.LatestUpdate = &entry
	}
	return jsonSuccess(c, http.StatusOK, "current status retrieved", resp)
}

func statusEntryResponse(entry *domain.StatusLedgerEntry) dto.StatusEntryResponse {
	return dto.StatusEntryResponse{
		ID:         entry.ID,
		Status:     entry.Status,
		AssignedTo: entry.AssignedTo,
		Notes:      entry.Notes,
		Timestamp:  entry.CreatedAt,
	}
}
