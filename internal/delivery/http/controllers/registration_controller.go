package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	h "campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// RegisterRequest is the request body for POST /events/{eventID}/registrations.
type RegisterRequest struct {
	StudentName string `json:"student_name"`
	RollNumber  string `json:"register_number"`
	Department  string `json:"department"`
	Email       string `json:"email"`
}

// Validate implements helpers.Validator.
func (r RegisterRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.StudentName) == "" {
		errs = append(errs, "student_name is required")
	}
	if strings.TrimSpace(r.RollNumber) == "" {
		errs = append(errs, "register_number is required")
	}
	if strings.TrimSpace(r.Department) == "" {
		errs = append(errs, "department is required")
	}
	email := strings.TrimSpace(r.Email)
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	return errs
}

type RegistrationController struct {
	Logger    *slog.Logger
	Admission domain.AdmissionService
	Roster    domain.RosterService
}

func NewRegistrationController(logger *slog.Logger, admission domain.AdmissionService, roster domain.RosterService) *RegistrationController {
	return &RegistrationController{
		Logger:    logger,
		Admission: admission,
		Roster:    roster,
	}
}

// Register godoc
// @Summary Register for an event
// @Description Submits a registration. Rejections are specific: 404 event not found, 409 already registered or registration full, 410 registration closed.
// @Tags events
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param body body RegisterRequest true "Registrant details"
// @Success 201 {object} helpers.APIResponse "data contains the registration"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 410 {object} helpers.APIResponse "error.code: conflict (registration closed)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/registrations [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	var req RegisterRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	reg, err := c.Admission.Register(r.Context(), eventID, domain.RegistrationInput{
		StudentName: req.StudentName,
		RollNumber:  req.RollNumber,
		Department:  req.Department,
		Email:       req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
		case errors.Is(err, domain.ErrDuplicateRegistration):
			h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, "you are already registered for this event")
		case errors.Is(err, domain.ErrEventFull):
			h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, "registration for this event is full")
		case errors.Is(err, domain.ErrRegistrationClosed):
			h.WriteJSONError(w, http.StatusGone, h.ErrCodeConflict, "registration for this event has closed")
		case errors.Is(err, domain.ErrValidation):
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "registration failed, please retry")
		}
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, reg)
}

// ListRoster godoc
// @Summary List registrations for an event
// @Description Returns the event's registrations, oldest first.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is an array of registrations"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events/{eventID}/registrations [get]
func (c *RegistrationController) ListRoster(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	if _, ok := middleware.AdminIDFromContext(r.Context()); !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	regs, err := c.Roster.List(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "could not list registrations")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, regs)
}

// ExportCSV godoc
// @Summary Export registrations as CSV
// @Description Downloads the event's registrations as a CSV file with standard quoting.
// @Tags admin
// @Produce text/csv
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {string} string "CSV file"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events/{eventID}/registrations/export [get]
func (c *RegistrationController) ExportCSV(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	if _, ok := middleware.AdminIDFromContext(r.Context()); !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	data, err := c.Roster.ExportCSV(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "could not export registrations")
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=registrations-%s.csv", eventID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
