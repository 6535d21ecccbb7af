package controllers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	h "campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// uuidRegex matches a canonical UUID string (8-4-4-4-12 hex).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

const dateLayout = "2006-01-02"

// maxPosterBytes caps multipart form memory for poster uploads.
const maxPosterBytes = 10 << 20

// EventResponse is an event payload with the derived seat availability.
// swagger:model EventResponse
type EventResponse struct {
	*domain.Event
	SeatsAvailable int `json:"seats_available"`
}

func newEventResponse(e *domain.Event) EventResponse {
	return EventResponse{Event: e, SeatsAvailable: e.SeatsAvailable()}
}

type EventController struct {
	Logger  *slog.Logger
	Catalog domain.CatalogService
}

func NewEventController(logger *slog.Logger, catalog domain.CatalogService) *EventController {
	return &EventController{
		Logger:  logger,
		Catalog: catalog,
	}
}

// ListUpcoming godoc
// @Summary List upcoming events
// @Description Returns events dated today or later, ascending by date, with live seat availability.
// @Tags events
// @Produce json
// @Success 200 {object} helpers.APIResponse "data is an array of events"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	events, err := c.Catalog.ListUpcoming(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "could not list events")
		return
	}
	items := make([]EventResponse, 0, len(events))
	for _, e := range events {
		items = append(items, newEventResponse(e))
	}
	h.WriteJSONSuccess(w, http.StatusOK, items)
}

// Get godoc
// @Summary Get one event
// @Description Returns the event with its live seat availability.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) Get(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	event, err := c.Catalog.Get(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "could not fetch event")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, newEventResponse(event))
}

// Create godoc
// @Summary Create an event
// @Description Creates an event from a multipart form. Required fields: title, short_description, description, date (YYYY-MM-DD), time, venue, max_registrations. Optional: category, registration_deadline (YYYY-MM-DD, defaults to date), poster file.
// @Tags admin
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.AdminIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := r.ParseMultipartForm(maxPosterBytes); err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid multipart form")
		return
	}

	input := domain.EventInput{
		Title:            r.FormValue("title"),
		ShortDescription: r.FormValue("short_description"),
		Description:      r.FormValue("description"),
		Category:         r.FormValue("category"),
		Venue:            r.FormValue("venue"),
		StartTime:        r.FormValue("time"),
		CreatedBy:        adminID,
	}
	if s := r.FormValue("date"); s != "" {
		date, err := time.Parse(dateLayout, s)
		if err != nil {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "date must be YYYY-MM-DD")
			return
		}
		input.Date = date
	}
	if s := r.FormValue("registration_deadline"); s != "" {
		deadline, err := time.Parse(dateLayout, s)
		if err != nil {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "registration_deadline must be YYYY-MM-DD")
			return
		}
		input.RegistrationDeadline = &deadline
	}
	if s := r.FormValue("max_registrations"); s != "" {
		max, err := strconv.Atoi(s)
		if err != nil {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "max_registrations must be an integer")
			return
		}
		input.MaxRegistrations = max
	}

	poster, ok := posterFromForm(w, r)
	if !ok {
		return
	}

	event, err := c.Catalog.Create(r.Context(), input, poster)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "could not create event")
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, newEventResponse(event))
}

// Update godoc
// @Summary Update an event
// @Description Applies a partial update from a multipart form; only submitted fields change. Rejects max_registrations below the current registration count.
// @Tags admin
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events/{eventID} [patch]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	if _, ok := middleware.AdminIDFromContext(r.Context()); !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := r.ParseMultipartForm(maxPosterBytes); err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid multipart form")
		return
	}

	var fields domain.EventUpdate
	setString := func(name string, dest **string) {
		if _, present := r.MultipartForm.Value[name]; present {
			v := r.FormValue(name)
			*dest = &v
		}
	}
	setString("title", &fields.Title)
	setString("short_description", &fields.ShortDescription)
	setString("description", &fields.Description)
	setString("category", &fields.Category)
	setString("venue", &fields.Venue)
	setString("time", &fields.StartTime)
	if s := r.FormValue("date"); s != "" {
		date, err := time.Parse(dateLayout, s)
		if err != nil {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "date must be YYYY-MM-DD")
			return
		}
		fields.Date = &date
	}
	if s := r.FormValue("registration_deadline"); s != "" {
		deadline, err := time.Parse(dateLayout, s)
		if err != nil {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "registration_deadline must be YYYY-MM-DD")
			return
		}
		fields.RegistrationDeadline = &deadline
	}
	if s := r.FormValue("max_registrations"); s != "" {
		max, err := strconv.Atoi(s)
		if err != nil {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "max_registrations must be an integer")
			return
		}
		fields.MaxRegistrations = &max
	}

	poster, ok := posterFromForm(w, r)
	if !ok {
		return
	}

	event, err := c.Catalog.Update(r.Context(), eventID, fields, poster)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
		case errors.Is(err, domain.ErrValidation):
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "could not update event")
		}
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, newEventResponse(event))
}

// Delete godoc
// @Summary Delete an event
// @Description Removes the event and all of its registrations.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is null"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events/{eventID} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	if _, ok := middleware.AdminIDFromContext(r.Context()); !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Catalog.Delete(r.Context(), eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "could not delete event")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, nil)
}

func eventIDFromPath(w http.ResponseWriter, r *http.Request) (string, bool) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing eventID")
		return "", false
	}
	if !uuidRegex.MatchString(eventID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid eventID")
		return "", false
	}
	return eventID, true
}

// posterFromForm reads the optional "poster" file from a parsed multipart
// form. A missing file is not an error; a broken one writes a 400 and
// returns ok=false.
func posterFromForm(w http.ResponseWriter, r *http.Request) (*domain.PosterUpload, bool) {
	file, header, err := r.FormFile("poster")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, true
		}
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid poster upload")
		return nil, false
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxPosterBytes))
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "could not read poster upload")
		return nil, false
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	name := strings.TrimSpace(header.Filename)
	return &domain.PosterUpload{Filename: name, ContentType: contentType, Data: data}, true
}
