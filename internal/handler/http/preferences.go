package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/utafrali/solecrafted/internal/service"
	"github.com/utafrali/solecrafted/pkg/httputil"
	"github.com/utafrali/solecrafted/pkg/validator"
)

// PreferencesHandler handles HTTP requests for UI preference endpoints.
type PreferencesHandler struct {
	service *service.PreferencesService
	logger  *slog.Logger
}

// NewPreferencesHandler creates a new preferences HTTP handler.
func NewPreferencesHandler(svc *service.PreferencesService, logger *slog.Logger) *PreferencesHandler {
	return &PreferencesHandler{
		service: svc,
		logger:  logger,
	}
}

// SetThemeRequest is the JSON request body for changing the UI theme.
type SetThemeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark"`
}

// GetPreferences handles GET /api/v1/preferences
func (h *PreferencesHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	prefs, err := h.service.GetPreferences(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: prefs})
}

// SetTheme handles PUT /api/v1/preferences/theme
func (h *PreferencesHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var req SetThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	prefs, err := h.service.SetTheme(r.Context(), userID, req.Theme)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: prefs})
}
