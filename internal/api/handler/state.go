package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/roowus/graphisizer/internal/api/respond"
	"github.com/roowus/graphisizer/internal/graph"
)

// stateResponse carries the shareable encoded dashboard state.
type stateResponse struct {
	State string `json:"state"`
	View  string `json:"view"`
}

// stateRequest is the body for restoring a dashboard state.
type stateRequest struct {
	State string `json:"state"`
}

// viewRequest is the body for switching the view mode.
type viewRequest struct {
	View string `json:"view"`
}

// GetState returns the encoded dashboard state.
// @Summary Get shareable state
// @Description Returns the current graph set and view mode as a query-string encoding (g1=id:event:type&...&view=mode) suitable for sharing and later restore.
// @Tags state
// @Produce json
// @Success 200 {object} stateResponse
// @Router /state [get]
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, stateResponse{
		State: h.manager.State(),
		View:  string(h.manager.View()),
	})
}

// PutState replaces the dashboard from an encoded state.
// @Summary Restore shareable state
// @Description Replaces the active graph set from an encoded state string and refetches every series. Returns the registered graphs, all in the loading state.
// @Tags state
// @Accept json
// @Produce json
// @Param request body stateRequest true "Encoded state"
// @Success 202 {array} graph.Graph
// @Failure 400 {object} respond.ErrorResponse
// @Router /state [put]
func (h *Handler) PutState(w http.ResponseWriter, r *http.Request) {
	var req stateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be JSON")
		return
	}
	if err := h.manager.Restore(req.State); err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_STATE", "Failed to restore state", err.Error())
		return
	}
	respond.WriteJSONObject(w, http.StatusAccepted, h.manager.List())
}

// PutView switches the display view mode.
// @Summary Set view mode
// @Description Switches between raw, unit-change, and percent-change display. Raw is rejected while the active set mixes unit families; percent is rejected when any non-time family is active.
// @Tags state
// @Accept json
// @Produce json
// @Param request body viewRequest true "View mode"
// @Success 200 {object} stateResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Router /view [put]
func (h *Handler) PutView(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be JSON")
		return
	}
	if err := h.manager.SetView(graph.ViewMode(req.View)); err != nil {
		if errors.Is(err, graph.ErrViewUnavailable) {
			respond.WriteErrorDetail(w, http.StatusConflict, "VIEW_UNAVAILABLE",
				"View mode unavailable for the active series", err.Error())
			return
		}
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_VIEW", "Invalid view mode", err.Error())
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, stateResponse{
		State: h.manager.State(),
		View:  string(h.manager.View()),
	})
}
