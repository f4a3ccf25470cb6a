package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/roowus/graphisizer/internal/api/respond"
	"github.com/roowus/graphisizer/internal/cache"
	"github.com/roowus/graphisizer/internal/config"
	"github.com/roowus/graphisizer/internal/series"
	"github.com/roowus/graphisizer/internal/stats"
	"github.com/roowus/graphisizer/internal/wca"
)

// seriesResponse is the stateless series payload: normalized points plus
// descriptive statistics.
type seriesResponse struct {
	series.Series
	Stats *stats.Descriptive `json:"stats,omitempty"`
}

// GetPersonSeries returns one competitor's normalized series.
// @Summary Get a competitor's result series
// @Description Fetches the competitor record and all referenced competitions, then returns the chronologically sorted data points for the requested event and result type, with descriptive statistics over the valid points.
// @Tags series
// @Produce json
// @Param wcaID path string true "WCA ID"
// @Param event query string true "Event ID" Enums(333, 222, 444, 555, 666, 777, 333oh, 222bf, 333bf, 444bf, 555bf, 333fm, 333mbf, clock, minx, pyram, skewb, sq1)
// @Param type query string false "Result type (default single)" Enums(single, average, rank, wr, cr, nr, solves, worst)
// @Success 200 {object} seriesResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /persons/{wcaID}/series [get]
func (h *Handler) GetPersonSeries(w http.ResponseWriter, r *http.Request) {
	wcaID := chi.URLParam(r, "wcaID")
	event := r.URL.Query().Get("event")
	resultType := r.URL.Query().Get("type")
	if resultType == "" {
		resultType = "single"
	}

	if !config.KnownEvent(event) {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_EVENT", "event must be a recognized event ID")
		return
	}
	if !config.KnownResultType(resultType) {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_RESULT_TYPE", "type must be a recognized result type")
		return
	}

	spec := series.GraphSpec{WCAID: wcaID, Event: event, ResultType: series.ResultType(resultType)}
	cacheKey := fmt.Sprintf("series:%s", spec.Encode())

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.ETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLSeries, true)
		return
	}

	s, err := h.wca.LoadSeries(r.Context(), spec)
	if err != nil {
		if errors.Is(err, wca.ErrNotFound) {
			respond.WriteError(w, http.StatusNotFound, "NOT_FOUND",
				fmt.Sprintf("competitor %s not found", wcaID))
			return
		}
		respond.WriteErrorDetail(w, http.StatusBadGateway, "UPSTREAM_FAILED",
			"Failed to load series", err.Error())
		return
	}

	resp := seriesResponse{Series: *s}
	if d, ok := stats.Describe(s.ValidValues()); ok {
		resp.Stats = &d
	}

	data, err := json.Marshal(resp)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Failed to encode response")
		return
	}
	etag := h.cache.Set(cacheKey, data, cache.TTLSeries)
	respond.WriteJSON(w, data, etag, cache.TTLSeries, false)
}
