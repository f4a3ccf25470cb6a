package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/roowus/graphisizer/internal/api/respond"
	"github.com/roowus/graphisizer/internal/cache"
	"github.com/roowus/graphisizer/internal/wca"
)

// Search returns ranked person candidates for autocomplete.
// @Summary Search competitors
// @Description Returns up to 10 person candidates ranked by relevance: exact match, prefix match, name substring, ID substring.
// @Tags search
// @Produce json
// @Param q query string true "Free-text query (name or WCA ID), minimum 2 characters"
// @Success 200 {array} wca.Candidate
// @Failure 400 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if len(query) < 2 {
		respond.WriteError(w, http.StatusBadRequest, "QUERY_TOO_SHORT", "q must be at least 2 characters")
		return
	}

	cacheKey := fmt.Sprintf("search:%s", strings.ToLower(query))
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.ETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLSearch, true)
		return
	}

	candidates, err := h.wca.Search(r.Context(), query)
	if err != nil {
		respond.WriteError(w, http.StatusBadGateway, "SEARCH_FAILED", "Upstream search failed")
		return
	}
	if candidates == nil {
		candidates = []wca.Candidate{}
	}

	data, err := json.Marshal(candidates)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Failed to encode response")
		return
	}
	etag := h.cache.Set(cacheKey, data, cache.TTLSearch)
	respond.WriteJSON(w, data, etag, cache.TTLSearch, false)
}
