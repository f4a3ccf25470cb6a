package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/roowus/graphisizer/internal/api/respond"
	"github.com/roowus/graphisizer/internal/format"
	"github.com/roowus/graphisizer/internal/graph"
	"github.com/roowus/graphisizer/internal/series"
	"github.com/roowus/graphisizer/internal/stats"
)

// graphRequest is the body for adding or editing a graph. Either a compact
// spec string or the three discrete fields may be supplied.
type graphRequest struct {
	Spec       string `json:"spec,omitempty"`
	WCAID      string `json:"wca_id,omitempty"`
	Event      string `json:"event,omitempty"`
	ResultType string `json:"result_type,omitempty"`
}

func (req graphRequest) toSpec() (series.GraphSpec, error) {
	if req.Spec != "" {
		return series.ParseSpec(req.Spec)
	}
	return series.ParseSpec(req.WCAID + ":" + req.Event + ":" + req.ResultType)
}

// pointDetail is a data point with its position relative to the series.
type pointDetail struct {
	series.DataPoint
	Display  string          `json:"display"`
	Relative *stats.Relative `json:"relative,omitempty"`
}

// graphDetail is one graph with per-point relative statistics.
type graphDetail struct {
	graph.Graph
	Points      []pointDetail      `json:"points"`
	Descriptive *stats.Descriptive `json:"descriptive,omitempty"`
}

// AddGraph registers a new graph and starts loading it.
// @Summary Add a graph
// @Description Registers a competitor/event/result-type selection and begins fetching its series in the background. The response snapshot is in the loading state; poll GET /graphs/{graphID}.
// @Tags graphs
// @Accept json
// @Produce json
// @Param request body graphRequest true "Graph selection"
// @Success 202 {object} graph.Graph
// @Failure 400 {object} respond.ErrorResponse
// @Router /graphs [post]
func (h *Handler) AddGraph(w http.ResponseWriter, r *http.Request) {
	var req graphRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be JSON")
		return
	}
	spec, err := req.toSpec()
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_SPEC", "Invalid graph selection", err.Error())
		return
	}

	g, err := h.manager.Add(spec)
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_SPEC", "Invalid graph selection", err.Error())
		return
	}
	respond.WriteJSONObject(w, http.StatusAccepted, g)
}

// ListGraphs returns all graphs with their load state.
// @Summary List graphs
// @Description Returns all active graphs in insertion order, with status, color, and points for ready graphs.
// @Tags graphs
// @Produce json
// @Success 200 {array} graph.Graph
// @Router /graphs [get]
func (h *Handler) ListGraphs(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, h.manager.List())
}

// GetGraph returns one graph with per-point relative statistics.
// @Summary Get a graph
// @Description Returns one graph. For ready graphs each point carries its formatted display value and relative statistics (deviation from mean/median, percentile, z-score).
// @Tags graphs
// @Produce json
// @Param graphID path int true "Graph ID"
// @Success 200 {object} graphDetail
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /graphs/{graphID} [get]
func (h *Handler) GetGraph(w http.ResponseWriter, r *http.Request) {
	id, ok := graphID(w, r)
	if !ok {
		return
	}
	g, ok := h.manager.Get(id)
	if !ok {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Graph not found")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, detail(g))
}

// EditGraph replaces a graph's selection and refetches.
// @Summary Edit a graph
// @Description Replaces the selection of an existing graph and refetches its series. The graph keeps its ID and color.
// @Tags graphs
// @Accept json
// @Produce json
// @Param graphID path int true "Graph ID"
// @Param request body graphRequest true "New selection"
// @Success 202 {object} graph.Graph
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /graphs/{graphID} [put]
func (h *Handler) EditGraph(w http.ResponseWriter, r *http.Request) {
	id, ok := graphID(w, r)
	if !ok {
		return
	}
	var req graphRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be JSON")
		return
	}
	spec, err := req.toSpec()
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_SPEC", "Invalid graph selection", err.Error())
		return
	}

	g, err := h.manager.Edit(id, spec)
	if err != nil {
		if _, exists := h.manager.Get(id); !exists {
			respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Graph not found")
			return
		}
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_SPEC", "Invalid graph selection", err.Error())
		return
	}
	respond.WriteJSONObject(w, http.StatusAccepted, g)
}

// RemoveGraph deletes a graph.
// @Summary Remove a graph
// @Description Removes a graph from the active set. Its color returns to the pool.
// @Tags graphs
// @Produce json
// @Param graphID path int true "Graph ID"
// @Success 204 "No Content"
// @Failure 404 {object} respond.ErrorResponse
// @Router /graphs/{graphID} [delete]
func (h *Handler) RemoveGraph(w http.ResponseWriter, r *http.Request) {
	id, ok := graphID(w, r)
	if !ok {
		return
	}
	if !h.manager.Remove(id) {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Graph not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetGraphStats returns the aggregate statistics for the active graph set.
// @Summary Graph set statistics
// @Description Returns per-series descriptive statistics and improvement rates, the unit-compatibility report, head-to-head standings, and pairwise correlations over all ready graphs.
// @Tags graphs
// @Produce json
// @Success 200 {object} graph.StatsBundle
// @Router /graphs/stats [get]
func (h *Handler) GetGraphStats(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, h.manager.Stats())
}

// GetGraphTable returns the combined results table.
// @Summary Combined results table
// @Description Returns the globally date-sorted rows for all ready graphs with change-from-previous columns, transformed for the requested view mode (default: the manager's current mode). Modes the compatibility checker rules out for the active set are refused.
// @Tags graphs
// @Produce json
// @Param view query string false "View mode" Enums(raw, unit, percent)
// @Success 200 {array} graph.Row
// @Failure 400 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Router /graphs/table [get]
func (h *Handler) GetGraphTable(w http.ResponseWriter, r *http.Request) {
	view := h.manager.View()
	if q := r.URL.Query().Get("view"); q != "" {
		view = graph.ViewMode(q)
	}
	if err := h.manager.CheckView(view); err != nil {
		if errors.Is(err, graph.ErrViewUnavailable) {
			respond.WriteErrorDetail(w, http.StatusConflict, "VIEW_UNAVAILABLE",
				"View mode unavailable for the active series", err.Error())
			return
		}
		respond.WriteError(w, http.StatusBadRequest, "INVALID_VIEW", "view must be raw, unit, or percent")
		return
	}
	rows := h.manager.Table(view)
	if rows == nil {
		rows = []graph.Row{}
	}
	respond.WriteJSONObject(w, http.StatusOK, rows)
}

// graphID parses the {graphID} path parameter, writing a 400 on failure.
func graphID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "graphID"))
	if err != nil || id < 1 {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", "Graph ID must be a positive integer")
		return 0, false
	}
	return id, true
}

// detail enriches a graph snapshot with formatted and relative per-point
// statistics. Loading and errored graphs come back with empty points.
func detail(g graph.Graph) graphDetail {
	d := graphDetail{Graph: g}
	s := g.Series()
	valid := s.ValidValues()

	var desc stats.Descriptive
	haveDesc := false
	if dd, ok := stats.Describe(valid); ok {
		desc = dd
		haveDesc = true
		d.Descriptive = &dd
	}

	d.Points = make([]pointDetail, 0, len(g.Points))
	for _, p := range g.Points {
		pd := pointDetail{DataPoint: p}
		if p.IsDNF {
			pd.Display = "DNF"
		} else {
			pd.Display = format.Value(p.Value, g.Spec.Event, g.Spec.ResultType)
			if haveDesc {
				if rel, ok := stats.Relativize(p.Value, desc, valid); ok {
					pd.Relative = &rel
				}
			}
		}
		d.Points = append(d.Points, pd)
	}
	return d
}
