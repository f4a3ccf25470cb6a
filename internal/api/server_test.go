package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/roowus/graphisizer/internal/cache"
	"github.com/roowus/graphisizer/internal/config"
	"github.com/roowus/graphisizer/internal/graph"
	"github.com/roowus/graphisizer/internal/wca"
)

// upstream is a fake WCA data source with one competitor.
func upstream(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/persons/2009TEST01.json":
			fmt.Fprint(w, `{
				"wcaId": "2009TEST01",
				"name": "Test Competitor",
				"competitionIds": ["First2022", "Second2023"],
				"results": {
					"First2022": {"333": [{"round": "Final", "position": 2, "best": 1250, "average": 1390}]},
					"Second2023": {"333": [{"round": "Final", "position": 1, "best": 1100, "average": 1280}]}
				}
			}`)
		case "/api/persons/2009MOVE01.json":
			fmt.Fprint(w, `{
				"wcaId": "2009MOVE01",
				"name": "Move Counter",
				"competitionIds": ["First2022", "Second2023"],
				"results": {
					"First2022": {"333fm": [{"round": "Final", "position": 1, "best": 30}]},
					"Second2023": {"333fm": [{"round": "Final", "position": 1, "best": 28}]}
				}
			}`)
		case "/api/competitions/First2022.json":
			fmt.Fprint(w, `{"id":"First2022","name":"First 2022","date":{"from":"2022-06-11"}}`)
		case "/api/competitions/Second2023.json":
			fmt.Fprint(w, `{"id":"Second2023","name":"Second 2023","date":{"from":"2023-03-04"}}`)
		case "/api/v0/search":
			fmt.Fprint(w, `{"result":[{"class":"person","wca_id":"2009TEST01","name":"Test Competitor"}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testServer(t *testing.T) (*httptest.Server, *graph.Manager) {
	t.Helper()
	up := upstream(t)

	cfg := &config.Config{
		CORSAllowOrigins:     []string{"*"},
		RateLimitEnabled:     false,
		WCABaseURL:           up.URL,
		WCASearchURL:         up.URL + "/api/v0/search",
		WCARequestsPerMinute: 60000,
		FetchWorkers:         4,
		FetchTimeout:         5 * time.Second,
		CacheEnabled:         true,
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	client := wca.NewClient(cfg, logger)
	manager := graph.NewManager(client, logger)
	router := NewRouter(client, manager, cache.New(cfg.CacheEnabled), cfg)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, manager
}

func getJSON(t *testing.T, url string, wantStatus int, out interface{}) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s: status %d, want %d", url, resp.StatusCode, wantStatus)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := testServer(t)

	var health map[string]interface{}
	getJSON(t, srv.URL+"/health", http.StatusOK, &health)
	if health["status"] != "healthy" {
		t.Errorf("health = %v", health)
	}

	var cs cache.Stats
	getJSON(t, srv.URL+"/health/cache", http.StatusOK, &cs)
	if !cs.Enabled {
		t.Error("cache reported disabled")
	}
}

func TestSearchEndpoint(t *testing.T) {
	srv, _ := testServer(t)

	var candidates []wca.Candidate
	resp := getJSON(t, srv.URL+"/api/v1/search?q=test", http.StatusOK, &candidates)
	if len(candidates) != 1 || candidates[0].WCAID != "2009TEST01" {
		t.Fatalf("candidates = %+v", candidates)
	}
	if resp.Header.Get("X-Cache") != "MISS" {
		t.Errorf("first hit X-Cache = %q, want MISS", resp.Header.Get("X-Cache"))
	}
	etag := resp.Header.Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}

	resp2 := getJSON(t, srv.URL+"/api/v1/search?q=test", http.StatusOK, nil)
	if resp2.Header.Get("X-Cache") != "HIT" {
		t.Errorf("second hit X-Cache = %q, want HIT", resp2.Header.Get("X-Cache"))
	}

	// Conditional request gets a 304.
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/search?q=test", nil)
	req.Header.Set("If-None-Match", etag)
	resp3, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("conditional GET: %v", err)
	}
	resp3.Body.Close()
	if resp3.StatusCode != http.StatusNotModified {
		t.Errorf("conditional GET status = %d, want 304", resp3.StatusCode)
	}

	getJSON(t, srv.URL+"/api/v1/search?q=x", http.StatusBadRequest, nil)
}

func TestPersonSeriesEndpoint(t *testing.T) {
	srv, _ := testServer(t)

	var got struct {
		WCAID  string `json:"wca_id"`
		Points []struct {
			Value float64 `json:"value"`
		} `json:"points"`
		Stats *struct {
			Count int     `json:"count"`
			Mean  float64 `json:"mean"`
		} `json:"stats"`
	}
	getJSON(t, srv.URL+"/api/v1/persons/2009TEST01/series?event=333&type=single", http.StatusOK, &got)
	if len(got.Points) != 2 {
		t.Fatalf("got %d points, want 2", len(got.Points))
	}
	if got.Stats == nil || got.Stats.Count != 2 || got.Stats.Mean != 1175 {
		t.Errorf("stats = %+v", got.Stats)
	}

	getJSON(t, srv.URL+"/api/v1/persons/2009TEST01/series?event=999", http.StatusBadRequest, nil)
	getJSON(t, srv.URL+"/api/v1/persons/2009TEST01/series?event=333&type=bogus", http.StatusBadRequest, nil)
	getJSON(t, srv.URL+"/api/v1/persons/9999NONE99/series?event=333", http.StatusNotFound, nil)
}

func TestGraphLifecycle(t *testing.T) {
	srv, manager := testServer(t)

	body := bytes.NewBufferString(`{"spec":"2009TEST01:333:single"}`)
	resp, err := http.Post(srv.URL+"/api/v1/graphs", "application/json", body)
	if err != nil {
		t.Fatalf("POST /graphs: %v", err)
	}
	var created struct {
		ID     int    `json:"id"`
		Status string `json:"status"`
		Color  string `json:"color"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("POST status = %d, want 202", resp.StatusCode)
	}
	if created.Status != "loading" || created.Color == "" {
		t.Fatalf("created = %+v", created)
	}

	manager.Wait()

	var detail struct {
		Status string `json:"status"`
		Points []struct {
			Display  string `json:"display"`
			Relative *struct {
				Percentile float64 `json:"percentile"`
			} `json:"relative"`
		} `json:"points"`
	}
	getJSON(t, fmt.Sprintf("%s/api/v1/graphs/%d", srv.URL, created.ID), http.StatusOK, &detail)
	if detail.Status != "ready" {
		t.Fatalf("detail = %+v", detail)
	}
	if len(detail.Points) != 2 {
		t.Fatalf("got %d points, want 2", len(detail.Points))
	}
	if detail.Points[0].Display != "12.50s" {
		t.Errorf("points[0].Display = %q, want 12.50s", detail.Points[0].Display)
	}
	if detail.Points[0].Relative == nil {
		t.Fatal("missing relative stats")
	}
	// One of two values is worse than 1250: the 1250 itself is not.
	if detail.Points[1].Relative.Percentile != 50 {
		t.Errorf("points[1] percentile = %v, want 50", detail.Points[1].Relative.Percentile)
	}

	var rows []struct {
		Display string   `json:"display"`
		Change  *float64 `json:"change"`
	}
	getJSON(t, srv.URL+"/api/v1/graphs/table", http.StatusOK, &rows)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[1].Change == nil || *rows[1].Change != -150 {
		t.Errorf("rows[1].Change = %v, want -150", rows[1].Change)
	}
	getJSON(t, srv.URL+"/api/v1/graphs/table?view=sideways", http.StatusBadRequest, nil)

	var bundle struct {
		Series []struct {
			Descriptive *struct {
				Count int `json:"count"`
			} `json:"descriptive"`
		} `json:"series"`
	}
	getJSON(t, srv.URL+"/api/v1/graphs/stats", http.StatusOK, &bundle)
	if len(bundle.Series) != 1 || bundle.Series[0].Descriptive == nil {
		t.Fatalf("bundle = %+v", bundle)
	}

	// State round-trip through the API.
	var st struct {
		State string `json:"state"`
		View  string `json:"view"`
	}
	getJSON(t, srv.URL+"/api/v1/state", http.StatusOK, &st)
	if st.State == "" || st.View != "raw" {
		t.Fatalf("state = %+v", st)
	}

	req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/v1/graphs/%d", srv.URL, created.ID), nil)
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want 204", delResp.StatusCode)
	}

	// Restore the saved state: the graph set comes back.
	stBody, _ := json.Marshal(map[string]string{"state": st.State})
	putReq, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/v1/state", bytes.NewReader(stBody))
	putReq.Header.Set("Content-Type", "application/json")
	putResp, err := http.DefaultClient.Do(putReq)
	if err != nil {
		t.Fatalf("PUT /state: %v", err)
	}
	putResp.Body.Close()
	if putResp.StatusCode != http.StatusAccepted {
		t.Fatalf("PUT /state status = %d, want 202", putResp.StatusCode)
	}
	manager.Wait()
	if len(manager.List()) != 1 {
		t.Fatalf("restored %d graphs, want 1", len(manager.List()))
	}
}

func TestPutView(t *testing.T) {
	srv, manager := testServer(t)

	body := bytes.NewBufferString(`{"spec":"2009TEST01:333:single"}`)
	resp, err := http.Post(srv.URL+"/api/v1/graphs", "application/json", body)
	if err != nil {
		t.Fatalf("POST /graphs: %v", err)
	}
	resp.Body.Close()
	manager.Wait()

	put := func(view string) int {
		b, _ := json.Marshal(map[string]string{"view": view})
		req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/v1/view", bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
		r, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("PUT /view: %v", err)
		}
		r.Body.Close()
		return r.StatusCode
	}

	if code := put("percent"); code != http.StatusOK {
		t.Errorf("PUT view=percent status = %d, want 200", code)
	}
	if manager.View() != graph.ViewPercent {
		t.Errorf("view = %q, want percent", manager.View())
	}
	if code := put("sideways"); code != http.StatusBadRequest {
		t.Errorf("PUT view=sideways status = %d, want 400", code)
	}
}

func TestTableRespectsViewRules(t *testing.T) {
	srv, manager := testServer(t)

	for _, spec := range []string{"2009TEST01:333:single", "2009MOVE01:333fm:single"} {
		body, _ := json.Marshal(map[string]string{"spec": spec})
		resp, err := http.Post(srv.URL+"/api/v1/graphs", "application/json", bytes.NewReader(body))
		if err != nil {
			t.Fatalf("POST /graphs: %v", err)
		}
		resp.Body.Close()
	}
	manager.Wait()

	// Mixed unit families: absolute values are meaningless, so the raw view
	// is refused even via the query override.
	getJSON(t, srv.URL+"/api/v1/graphs/table?view=raw", http.StatusConflict, nil)
	// A moves series blocks percent change.
	getJSON(t, srv.URL+"/api/v1/graphs/table?view=percent", http.StatusConflict, nil)
	// The stored default (raw) is re-checked too, not just overrides.
	getJSON(t, srv.URL+"/api/v1/graphs/table", http.StatusConflict, nil)

	var rows []struct {
		Event string   `json:"event"`
		Plot  *float64 `json:"plot"`
	}
	getJSON(t, srv.URL+"/api/v1/graphs/table?view=unit", http.StatusOK, &rows)
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
}

func TestAddGraphValidation(t *testing.T) {
	srv, _ := testServer(t)

	for _, body := range []string{
		`not json`,
		`{"spec":"missing-colons"}`,
		`{"wca_id":"2009TEST01","event":"999","result_type":"single"}`,
	} {
		resp, err := http.Post(srv.URL+"/api/v1/graphs", "application/json", bytes.NewBufferString(body))
		if err != nil {
			t.Fatalf("POST: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("POST %q status = %d, want 400", body, resp.StatusCode)
		}
	}
}
