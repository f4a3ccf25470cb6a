package wca

import (
	"context"
	"net/http"
	"testing"
)

func TestSearchDirectIDProbe(t *testing.T) {
	searchCalled := false
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/persons/2009ZEMD01.json":
			w.Write([]byte(`{"wcaId":"2009ZEMD01","name":"Feliks Zemdegs"}`))
		case "/api/v0/search":
			searchCalled = true
			w.Write([]byte(`{"result":[]}`))
		default:
			http.NotFound(w, r)
		}
	}))

	candidates, err := client.Search(context.Background(), "2009zemd01")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(candidates) != 1 || candidates[0].WCAID != "2009ZEMD01" {
		t.Fatalf("candidates = %+v", candidates)
	}
	if searchCalled {
		t.Error("a resolving ID probe must not hit the search API")
	}
}

func TestSearchIDProbeMissFallsThrough(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v0/search":
			w.Write([]byte(`{"result":[{"class":"person","wca_id":"2010ABCD01","name":"Someone Else"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))

	candidates, err := client.Search(context.Background(), "2010ABCD99")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(candidates) != 1 || candidates[0].WCAID != "2010ABCD01" {
		t.Fatalf("candidates = %+v", candidates)
	}
}

func TestSearchFiltersAndRanks(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v0/search" {
			http.NotFound(w, r)
			return
		}
		if q := r.URL.Query().Get("q"); q != "max" {
			t.Errorf("query = %q, want max", q)
		}
		w.Write([]byte(`{"result":[
			{"class":"competition","id":"MaxOpen2023","name":"Max Open 2023"},
			{"class":"person","wca_id":"2015KOLA01","name":"Ilya Maximov"},
			{"class":"person","wca_id":"2012PARK03","name":"Max Park"},
			{"class":"person","wca_id":"2017MAXX01","name":"Zed Adams"},
			{"class":"person","wca_id":"2019ZZZZ01","name":"Max"}
		]}`))
	}))

	candidates, err := client.Search(context.Background(), "max")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(candidates) != 4 {
		t.Fatalf("got %d candidates, want 4 (competition filtered out)", len(candidates))
	}

	// exact name > name prefix > name substring > id substring
	want := []string{"2019ZZZZ01", "2012PARK03", "2015KOLA01", "2017MAXX01"}
	for i, w := range want {
		if candidates[i].WCAID != w {
			t.Errorf("candidates[%d] = %s, want %s", i, candidates[i].WCAID, w)
		}
	}
}

func TestSearchLimit(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":[
			{"class":"person","wca_id":"2001AAAA01","name":"Test One"},
			{"class":"person","wca_id":"2002AAAA01","name":"Test Two"},
			{"class":"person","wca_id":"2003AAAA01","name":"Test Three"},
			{"class":"person","wca_id":"2004AAAA01","name":"Test Four"},
			{"class":"person","wca_id":"2005AAAA01","name":"Test Five"},
			{"class":"person","wca_id":"2006AAAA01","name":"Test Six"},
			{"class":"person","wca_id":"2007AAAA01","name":"Test Seven"},
			{"class":"person","wca_id":"2008AAAA01","name":"Test Eight"},
			{"class":"person","wca_id":"2009AAAA01","name":"Test Nine"},
			{"class":"person","wca_id":"2010AAAA01","name":"Test Ten"},
			{"class":"person","wca_id":"2011AAAA01","name":"Test Eleven"},
			{"class":"person","wca_id":"2012AAAA01","name":"Test Twelve"}
		]}`))
	}))

	candidates, err := client.Search(context.Background(), "test")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(candidates) != searchLimit {
		t.Fatalf("got %d candidates, want %d", len(candidates), searchLimit)
	}
}

func TestSearchShortQuery(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for a short query")
	}))

	candidates, err := client.Search(context.Background(), " x ")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if candidates != nil {
		t.Errorf("candidates = %v, want nil", candidates)
	}
}
