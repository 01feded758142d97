package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(NewServer(nil).Router())
	t.Cleanup(ts.Close)
	return ts
}

func generateRun(t *testing.T, ts *httptest.Server, body string) Run {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/v1/generate", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST generate: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		data, _ := io.ReadAll(resp.Body)
		t.Fatalf("POST generate status = %d, body %s", resp.StatusCode, data)
	}
	var run Run
	if err := json.NewDecoder(resp.Body).Decode(&run); err != nil {
		t.Fatalf("decode run: %v", err)
	}
	return run
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz status = %d", resp.StatusCode)
	}
}

func TestGenerateAndFetchRun(t *testing.T) {
	ts := newTestServer(t)

	run := generateRun(t, ts, `{"turns":6,"straights":4,"allow_intersections":true,"max_tracks":5,"max_time_seconds":5}`)
	if run.ID == "" {
		t.Fatal("run ID is empty")
	}
	if len(run.Layouts) == 0 {
		t.Fatal("expected layouts for 6 turns, 4 straights")
	}
	for _, l := range run.Layouts {
		if strings.Trim(l, "RLS") != "" {
			t.Errorf("layout %q contains invalid pieces", l)
		}
	}

	resp, err := http.Get(ts.URL + "/api/v1/runs/" + run.ID)
	if err != nil {
		t.Fatalf("GET run: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET run status = %d", resp.StatusCode)
	}
	var fetched Run
	if err := json.NewDecoder(resp.Body).Decode(&fetched); err != nil {
		t.Fatalf("decode fetched run: %v", err)
	}
	if fetched.ID != run.ID || len(fetched.Layouts) != len(run.Layouts) {
		t.Errorf("fetched run differs: %+v vs %+v", fetched, run)
	}
}

func TestGetRun_NotFound(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/v1/runs/no-such-run")
	if err != nil {
		t.Fatalf("GET run: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	var e errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if e.Code != "RUN_NOT_FOUND" {
		t.Errorf("error code = %q", e.Code)
	}
}

func TestGenerate_InvalidBody(t *testing.T) {
	ts := newTestServer(t)

	for _, body := range []string{
		`not json`,
		`{"turns":-1,"straights":4}`,
		`{"turns":6,"straights":4,"start":"XYZ"}`,
	} {
		resp, err := http.Post(ts.URL+"/api/v1/generate", "application/json", bytes.NewReader([]byte(body)))
		if err != nil {
			t.Fatalf("POST generate: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, resp.StatusCode)
		}
	}
}

func TestRunSVG(t *testing.T) {
	ts := newTestServer(t)
	run := generateRun(t, ts, `{"turns":6,"straights":4,"allow_intersections":true,"max_tracks":3,"max_time_seconds":5}`)

	resp, err := http.Get(ts.URL + "/api/v1/runs/" + run.ID + "/svg?layout=0")
	if err != nil {
		t.Fatalf("GET svg: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("svg status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q", ct)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("response is not an SVG")
	}

	resp, err = http.Get(ts.URL + "/api/v1/runs/" + run.ID + "/svg?layout=99")
	if err != nil {
		t.Fatalf("GET svg out of range: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("out of range status = %d, want 400", resp.StatusCode)
	}
}
