package daemon_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reelsmith/internal/api"
	"reelsmith/internal/config"
	"reelsmith/internal/daemon"
	"reelsmith/internal/pipeline"
	"reelsmith/internal/testsupport"
)

type testDaemon struct {
	daemon  *daemon.Daemon
	cfg     *config.Config
	baseURL string
}

func startDaemon(t *testing.T) *testDaemon {
	t.Helper()

	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	store := testsupport.MustOpenStore(t, cfg)
	orchestrator := pipeline.NewOrchestrator(cfg, store, &testsupport.FakeTranscoder{}, nil)
	manager := pipeline.NewManager(orchestrator, nil)

	d, err := daemon.New(cfg, store, manager, nil)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("daemon.Start: %v", err)
	}
	t.Cleanup(d.Stop)

	return &testDaemon{
		daemon:  d,
		cfg:     cfg,
		baseURL: "http://" + d.Addr(),
	}
}

func imageServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("jpeg"))
	}))
	t.Cleanup(server.Close)
	return server
}

func renderPayload(imageURL string) []byte {
	body := map[string]any{
		"scenes": []map[string]any{
			{"duration": 2, "elements": []map[string]any{{"src": imageURL}}},
		},
		"elements": []map[string]any{
			{"type": "caption", "text": "from the daemon test"},
		},
	}
	raw, _ := json.Marshal(body)
	return raw
}

func getJSON(t *testing.T, url string, target any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestRenderLifecycle(t *testing.T) {
	td := startDaemon(t)
	images := imageServer(t)

	resp, err := http.Post(td.baseURL+"/render", "application/json",
		bytes.NewReader(renderPayload(images.URL+"/img.jpg")))
	if err != nil {
		t.Fatalf("POST /render: %v", err)
	}
	var submitted api.SubmitResponse
	if err := json.NewDecoder(resp.Body).Decode(&submitted); err != nil {
		t.Fatalf("decode submit response: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("submit status = %d, want 200", resp.StatusCode)
	}
	if submitted.JobID == "" {
		t.Fatal("submit response has no job id")
	}
	if submitted.Status != "processing" {
		t.Errorf("submit status field = %q, want processing", submitted.Status)
	}
	wantURL := "/result/" + submitted.JobID + ".mp4"
	if submitted.VideoURL != wantURL {
		t.Errorf("video url = %q, want %q", submitted.VideoURL, wantURL)
	}

	var snapshot api.StatusSnapshot
	waitForCondition(t, func() bool {
		code := getJSON(t, td.baseURL+"/status/"+submitted.JobID, &snapshot)
		if code != http.StatusOK {
			t.Fatalf("status code = %d, want 200", code)
		}
		return snapshot.Status == "done" || snapshot.Status == "failed"
	})
	if snapshot.Status != "done" {
		t.Fatalf("terminal status = %q (error %q), want done", snapshot.Status, snapshot.Error)
	}
	if snapshot.Progress != 100 {
		t.Errorf("progress = %d, want 100", snapshot.Progress)
	}
	if snapshot.VideoURL != wantURL {
		t.Errorf("snapshot video url = %q, want %q", snapshot.VideoURL, wantURL)
	}

	result, err := http.Get(td.baseURL + submitted.VideoURL)
	if err != nil {
		t.Fatalf("GET result: %v", err)
	}
	defer result.Body.Close()
	if result.StatusCode != http.StatusOK {
		t.Fatalf("result status = %d, want 200", result.StatusCode)
	}
	body, err := io.ReadAll(result.Body)
	if err != nil {
		t.Fatalf("read result body: %v", err)
	}
	if string(body) != "final" {
		t.Errorf("result body = %q, want %q", body, "final")
	}

	var listing api.JobListResponse
	if code := getJSON(t, td.baseURL+"/api/jobs", &listing); code != http.StatusOK {
		t.Fatalf("jobs status = %d, want 200", code)
	}
	if len(listing.Jobs) != 1 {
		t.Fatalf("jobs listed = %d, want 1", len(listing.Jobs))
	}
	if listing.Jobs[0].JobID != submitted.JobID {
		t.Errorf("listed job id = %q, want %q", listing.Jobs[0].JobID, submitted.JobID)
	}

	var health api.HealthResponse
	if code := getJSON(t, td.baseURL+"/api/health", &health); code != http.StatusOK {
		t.Fatalf("health status = %d, want 200", code)
	}
	if health.Status != "ok" {
		t.Errorf("health = %q, want ok", health.Status)
	}
	if health.JobCounts["done"] != 1 {
		t.Errorf("done count = %d, want 1", health.JobCounts["done"])
	}
}

func TestStatusUnknownJob(t *testing.T) {
	td := startDaemon(t)

	var snapshot api.StatusSnapshot
	code := getJSON(t, td.baseURL+"/status/no-such-job", &snapshot)
	if code != http.StatusNotFound {
		t.Fatalf("status code = %d, want 404", code)
	}
	if snapshot.Status != "not_found" {
		t.Errorf("status field = %q, want not_found", snapshot.Status)
	}
	if snapshot.JobID != "no-such-job" {
		t.Errorf("job id = %q, want echoed id", snapshot.JobID)
	}
}

func TestRenderRejectsMalformedPayload(t *testing.T) {
	td := startDaemon(t)

	resp, err := http.Post(td.baseURL+"/render", "application/json",
		bytes.NewReader([]byte("{not json")))
	if err != nil {
		t.Fatalf("POST /render: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestResultNotReady(t *testing.T) {
	td := startDaemon(t)

	var errResp api.ErrorResponse
	code := getJSON(t, td.baseURL+"/result/unknown.mp4", &errResp)
	if code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", code)
	}
	if errResp.Error != "not_ready" {
		t.Errorf("error = %q, want not_ready", errResp.Error)
	}
}

func TestResultRejectsTraversal(t *testing.T) {
	td := startDaemon(t)

	for _, name := range []string{"..%2F..%2Fetc%2Fpasswd", ".hidden", ".."} {
		code := getJSON(t, td.baseURL+"/result/"+name, nil)
		if code != http.StatusNotFound {
			t.Errorf("result %q status = %d, want 404", name, code)
		}
	}
}

func TestSecondInstanceRefused(t *testing.T) {
	td := startDaemon(t)

	store := testsupport.MustOpenStore(t, td.cfg)
	orchestrator := pipeline.NewOrchestrator(td.cfg, store, &testsupport.FakeTranscoder{}, nil)
	manager := pipeline.NewManager(orchestrator, nil)
	second, err := daemon.New(td.cfg, store, manager, nil)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	if err := second.Start(context.Background()); err == nil {
		second.Stop()
		t.Fatal("second daemon started, want lock refusal")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	td := startDaemon(t)

	resp, err := http.Get(td.baseURL + "/render")
	if err != nil {
		t.Fatalf("GET /render: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", resp.StatusCode)
	}
}

func waitForCondition(t *testing.T, condition func() bool) {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
