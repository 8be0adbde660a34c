package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"reelsmith/internal/api"
	"reelsmith/internal/config"
	"reelsmith/internal/logging"
	"reelsmith/internal/queue"
	"reelsmith/internal/scene"
	"reelsmith/internal/workspace"
)

// maxPayloadBytes bounds a render submission body. Scene graphs are small;
// anything larger is a client error.
const maxPayloadBytes = 4 << 20

const defaultListLimit = 50

type apiServer struct {
	bind   string
	logger *slog.Logger
	daemon *Daemon

	listener net.Listener
	server   *http.Server
}

func newAPIServer(cfg *config.Config, d *Daemon, logger *slog.Logger) (*apiServer, error) {
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return nil, errors.New("api bind address required")
	}

	srv := &apiServer{
		bind:   bind,
		logger: logger,
		daemon: d,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/render", srv.handleRender)
	mux.HandleFunc("/status/", srv.handleStatus)
	mux.HandleFunc("/result/", srv.handleResult)
	mux.HandleFunc("/api/jobs", srv.handleJobs)
	mux.HandleFunc("/api/health", srv.handleHealth)

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

func (s *apiServer) start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log().Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.log().Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *apiServer) addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// handleRender accepts a scene graph, records the job, and launches the
// pipeline in the background. The response returns immediately with the
// polling identifiers; it never waits for rendering.
func (s *apiServer) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "unable to read request body")
		return
	}
	if _, err := scene.ParseSubmission(raw); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid submission payload")
		return
	}

	jobID := uuid.NewString()
	videoURL := "/result/" + jobID + ".mp4"

	ws, err := workspace.New(s.daemon.cfg.Paths.WorkspaceDir, jobID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "workspace setup failed")
		return
	}
	if err := ws.Create(); err != nil {
		s.log().Error("workspace create failed", logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, "workspace setup failed")
		return
	}
	if err := ws.WritePayload(raw); err != nil {
		s.log().Error("payload write failed", logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, "workspace setup failed")
		return
	}

	job, err := s.daemon.store.NewJob(r.Context(), jobID, string(raw), videoURL)
	if err != nil {
		s.log().Error("job insert failed", logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, "unable to record job")
		return
	}
	if err := ws.WriteSnapshot(api.SnapshotFromJob(job)); err != nil {
		s.log().Warn("initial snapshot write failed",
			logging.String(logging.FieldJobID, jobID),
			logging.Error(err),
		)
	}

	// The pipeline runs under the daemon context so it survives this request.
	if err := s.daemon.pipeline.Launch(s.daemon.ctx, jobID); err != nil {
		s.log().Error("pipeline launch failed", logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, "unable to start job")
		return
	}

	s.log().Info("job accepted",
		logging.String(logging.FieldJobID, jobID),
		logging.Int("payload_bytes", len(raw)),
	)
	s.writeJSON(w, http.StatusOK, api.SubmitResponse{
		JobID:    jobID,
		Status:   "processing",
		VideoURL: videoURL,
	})
}

func (s *apiServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jobID := strings.TrimPrefix(r.URL.Path, "/status/")
	if jobID == "" || strings.Contains(jobID, "/") {
		s.writeJSON(w, http.StatusNotFound, api.StatusSnapshot{JobID: jobID, Status: "not_found"})
		return
	}

	job, err := s.daemon.store.GetByID(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, queue.ErrNotFound) {
			s.writeJSON(w, http.StatusNotFound, api.StatusSnapshot{JobID: jobID, Status: "not_found"})
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.SnapshotFromJob(job))
}

// handleResult serves finished artifacts. The file name is reduced to its
// base so the results directory can never be escaped.
func (s *apiServer) handleResult(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/result/")
	name = filepath.Base(name)
	if name == "" || name == "." || name == ".." || strings.HasPrefix(name, ".") {
		s.writeError(w, http.StatusNotFound, "not_ready")
		return
	}

	path := filepath.Join(s.daemon.cfg.Paths.ResultsDir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		s.writeError(w, http.StatusNotFound, "not_ready")
		return
	}
	w.Header().Set("Content-Type", "video/mp4")
	http.ServeFile(w, r, path)
}

func (s *apiServer) handleJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	limit := defaultListLimit
	if value := strings.TrimSpace(r.URL.Query().Get("limit")); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed <= 0 {
			s.writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	jobs, err := s.daemon.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	summaries := make([]api.JobSummary, 0, len(jobs))
	for _, job := range jobs {
		summaries = append(summaries, api.SummaryFromJob(job))
	}
	s.writeJSON(w, http.StatusOK, api.JobListResponse{Jobs: summaries})
}

func (s *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	counts, err := s.daemon.store.Stats(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	// Every known status appears in the payload, zero counts included.
	jobCounts := make(map[string]int, len(queue.AllStatuses()))
	for _, status := range queue.AllStatuses() {
		jobCounts[string(status)] = counts[status]
	}
	s.writeJSON(w, http.StatusOK, api.HealthResponse{
		Status:    "ok",
		Active:    s.daemon.pipeline.ActiveCount(),
		JobCounts: jobCounts,
	})
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("failed to encode response", logging.Error(err))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, api.ErrorResponse{Error: message})
}

func (s *apiServer) log() *slog.Logger {
	if s.logger != nil {
		return logging.NewComponentLogger(s.logger, "api-server")
	}
	return logging.NewNop()
}
