package workspace_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reelsmith/internal/workspace"
)

func TestNewRejectsTraversal(t *testing.T) {
	base := t.TempDir()
	for _, id := range []string{"", "..", "a/b", "../escape"} {
		if _, err := workspace.New(base, id); err == nil {
			t.Errorf("expected job id %q to be rejected", id)
		}
	}
}

func TestSemanticAccessors(t *testing.T) {
	base := t.TempDir()
	ws, err := workspace.New(base, "job123")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if ws.Dir() != filepath.Join(base, "job123") {
		t.Fatalf("unexpected dir: %s", ws.Dir())
	}
	if filepath.Base(ws.ImagePath(2)) != "img_2.jpg" {
		t.Fatalf("unexpected image path: %s", ws.ImagePath(2))
	}
	if filepath.Base(ws.ClipPath(0)) != "clip_0.mp4" {
		t.Fatalf("unexpected clip path: %s", ws.ClipPath(0))
	}
	if filepath.Base(ws.MergedPath()) != "final_noaudio.mp4" {
		t.Fatalf("unexpected merged path: %s", ws.MergedPath())
	}
	if ws.ResultFileName() != "job123.mp4" {
		t.Fatalf("unexpected result name: %s", ws.ResultFileName())
	}
	if !strings.HasPrefix(ws.FinalPath(), ws.Dir()) {
		t.Fatalf("final path escapes workspace: %s", ws.FinalPath())
	}
}

func TestWritePayloadAndSnapshot(t *testing.T) {
	ws, err := workspace.New(t.TempDir(), "job456")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := ws.Create(); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := ws.WritePayload([]byte(`{"scenes":[]}`)); err != nil {
		t.Fatalf("WritePayload: %v", err)
	}

	snapshot := map[string]string{"job_id": "job456", "status": "queued"}
	if err := ws.WriteSnapshot(snapshot); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}

	data, err := os.ReadFile(ws.SnapshotPath())
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	var decoded map[string]string
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if decoded["status"] != "queued" {
		t.Fatalf("unexpected snapshot: %#v", decoded)
	}
}
