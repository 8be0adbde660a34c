package scene_test

import (
	"testing"

	"reelsmith/internal/scene"
)

const samplePayload = `{
  "scenes": [
    {"duration": 3.5, "transition": "fade", "elements": [{"src": "https://img.example/a.jpg", "zoom": 1, "pan": "left"}]},
    {"duration": 2, "elements": []},
    {"elements": [{"src": "https://img.example/b.jpg"}]},
    {"duration": 4, "elements": [{"src": " "}]}
  ],
  "elements": [
    {"type": "text", "text": "Hello"},
    {"type": "audio", "src": "https://audio.example/track.mp3"},
    {"type": "audio", "src": "https://audio.example/ignored.mp3"},
    {"type": "caption", "caption": "second caption ignored"}
  ]
}`

func TestParseSubmission(t *testing.T) {
	sub, err := scene.ParseSubmission([]byte(samplePayload))
	if err != nil {
		t.Fatalf("ParseSubmission: %v", err)
	}

	if len(sub.Scenes) != 2 {
		t.Fatalf("expected 2 usable scenes, got %d", len(sub.Scenes))
	}
	first := sub.Scenes[0]
	if first.ImageURL != "https://img.example/a.jpg" || first.Duration != 3.5 {
		t.Fatalf("unexpected first scene: %#v", first)
	}
	if first.Pan != scene.PanLeft || first.Zoom != 1 || first.Transition != "fade" {
		t.Fatalf("scene parameters not carried: %#v", first)
	}

	second := sub.Scenes[1]
	if second.Duration != 5 {
		t.Fatalf("missing duration should default to 5, got %v", second.Duration)
	}
	if second.Index != 2 {
		t.Fatalf("scene index should reflect submission position, got %d", second.Index)
	}

	if sub.AudioURL != "https://audio.example/track.mp3" {
		t.Fatalf("first audio element should win, got %q", sub.AudioURL)
	}
	if sub.Caption != "Hello" {
		t.Fatalf("first caption-kind element should win, got %q", sub.Caption)
	}
	if sub.TotalDuration() != 8.5 {
		t.Fatalf("unexpected total duration: %v", sub.TotalDuration())
	}
}

func TestParseSubmissionRejectsMalformedJSON(t *testing.T) {
	if _, err := scene.ParseSubmission([]byte("{not json")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestFirstOfType(t *testing.T) {
	elements := []scene.Element{
		{Type: "sticker"},
		{Type: "Subtitles", Subtitle: "sub text"},
		{Type: "text", Text: "later"},
	}
	match := scene.FirstOfType(elements, "caption", "subtitles", "text")
	if match == nil || match.Subtitle != "sub text" {
		t.Fatalf("expected subtitles element, got %#v", match)
	}
	if scene.FirstOfType(elements, "audio") != nil {
		t.Fatal("no audio element should match")
	}
}

func TestParsePan(t *testing.T) {
	cases := map[string]scene.Pan{
		"left":     scene.PanLeft,
		" Right ":  scene.PanRight,
		"top":      scene.PanTop,
		"bottom":   scene.PanBottom,
		"":         scene.PanNone,
		"diagonal": scene.PanNone,
	}
	for input, want := range cases {
		if got := scene.ParsePan(input); got != want {
			t.Errorf("ParsePan(%q) = %s, want %s", input, got, want)
		}
	}
}
