package ffmpeg

import (
	"strings"
	"testing"
)

func TestEscapeDrawtext(t *testing.T) {
	got := EscapeDrawtext(`It's 5:00`)
	if got != `It\'s 5\:00` {
		t.Fatalf("unexpected escaping: %s", got)
	}
}

func TestEscapeDrawtextBackslashFirst(t *testing.T) {
	got := EscapeDrawtext(`a\b'c`)
	if got != `a\\b\'c` {
		t.Fatalf("backslash must be escaped before quotes: %s", got)
	}
}

func TestBuildDrawtext(t *testing.T) {
	filter := BuildDrawtext("/fonts/Deja.ttf", 48, "It's 5:00")
	for _, want := range []string{
		"fontfile=/fonts/Deja.ttf",
		`text='It\'s 5\:00'`,
		"fontsize=48",
		"boxcolor=black@0.5",
		"x=(w-text_w)/2",
		"y=h-150",
	} {
		if !strings.Contains(filter, want) {
			t.Errorf("filter missing %q: %s", want, filter)
		}
	}
}

func TestBuildDrawtextTrimsCaption(t *testing.T) {
	filter := BuildDrawtext("/f.ttf", 48, "  padded  ")
	if !strings.Contains(filter, "text='padded'") {
		t.Fatalf("caption not trimmed: %s", filter)
	}
}
