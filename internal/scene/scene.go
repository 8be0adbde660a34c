package scene

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Pan identifies the requested pan direction for a scene image.
type Pan string

const (
	PanNone   Pan = "none"
	PanLeft   Pan = "left"
	PanRight  Pan = "right"
	PanTop    Pan = "top"
	PanBottom Pan = "bottom"
)

// ParsePan normalizes a pan tag. Unknown or empty values map to PanNone.
func ParsePan(value string) Pan {
	switch Pan(strings.ToLower(strings.TrimSpace(value))) {
	case PanLeft:
		return PanLeft
	case PanRight:
		return PanRight
	case PanTop:
		return PanTop
	case PanBottom:
		return PanBottom
	default:
		return PanNone
	}
}

// Scene is one segment of the output video: a single source image shown for a
// fixed duration. Zoom and pan are carried through from the submission but are
// not applied by the current renderer; see the package documentation.
type Scene struct {
	Index      int
	ImageURL   string
	Duration   float64
	Transition string
	Zoom       float64
	Pan        Pan
}

// Element is one entry of the submission's flat element list.
type Element struct {
	Type     string `json:"type"`
	Src      string `json:"src"`
	Text     string `json:"text"`
	Caption  string `json:"caption"`
	Subtitle string `json:"subtitle"`
}

// Submission is the parsed scene graph of one render request.
type Submission struct {
	Scenes   []Scene
	AudioURL string
	Caption  string
}

const defaultSceneDuration = 5.0

type payloadScene struct {
	Duration   json.Number `json:"duration"`
	Transition string      `json:"transition"`
	Elements   []struct {
		Src  string      `json:"src"`
		Zoom json.Number `json:"zoom"`
		Pan  string      `json:"pan"`
	} `json:"elements"`
}

type payload struct {
	Scenes   []payloadScene `json:"scenes"`
	Elements []Element      `json:"elements"`
}

// ParseSubmission decodes a render request payload. Scenes without a usable
// image source are skipped rather than rejected; the orchestrator fails the
// job later if no scene survives. The audio and caption selections follow the
// explicit first-match contract of FirstOfType.
func ParseSubmission(raw []byte) (*Submission, error) {
	var body payload
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("decode submission: %w", err)
	}

	sub := &Submission{}
	for i, ps := range body.Scenes {
		if len(ps.Elements) == 0 {
			continue
		}
		first := ps.Elements[0]
		imageURL := strings.TrimSpace(first.Src)
		if imageURL == "" {
			continue
		}

		duration := defaultSceneDuration
		if value, err := ps.Duration.Float64(); err == nil && value > 0 {
			duration = value
		}
		zoom := 0.0
		if value, err := first.Zoom.Float64(); err == nil {
			zoom = value
		}

		sub.Scenes = append(sub.Scenes, Scene{
			Index:      i,
			ImageURL:   imageURL,
			Duration:   duration,
			Transition: strings.TrimSpace(ps.Transition),
			Zoom:       zoom,
			Pan:        ParsePan(first.Pan),
		})
	}

	if audio := FirstOfType(body.Elements, "audio"); audio != nil {
		sub.AudioURL = strings.TrimSpace(audio.Src)
	}
	if caption := FirstOfType(body.Elements, "caption", "subtitles", "text"); caption != nil {
		sub.Caption = captionText(*caption)
	}

	return sub, nil
}

// FirstOfType returns the first element whose type matches any of the given
// kinds, or nil. The pipeline deliberately uses at most one audio element and
// at most one caption element per submission; later matches are ignored.
func FirstOfType(elements []Element, kinds ...string) *Element {
	for i := range elements {
		elementType := strings.ToLower(strings.TrimSpace(elements[i].Type))
		for _, kind := range kinds {
			if elementType == kind {
				return &elements[i]
			}
		}
	}
	return nil
}

func captionText(el Element) string {
	for _, candidate := range []string{el.Text, el.Caption, el.Subtitle} {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// TotalDuration returns the summed scene durations in seconds.
func (s *Submission) TotalDuration() float64 {
	var total float64
	for _, sc := range s.Scenes {
		total += sc.Duration
	}
	return total
}
