// Package render turns downloaded scene images into normalized clips and
// merges them, in scene order, into the pre-audio video. Clips share one
// target geometry and frame rate so the fast stream-copy concat path stays
// format compatible; a re-encode fallback covers parameter drift.
package render
