// Package ffmpeg wraps the external ffmpeg binary behind the typed Transcoder
// capability the render pipeline depends on: image-to-clip rendering,
// stream-copy and re-encode concatenation, and the final audio/caption mux.
//
// All argument assembly and drawtext escaping lives here so the rest of the
// pipeline never constructs raw commands, and tests exercise command shapes
// against a fake Transcoder instead of a real binary.
package ffmpeg
