// Package pipeline runs the assembly workflow for a submitted job: fetch
// the scene media, render each scene to a clip, concatenate the clips, and
// composite audio and caption onto the result. The Orchestrator executes one
// job end to end; the Manager supervises the background task per job.
package pipeline
