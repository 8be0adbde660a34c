// Package preflight provides readiness checks for the external tools and
// filesystem paths the assembly pipeline depends on.
//
// These checks run in two contexts:
//   - The daemon runs RunAll and CheckSystemDeps at startup and logs every
//     failure, refusing to start only when ffmpeg itself is missing.
//   - The CLI "reelsmith status" command uses the same checks to display
//     service health.
package preflight
