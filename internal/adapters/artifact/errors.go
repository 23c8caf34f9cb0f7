package artifact

import "errors"

// ErrArtifactGeneration marks a failed artifact render or publish. The
// lifecycle operation aborts without committing partial state.
var ErrArtifactGeneration = errors.New("artifact generation failed")
