package generator

import (
	"github.com/toyz/compass/internal/artifact"
	"github.com/toyz/compass/internal/models"
)

// Renderer serializes artifact nodes into source text. The default
// back-end is templates.GoRenderer.
type Renderer interface {
	RenderDispatch(d artifact.Dispatch) (string, error)
	RenderNavigator(n artifact.Navigator) (string, error)
}

// CodeGenerator produces the dispatch and navigator artifacts of one pass
type CodeGenerator interface {
	EmitFull(set *models.DestinationSet) ([]models.GeneratedArtifact, error)
	EmitStub(names []string) ([]models.GeneratedArtifact, error)
}
