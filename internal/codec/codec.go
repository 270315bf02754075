package codec

import (
	"github.com/toyz/compass/internal/errors"
	"github.com/toyz/compass/internal/models"
	"github.com/toyz/compass/internal/registry"
	"github.com/toyz/compass/internal/route"
	"github.com/toyz/compass/pkg/compass"
)

// ArgumentDeclaration registers a template placeholder with the runtime
type ArgumentDeclaration struct {
	Key      string
	Nullable bool
	Kind     compass.ArgumentKind
}

// Extraction reads one argument out of the argument bag into Variable
type Extraction struct {
	Variable  string
	Key       string
	Accessor  string // compass.Arguments method, e.g. "GetDouble"
	Parameter models.NavigationParameter
}

// Assertion fails dispatch when a required argument was absent
type Assertion struct {
	Variable string
	Key      string
}

// Codec is everything dispatch code needs to decode a destination's
// arguments. Extractions follow declaration order and all assertions come
// after the extractions.
type Codec struct {
	Declarations []ArgumentDeclaration
	Extractions  []Extraction
	Assertions   []Assertion
}

// Generate derives the codec of d. Marker parameters contribute nothing.
// A parameter whose type is not supported fails the whole destination.
func Generate(d models.NavigationDestination) (Codec, error) {
	var c Codec
	for _, p := range d.Parameters {
		if p.IsMarker() {
			continue
		}

		kind, err := registry.ArgumentKindOf(p.Type)
		if err != nil {
			return Codec{}, unsupported(d, p)
		}
		accessor, err := registry.ExtractorOf(p.Type)
		if err != nil {
			return Codec{}, unsupported(d, p)
		}

		key := route.CanonicalKey(p.Name)
		c.Declarations = append(c.Declarations, ArgumentDeclaration{Key: key, Nullable: p.Nullable, Kind: kind})
		c.Extractions = append(c.Extractions, Extraction{Variable: key, Key: key, Accessor: accessor, Parameter: p})
		if !p.Nullable {
			c.Assertions = append(c.Assertions, Assertion{Variable: key, Key: key})
		}
	}
	return c, nil
}

func unsupported(d models.NavigationDestination, p models.NavigationParameter) error {
	descriptor := p.Descriptor
	if descriptor == "" {
		descriptor = p.Type.String()
	}
	return errors.NewUnsupportedParameterTypeError(descriptor).WithParameter(d.ActualName, p.Name)
}
