package cli

import (
	"fmt"
	"iter"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/toyz/compass/internal/errors"
	"github.com/toyz/compass/internal/models"
	"github.com/toyz/compass/internal/registry"
	"github.com/toyz/compass/internal/utils"
)

// Manifest is the TOML file declaring the destinations of one output package
//
//	package = "nav"
//	logging = true
//
//	[aliases]
//	UserID = "int64"
//
//	[[destination]]
//	name = "Profile"
//	package = "example.com/app/screens"
//	home = true
//
//	  [[destination.parameter]]
//	  name = "id"
//	  type = "UserID"
type Manifest struct {
	Package      string                `toml:"package"`
	ImportPath   string                `toml:"import_path"`
	Logging      bool                  `toml:"logging"`
	Aliases      map[string]string     `toml:"aliases"`
	Destinations []DestinationManifest `toml:"destination"`

	path string
}

// DestinationManifest is one [[destination]] table
type DestinationManifest struct {
	Name       string              `toml:"name"`
	Package    string              `toml:"package"`
	CustomName string              `toml:"custom_name"`
	Home       bool                `toml:"home"`
	Parameters []ParameterManifest `toml:"parameter"`
}

// ParameterManifest is one [[destination.parameter]] table
type ParameterManifest struct {
	Name string `toml:"name"`
	Type string `toml:"type"`
}

// LoadManifest decodes and validates the manifest at path. Unknown keys are
// rejected so typos do not silently drop declarations.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, errors.WrapManifestError(path, err)
	}
	m.path = path

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, errors.WrapManifestError(path, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", ")))
	}

	if err := m.Validate(); err != nil {
		return nil, errors.WrapManifestError(path, err)
	}
	return &m, nil
}

// ParseManifest decodes a manifest from TOML text
func ParseManifest(data string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.Decode(data, &m); err != nil {
		return nil, errors.WrapManifestError("<inline>", err)
	}
	if err := m.Validate(); err != nil {
		return nil, errors.WrapManifestError("<inline>", err)
	}
	return &m, nil
}

// Path returns the file the manifest was loaded from
func (m *Manifest) Path() string {
	return m.path
}

// Validate checks the fields the manifest itself owns and reports every
// problem at once. Destination naming rules are enforced later by the
// generator, where they degrade to stubs.
func (m *Manifest) Validate() error {
	problems := errors.NewMultipleErrors()

	if m.Package != "" {
		problems.Append(errors.ManifestErrorCode, utils.IsValidGoIdentifier("package")(m.Package))
	}
	problems.Append(errors.ManifestErrorCode, utils.IsValidImportPath("import_path")(m.ImportPath))

	name := utils.NewValidatorChain(utils.NotEmpty("destination.name"))
	pkg := utils.NewValidatorChain(utils.IsValidImportPath("destination.package"))
	paramName := utils.NewValidatorChain(utils.NotEmpty("destination.parameter.name"))
	paramType := utils.NewValidatorChain(utils.NotEmpty("destination.parameter.type"))

	for i, d := range m.Destinations {
		label := d.Name
		if err := name.Validate(d.Name); err != nil {
			label = fmt.Sprintf("#%d", i+1)
			problems.Add(errors.Wrapf(errors.ManifestErrorCode, err, "destination %s", label))
		}
		if err := pkg.Validate(d.Package); err != nil {
			problems.Add(errors.Wrapf(errors.ManifestErrorCode, err, "destination %s", label))
		}
		for _, p := range d.Parameters {
			if err := paramName.Validate(p.Name); err != nil {
				problems.Add(errors.Wrapf(errors.ManifestErrorCode, err, "destination %s", label))
			}
			if err := paramType.Validate(p.Type); err != nil {
				problems.Add(errors.Wrapf(errors.ManifestErrorCode, err, "destination %s", label))
			}
		}
	}
	return problems.ErrOrNil()
}

// RegisterAliases adds the manifest's type aliases to reg, sorted by alias
func (m *Manifest) RegisterAliases(reg registry.TypeRegistryInterface) error {
	aliases := make([]string, 0, len(m.Aliases))
	for alias := range m.Aliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)

	for _, alias := range aliases {
		if err := reg.RegisterAlias(alias, m.Aliases[alias]); err != nil {
			return errors.WrapConfigurationError("aliases", "register", err)
		}
	}
	return nil
}

// DestinationSeq yields the declared destinations in file order, classifying
// parameter types with reg
func (m *Manifest) DestinationSeq(reg registry.TypeRegistryInterface) iter.Seq[models.NavigationDestination] {
	return func(yield func(models.NavigationDestination) bool) {
		for _, d := range m.Destinations {
			dest := models.NavigationDestination{
				ActualName:    d.Name,
				ActualPackage: d.Package,
				CustomName:    d.CustomName,
				IsHome:        d.Home,
			}
			for _, p := range d.Parameters {
				dest.Parameters = append(dest.Parameters, models.NewParameterWithRegistry(reg, p.Name, p.Type))
			}
			if !yield(dest) {
				return
			}
		}
	}
}
