package cli

import (
	"fmt"

	"github.com/toyz/compass/internal/utils"
)

// ModuleResolver handles resolving Go module information
type ModuleResolver struct {
	gomod *utils.GoModParser
}

// NewModuleResolver creates a new module resolver
func NewModuleResolver() *ModuleResolver {
	return &ModuleResolver{gomod: utils.NewGoModParser()}
}

// ResolveImportPath resolves the import path of the output package.
// The first non-empty candidate wins; otherwise it is derived from the
// go.mod enclosing outputDir.
func (r *ModuleResolver) ResolveImportPath(outputDir string, candidates ...string) (string, error) {
	for _, candidate := range candidates {
		if candidate != "" {
			return candidate, nil
		}
	}

	importPath, err := r.gomod.ResolveImportPath(outputDir)
	if err != nil {
		return "", fmt.Errorf("failed to determine import path of %s: %w (consider using --import-path)", outputDir, err)
	}
	return importPath, nil
}

// ResolveModuleName returns the module declared by the go.mod enclosing dir
func (r *ModuleResolver) ResolveModuleName(dir string) (string, error) {
	goModPath, err := r.gomod.FindGoModFile(dir)
	if err != nil {
		return "", err
	}
	return r.gomod.ParseModuleName(goModPath)
}
