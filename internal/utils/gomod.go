package utils

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
)

// GoModParser locates go.mod files and derives import paths from them
type GoModParser struct {
	readFile func(string) ([]byte, error)
}

// NewGoModParser creates a parser reading from the local file system
func NewGoModParser() *GoModParser {
	return &GoModParser{readFile: os.ReadFile}
}

// ParseModuleName extracts the module name from a go.mod file
func (p *GoModParser) ParseModuleName(goModPath string) (string, error) {
	cleanPath := filepath.Clean(goModPath)
	if filepath.Base(cleanPath) != "go.mod" {
		return "", fmt.Errorf("file is not a go.mod file: %s", goModPath)
	}

	content, err := p.readFile(cleanPath)
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod file: %w", err)
	}

	modFile, err := modfile.Parse(cleanPath, content, nil)
	if err != nil {
		return "", fmt.Errorf("failed to parse go.mod file: %w", err)
	}

	if modFile.Module == nil {
		return "", fmt.Errorf("no module declaration found in go.mod")
	}

	return modFile.Module.Mod.Path, nil
}

// FindGoModFile searches for go.mod starting from startDir and walking up
func (p *GoModParser) FindGoModFile(startDir string) (string, error) {
	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", startDir, err)
	}

	for {
		goModPath := filepath.Join(currentDir, "go.mod")
		if content, err := p.readFile(goModPath); err == nil && len(content) > 0 {
			return goModPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", fmt.Errorf("go.mod file not found")
}

// ResolveImportPath returns the import path of the package living in dir:
// the enclosing module path joined with dir's position inside the module.
func (p *GoModParser) ResolveImportPath(dir string) (string, error) {
	goModPath, err := p.FindGoModFile(dir)
	if err != nil {
		return "", err
	}

	modulePath, err := p.ParseModuleName(goModPath)
	if err != nil {
		return "", err
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	rel, err := filepath.Rel(filepath.Dir(goModPath), absDir)
	if err != nil {
		return "", fmt.Errorf("failed to relate %s to module root: %w", dir, err)
	}
	if rel == "." {
		return modulePath, nil
	}
	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%s is outside module %s", dir, modulePath)
	}

	importPath := path.Join(modulePath, filepath.ToSlash(rel))
	if err := module.CheckImportPath(importPath); err != nil {
		return "", fmt.Errorf("invalid import path for %s: %w", dir, err)
	}
	return importPath, nil
}
