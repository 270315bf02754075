package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleResolver_ResolveImportPath(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "module example.com/app\n\ngo 1.25\n")
	navDir := filepath.Join(root, "internal", "nav")
	writeFile(t, filepath.Join(navDir, "doc.go"), "package nav\n")

	r := NewModuleResolver()

	tests := []struct {
		name       string
		dir        string
		candidates []string
		expected   string
	}{
		{name: "derived from go.mod", dir: navDir, expected: "example.com/app/internal/nav"},
		{name: "module root", dir: root, expected: "example.com/app"},
		{name: "first candidate wins", dir: navDir, candidates: []string{"custom/nav", "manifest/nav"}, expected: "custom/nav"},
		{name: "empty candidates skipped", dir: navDir, candidates: []string{"", "manifest/nav"}, expected: "manifest/nav"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ResolveImportPath(tt.dir, tt.candidates...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	name, err := r.ResolveModuleName(navDir)
	require.NoError(t, err)
	assert.Equal(t, "example.com/app", name)
}

func TestModuleResolver_OutsideModule(t *testing.T) {
	_, err := NewModuleResolver().ResolveImportPath(filepath.Join(string(filepath.Separator), "definitely", "not", "a", "module"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--import-path")
}
