package templates

import (
	"fmt"
	"go/token"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// ImportManager handles import generation and deduplication for one
// generated file. Every import gets an explicit alias so the qualifier in
// generated code never depends on the imported package's declared name.
type ImportManager struct {
	packageImports map[string]string // alias -> path
	aliases        map[string]string // path -> alias
	reserved       map[string]bool
}

// NewImportManager creates a new import manager. Reserved names are never
// handed out as aliases.
func NewImportManager(reserved ...string) *ImportManager {
	im := &ImportManager{
		packageImports: make(map[string]string),
		aliases:        make(map[string]string),
		reserved:       make(map[string]bool),
	}
	for _, name := range reserved {
		im.reserved[name] = true
	}
	return im
}

// AddPackageImport adds a package import with alias
func (im *ImportManager) AddPackageImport(alias, path string) {
	if alias != "" && path != "" {
		im.packageImports[alias] = path
		im.aliases[path] = alias
	}
}

// Qualify returns the qualifier for path, adding the import on first use
func (im *ImportManager) Qualify(path string) string {
	if alias, ok := im.aliases[path]; ok {
		return alias
	}

	base := aliasFor(path)
	alias := base
	for n := 2; im.taken(alias); n++ {
		alias = base + strconv.Itoa(n)
	}
	im.AddPackageImport(alias, path)
	return alias
}

func (im *ImportManager) taken(alias string) bool {
	_, used := im.packageImports[alias]
	return used || im.reserved[alias] || token.IsKeyword(alias)
}

// Paths returns the imported paths, sorted
func (im *ImportManager) Paths() []string {
	paths := make([]string, 0, len(im.aliases))
	for path := range im.aliases {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// GenerateImports generates the import section, sorted by path
func (im *ImportManager) GenerateImports() string {
	paths := im.Paths()
	if len(paths) == 0 {
		return ""
	}

	lines := make([]string, 0, len(paths))
	for _, path := range paths {
		lines = append(lines, im.importLine(path))
	}

	if len(lines) == 1 {
		return fmt.Sprintf("import %s\n", lines[0])
	}

	var result strings.Builder
	result.WriteString("import (\n")
	for _, line := range lines {
		result.WriteString(fmt.Sprintf("\t%s\n", line))
	}
	result.WriteString(")\n")
	return result.String()
}

// importLine omits the alias when it matches the last path element
func (im *ImportManager) importLine(path string) string {
	alias := im.aliases[path]
	if alias == lastElement(path) {
		return strconv.Quote(path)
	}
	return alias + " " + strconv.Quote(path)
}

// aliasFor derives an identifier from the last meaningful path element,
// skipping major version suffixes like "v2"
func aliasFor(path string) string {
	elems := strings.Split(path, "/")
	name := elems[len(elems)-1]
	if isMajorVersion(name) && len(elems) > 1 {
		name = elems[len(elems)-2]
	}

	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(unicode.ToLower(r))
		}
	}

	alias := b.String()
	if alias == "" || !unicode.IsLetter([]rune(alias)[0]) {
		alias = "pkg" + alias
	}
	return alias
}

func lastElement(path string) string {
	return path[strings.LastIndex(path, "/")+1:]
}

func isMajorVersion(elem string) bool {
	if len(elem) < 2 || elem[0] != 'v' {
		return false
	}
	_, err := strconv.Atoi(elem[1:])
	return err == nil
}
