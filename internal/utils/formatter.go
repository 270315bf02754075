package utils

import (
	"fmt"
	"go/parser"
	"go/token"
	"os"

	"golang.org/x/tools/imports"
)

// formatOptions formats like goimports without touching the import set.
// Generated files declare exactly the imports they use, and resolving
// missing ones would require loading the user's packages.
var formatOptions = &imports.Options{
	Comments:   true,
	TabIndent:  true,
	TabWidth:   8,
	FormatOnly: true,
}

// FormatGoCode formats Go source the way goimports does, grouping and
// sorting the import block
func FormatGoCode(filename string, source []byte) ([]byte, error) {
	return imports.Process(filename, source, formatOptions)
}

// FormatGoCodeString formats Go source from a string. On failure the
// original source is returned together with the syntax error.
func FormatGoCodeString(source string) (string, error) {
	formatted, err := FormatGoCode("", []byte(source))
	if err != nil {
		if parseErr := ValidateGoCode(source); parseErr != nil {
			return source, fmt.Errorf("invalid Go syntax: %w (format error: %v)", parseErr, err)
		}
		return source, err
	}
	return string(formatted), nil
}

// FormatAndWriteGoFile formats code and writes it to filename. Nothing is
// written when the code does not format.
func FormatAndWriteGoFile(filename string, code string) error {
	formatted, err := FormatGoCodeString(code)
	if err != nil {
		return fmt.Errorf("failed to format %s: %w", filename, err)
	}
	return os.WriteFile(filename, []byte(formatted), 0644)
}

// ValidateGoCode checks if the provided code is valid Go syntax
func ValidateGoCode(code string) error {
	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, "", code, parser.ParseComments)
	return err
}
