package models

// Artifact identities. They are the same in full and stub mode so code
// referring to the generated files never has to branch.
const (
	DispatchArtifactName  = "routes"
	NavigatorArtifactName = "navigator"

	DispatchFileName  = "autogen_routes.go"
	NavigatorFileName = "autogen_navigator.go"
)

// GeneratedArtifact is one rendered output file
type GeneratedArtifact struct {
	Name        string // DispatchArtifactName or NavigatorArtifactName
	FileName    string // file name relative to the output directory
	PackageName string // Go package the file belongs to
	Content     string // formatted Go source
	Stub        bool   // rendered in stub mode
}

// GeneratedFileNames lists the file names every pass writes
func GeneratedFileNames() []string {
	return []string{DispatchFileName, NavigatorFileName}
}
