package entities

// ClassifyOptions tunes how manifests are interpreted when classifying a dependency.
type ClassifyOptions struct {
	// Structural parses go.mod and Cargo.toml instead of matching their text.
	Structural bool
}

// ScanOptions holds runtime options passed to a repository scan.
type ScanOptions struct {
	Classify ClassifyOptions
}
