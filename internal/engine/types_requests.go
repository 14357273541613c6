package engine

// InstallRequest represents a request to install skills from a manifest.
type InstallRequest struct {
	// ManifestPath is the path to the skills.yaml manifest.
	ManifestPath string

	// DryRun simulates the run without mutating the filesystem.
	DryRun bool

	// Force allows overwriting existing destinations.
	Force bool
}

// StatusRequest represents a request for per-entry install state.
type StatusRequest struct {
	// ManifestPath is the path to the skills.yaml manifest.
	ManifestPath string
}

// ValidateRequest represents a request to validate a manifest.
type ValidateRequest struct {
	// ManifestPath is the path to the skills.yaml manifest.
	ManifestPath string
}

// ListRequest represents a request to list skills available in sources.
type ListRequest struct {
	// ManifestPath is the path to the skills.yaml manifest.
	ManifestPath string
}
