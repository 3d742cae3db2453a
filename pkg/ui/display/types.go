// Package display holds the presentation-side views shared by the renderers.
package display

// Environment is one row of the known-environments listing
type Environment struct {
	Prefix   string `json:"prefix"`
	Packages int    `json:"packages"`
	Root     bool   `json:"root,omitempty"`
}

// Labels shared by the human and machine renderers
const (
	NoPackage      = "Does not belong to a conda package"
	NoEnvironment  = "Does not belong to a conda environment"
	MetadataFile   = "conda metadata file"
	ClobberedLabel = "file was clobbered"
)
