package minecraft

import "encoding/json"

// Artifact is a downloadable jar referenced by a library entry
type Artifact struct {
	// Path of the jar file relative to the libraries folder.
	// If set it is used instead of the maven path
	Path string `json:"path,omitempty"`
	Sha1 string `json:"sha1"`
	// Size in bytes
	Size json.Number `json:"size"`
	URL  string      `json:"url"`
}
