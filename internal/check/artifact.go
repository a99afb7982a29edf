package check

import (
	"os"
	"path/filepath"
	"strings"
)

// Artifact is a static resource: the bytes on disk and the URL they are
// served at.
type Artifact struct {
	Content     []byte
	ContentType string
	URLPath     string
	LocalPath   string
}

// LoadArtifact reads the expected content from localPath under the document
// root. A file that can't be read gives empty content, so the check reports
// a content mismatch instead of aborting.
func LoadArtifact(docRoot, urlPath, localPath, contentType string) Artifact {
	fullPath := filepath.Join(docRoot, filepath.FromSlash(strings.TrimLeft(localPath, "/")))

	content, err := os.ReadFile(fullPath)
	if err != nil {
		content = []byte{}
	}

	return Artifact{
		Content:     content,
		ContentType: contentType,
		URLPath:     urlPath,
		LocalPath:   fullPath,
	}
}
