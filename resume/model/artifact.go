package model

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

// ArtifactContentType is the media type of the downloadable resume.
const ArtifactContentType = "application/json"

var whitespaceRun = regexp.MustCompile(`\s+`)

// Encode serializes r as the downloadable artifact: two-space indented JSON
// with a trailing newline. Equal values always encode to identical bytes.
func Encode(r Resume) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ArtifactFileName derives the download name from basics.name.
func ArtifactFileName(r Resume) string {
	name := strings.TrimSpace(r.Basics.Name)
	if name == "" {
		name = UnknownName
	}
	name = strings.NewReplacer("/", "_", "\\", "_", `"`, "", "..", "_").Replace(name)
	return whitespaceRun.ReplaceAllString(name, "_") + "_resume.json"
}
