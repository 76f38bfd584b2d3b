package cv

import (
	"encoding/json"

	"buildyourcv/resume/model"
	"buildyourcv/resume/style"
)

type parseCVRequest struct {
	Content string `json:"content"`
}

type projectRequest struct {
	Resume          json.RawMessage `json:"resume"`
	Styles          *style.Config   `json:"styles"`
	VisibleSections []string        `json:"visibleSections"`
}

type exportRequest struct {
	Resume json.RawMessage `json:"resume"`
}

type textResponse struct {
	Text string `json:"text"`
}

type pipelineResponse struct {
	Data     model.Resume `json:"data"`
	Text     string       `json:"text"`
	Phase    string       `json:"phase"`
	Revision int          `json:"revision"`
}

type stylesResponse struct {
	Defaults style.Config    `json:"defaults"`
	Fonts    []style.Font    `json:"fonts"`
	Presets  []style.Preset  `json:"presets"`
	Sections []style.Section `json:"sections"`
}

// failureDetails accompanies a failed pipeline so the client can restore
// its prior resume.
type failureDetails struct {
	Resume model.Resume `json:"resume"`
	Phase  string       `json:"phase"`
}
