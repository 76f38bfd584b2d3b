// Package style holds the presentation settings a user tunes next to the
// resume: font, colours, heading sizes and which sections are shown.
package style

import (
	"errors"
	"fmt"

	"buildyourcv/resume/model"
)

// Config is the user's presentation choice. Sizes are CSS rem values.
type Config struct {
	FontFamily      string            `json:"fontFamily" yaml:"fontFamily" validate:"required"`
	PrimaryColor    string            `json:"primaryColor" yaml:"primaryColor" validate:"required,hexcolor"`
	AccentColor     string            `json:"accentColor" yaml:"accentColor" validate:"required,hexcolor"`
	H1Size          string            `json:"h1Size" yaml:"h1Size" validate:"required,rem=3.5"`
	H2Size          string            `json:"h2Size" yaml:"h2Size" validate:"required,rem=2"`
	H3Size          string            `json:"h3Size" yaml:"h3Size" validate:"required,rem=2"`
	BodySize        string            `json:"bodySize" yaml:"bodySize" validate:"required,rem=2"`
	VisibleSections []model.SectionID `json:"visibleSections" yaml:"visibleSections" validate:"dive,section"`
}

// Font is a selectable typeface.
type Font struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Family string `json:"family"`
}

// Preset pairs a primary and an accent colour.
type Preset struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Primary string `json:"primary"`
	Accent  string `json:"accent"`
}

// Section describes a toggleable section. Required sections are always shown.
type Section struct {
	ID       model.SectionID `json:"id"`
	Label    string          `json:"label"`
	Required bool            `json:"required"`
}

var Fonts = []Font{
	{ID: "inter", Name: "Inter", Family: "'Inter', sans-serif"},
	{ID: "roboto", Name: "Roboto", Family: "'Roboto', sans-serif"},
	{ID: "open-sans", Name: "Open Sans", Family: "'Open Sans', sans-serif"},
	{ID: "lato", Name: "Lato", Family: "'Lato', sans-serif"},
	{ID: "montserrat", Name: "Montserrat", Family: "'Montserrat', sans-serif"},
	{ID: "merriweather", Name: "Merriweather", Family: "'Merriweather', serif"},
	{ID: "playfair", Name: "Playfair Display", Family: "'Playfair Display', serif"},
	{ID: "source-code", Name: "Source Code Pro", Family: "'Source Code Pro', monospace"},
}

var Presets = []Preset{
	{ID: "blue", Name: "Professional Blue", Primary: "#2563eb", Accent: "#3b82f6"},
	{ID: "indigo", Name: "Modern Indigo", Primary: "#4f46e5", Accent: "#6366f1"},
	{ID: "emerald", Name: "Fresh Green", Primary: "#059669", Accent: "#10b981"},
	{ID: "rose", Name: "Elegant Rose", Primary: "#e11d48", Accent: "#f43f5e"},
	{ID: "amber", Name: "Warm Amber", Primary: "#d97706", Accent: "#f59e0b"},
	{ID: "slate", Name: "Classic Gray", Primary: "#475569", Accent: "#64748b"},
	{ID: "purple", Name: "Creative Purple", Primary: "#7c3aed", Accent: "#8b5cf6"},
	{ID: "teal", Name: "Tech Teal", Primary: "#0d9488", Accent: "#14b8a6"},
}

var Sections = []Section{
	{ID: model.SectionSummary, Label: "Summary"},
	{ID: model.SectionWork, Label: "Work Experience"},
	{ID: model.SectionEducation, Label: "Education", Required: true},
	{ID: model.SectionSkills, Label: "Skills", Required: true},
	{ID: model.SectionProjects, Label: "Projects"},
	{ID: model.SectionLanguages, Label: "Languages"},
	{ID: model.SectionCertificates, Label: "Certificates"},
	{ID: model.SectionAwards, Label: "Awards"},
	{ID: model.SectionReferences, Label: "References"},
}

// ErrUnknownPreset is returned by ApplyPreset for an unrecognised preset id.
var ErrUnknownPreset = errors.New("unknown colour preset")

// Default returns the initial presentation settings with every section visible.
func Default() Config {
	return Config{
		FontFamily:      Fonts[0].Family,
		PrimaryColor:    Presets[0].Primary,
		AccentColor:     Presets[0].Accent,
		H1Size:          "2.25rem",
		H2Size:          "1.125rem",
		H3Size:          "1rem",
		BodySize:        "0.875rem",
		VisibleSections: append([]model.SectionID(nil), model.AllSections...),
	}
}

// IsRequired reports whether id can never be hidden.
func IsRequired(id model.SectionID) bool {
	for _, s := range Sections {
		if s.ID == id {
			return s.Required
		}
	}
	return false
}

// IsVisible reports whether id is shown under cfg, counting required sections.
func IsVisible(cfg Config, id model.SectionID) bool {
	if IsRequired(id) {
		return true
	}
	for _, v := range cfg.VisibleSections {
		if v == id {
			return true
		}
	}
	return false
}

// Toggle flips the visibility of id and returns the new config. Required and
// unknown sections are left unchanged.
func Toggle(cfg Config, id model.SectionID) Config {
	out := cfg
	out.VisibleSections = nil
	id, known := model.ParseSectionID(string(id))
	if !known || IsRequired(id) {
		out.VisibleSections = append(out.VisibleSections, cfg.VisibleSections...)
		return out
	}
	found := false
	for _, v := range cfg.VisibleSections {
		if v == id {
			found = true
			continue
		}
		out.VisibleSections = append(out.VisibleSections, v)
	}
	if !found {
		out.VisibleSections = append(out.VisibleSections, id)
	}
	return out
}

// EffectiveVisible is the set handed to the projector: the configured
// sections plus the required ones, in presentation order.
func EffectiveVisible(cfg Config) []model.SectionID {
	out := make([]model.SectionID, 0, len(model.AllSections))
	for _, id := range model.AllSections {
		if IsVisible(cfg, id) {
			out = append(out, id)
		}
	}
	return out
}

// ApplyPreset sets both colours from the named preset.
func ApplyPreset(cfg Config, presetID string) (Config, error) {
	for _, p := range Presets {
		if p.ID == presetID {
			out := cfg
			out.VisibleSections = append([]model.SectionID(nil), cfg.VisibleSections...)
			out.PrimaryColor = p.Primary
			out.AccentColor = p.Accent
			return out, nil
		}
	}
	return cfg, fmt.Errorf("%w: %q", ErrUnknownPreset, presetID)
}

// FontByID looks up a typeface option.
func FontByID(id string) (Font, bool) {
	for _, f := range Fonts {
		if f.ID == id {
			return f, true
		}
	}
	return Font{}, false
}
