package model

import "strings"

// SectionID names an independently toggleable group of resume content.
type SectionID string

const (
	SectionSummary      SectionID = "summary"
	SectionWork         SectionID = "work"
	SectionEducation    SectionID = "education"
	SectionSkills       SectionID = "skills"
	SectionProjects     SectionID = "projects"
	SectionLanguages    SectionID = "languages"
	SectionCertificates SectionID = "certificates"
	SectionAwards       SectionID = "awards"
	SectionReferences   SectionID = "references"
)

// AllSections lists every section in presentation order.
var AllSections = []SectionID{
	SectionSummary,
	SectionWork,
	SectionEducation,
	SectionSkills,
	SectionProjects,
	SectionLanguages,
	SectionCertificates,
	SectionAwards,
	SectionReferences,
}

// ParseSectionID maps a raw identifier onto a known section.
func ParseSectionID(raw string) (SectionID, bool) {
	id := SectionID(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range AllSections {
		if known == id {
			return id, true
		}
	}
	return "", false
}

// ParseSectionIDs keeps the known identifiers in input order, dropping
// unknown ones and duplicates.
func ParseSectionIDs(raw []string) []SectionID {
	out := make([]SectionID, 0, len(raw))
	seen := make(map[SectionID]struct{}, len(raw))
	for _, r := range raw {
		id, ok := ParseSectionID(r)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// HasData reports whether the section holds any content in r.
func HasData(r Resume, id SectionID) bool {
	switch id {
	case SectionSummary:
		return strings.TrimSpace(Deref(r.Basics.Summary)) != ""
	case SectionWork:
		return len(r.Work) > 0
	case SectionEducation:
		return len(r.Education) > 0
	case SectionSkills:
		return len(r.Skills) > 0
	case SectionProjects:
		return len(r.Projects) > 0
	case SectionLanguages:
		return len(r.Languages) > 0
	case SectionCertificates:
		return len(r.Certificates) > 0
	case SectionAwards:
		return len(r.Awards) > 0
	case SectionReferences:
		return len(r.References) > 0
	default:
		return false
	}
}
