// Package projection filters a resume down to the sections chosen for display.
package projection

import "buildyourcv/resume/model"

// Project returns a copy of r holding only basics plus every visible section
// that has content; $schema and meta are not carried over. basics.summary is
// cleared unless the summary section is visible. Unknown identifiers are
// ignored. The result shares no memory with r.
func Project(r model.Resume, visible []model.SectionID) model.Resume {
	show := make(map[model.SectionID]bool, len(visible))
	for _, id := range visible {
		show[id] = true
	}

	src := model.Clone(r)
	out := model.Resume{Basics: src.Basics}
	if !show[model.SectionSummary] {
		out.Basics.Summary = nil
	}
	if show[model.SectionWork] {
		out.Work = src.Work
	}
	if show[model.SectionEducation] {
		out.Education = src.Education
	}
	if show[model.SectionSkills] {
		out.Skills = src.Skills
	}
	if show[model.SectionProjects] {
		out.Projects = src.Projects
	}
	if show[model.SectionLanguages] {
		out.Languages = src.Languages
	}
	if show[model.SectionCertificates] {
		out.Certificates = src.Certificates
	}
	if show[model.SectionAwards] {
		out.Awards = src.Awards
	}
	if show[model.SectionReferences] {
		out.References = src.References
	}
	return out
}

// Sections lists the visible sections that would appear in the projection of r.
func Sections(r model.Resume, visible []model.SectionID) []model.SectionID {
	show := make(map[model.SectionID]bool, len(visible))
	for _, id := range visible {
		show[id] = true
	}
	out := make([]model.SectionID, 0, len(model.AllSections))
	for _, id := range model.AllSections {
		if show[id] && model.HasData(r, id) {
			out = append(out, id)
		}
	}
	return out
}
