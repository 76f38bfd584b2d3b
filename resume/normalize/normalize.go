// Package normalize turns an untrusted resume-shaped record into a canonical
// model.Resume. It first checks the record's shape and then repairs it field by
// field, dropping what cannot be salvaged instead of rejecting the record.
package normalize

import (
	"buildyourcv/resume/model"
)

// Normalize decodes raw JSON and repairs it into a canonical resume.
func Normalize(raw []byte) (model.Resume, error) {
	r, _, err := NormalizeWithReport(raw)
	return r, err
}

// NormalizeWithReport is Normalize plus the list of repairs that were applied.
func NormalizeWithReport(raw []byte) (model.Resume, Report, error) {
	return RepairCandidate(Inspect(raw))
}

// NormalizeValue repairs an already decoded candidate.
func NormalizeValue(v any) (model.Resume, Report, error) {
	return RepairCandidate(InspectValue(v))
}

// RepairCandidate runs the field repairs on a Valid candidate. Malformed candidates
// fail with ErrMalformedStructure.
func RepairCandidate(c Candidate) (model.Resume, Report, error) {
	if err := c.Err(); err != nil {
		return model.Resume{}, Report{}, err
	}
	var (
		out model.Resume
		rep Report
	)
	top := newObject(c.record, "", &rep)
	for _, r := range rules {
		v, ok := top.lookup(r.key)
		r.apply(field{value: v, present: ok, path: r.key, report: &rep}, r.policy, &out)
	}
	top.finish()
	return out, rep, nil
}

func parseBasics(f field) model.Basics {
	m, ok := f.value.(map[string]any)
	if !ok {
		detail := "missing"
		if f.present {
			detail = "not an object"
		}
		f.report.add(f.path, ActionDefaulted, detail)
		return model.Basics{Name: model.UnknownName}
	}
	o := newObject(m, f.path, f.report)
	b := model.Basics{
		Label:   o.optional("label"),
		Image:   o.optional("image"),
		Email:   o.optional("email"),
		Phone:   o.optional("phone"),
		URL:     o.optional("url"),
		Summary: o.optional("summary"),
	}
	name, ok := o.text("name")
	if !ok {
		o.report.add(o.fieldPath("name"), ActionDefaulted, "set to "+model.UnknownName)
		name = model.UnknownName
	}
	b.Name = name
	if loc := o.nested("location"); loc != nil {
		b.Location = parseLocation(loc)
	}
	profiles, ok := o.lookup("profiles")
	b.Profiles = salvage(field{value: profiles, present: ok, path: o.fieldPath("profiles"), report: o.report}, PolicyDropElement, parseProfile)
	o.finish()
	return b
}

func parseLocation(o *object) *model.Location {
	loc := model.Location{
		Address:     o.optional("address"),
		PostalCode:  o.optional("postalCode"),
		City:        o.optional("city"),
		CountryCode: o.optional("countryCode"),
		Region:      o.optional("region"),
	}
	o.finish()
	if loc.IsZero() {
		return nil
	}
	return &loc
}

func parseProfile(o *object) model.Profile {
	return model.Profile{
		Network:  o.required("network"),
		Username: o.optional("username"),
		URL:      o.required("url"),
	}
}

func parseWork(o *object) model.Work {
	w := model.Work{
		Name: o.optional("name"),
		URL:  o.optional("url"),
	}
	if _, ok := o.lookup("company"); ok || w.Name == nil {
		w.Company = o.required("company")
	} else {
		o.report.add(o.fieldPath("company"), ActionConverted, "taken from name")
		w.Company = *w.Name
	}
	w.Position = o.required("position")
	w.StartDate = o.startDate("startDate")
	w.EndDate = o.endDate("endDate")
	w.Summary = o.optional("summary")
	w.Highlights = o.strings("highlights")
	return w
}

func parseVolunteer(o *object) model.Volunteer {
	return model.Volunteer{
		Organization: o.required("organization"),
		Position:     o.required("position"),
		URL:          o.optional("url"),
		StartDate:    o.startDate("startDate"),
		EndDate:      o.endDate("endDate"),
		Summary:      o.optional("summary"),
		Highlights:   o.strings("highlights"),
	}
}

func parseEducation(o *object) model.Education {
	return model.Education{
		Institution: o.required("institution"),
		URL:         o.optional("url"),
		Area:        o.required("area"),
		StudyType:   o.required("studyType"),
		StartDate:   o.startDate("startDate"),
		EndDate:     o.endDate("endDate"),
		Score:       o.optional("score"),
		Courses:     o.strings("courses"),
	}
}

func parseAward(o *object) model.Award {
	return model.Award{
		Title:   o.required("title"),
		Date:    o.required("date"),
		Awarder: o.required("awarder"),
		Summary: o.optional("summary"),
	}
}

func parseCertificate(o *object) model.Certificate {
	return model.Certificate{
		Name:   o.required("name"),
		Date:   o.required("date"),
		Issuer: o.required("issuer"),
		URL:    o.optional("url"),
	}
}

func parsePublication(o *object) model.Publication {
	return model.Publication{
		Name:        o.required("name"),
		Publisher:   o.required("publisher"),
		ReleaseDate: o.required("releaseDate"),
		URL:         o.optional("url"),
		Summary:     o.optional("summary"),
	}
}

func parseSkill(o *object) model.Skill {
	return model.Skill{
		Name:     o.required("name"),
		Level:    o.optional("level"),
		Keywords: o.strings("keywords"),
	}
}

func parseLanguage(o *object) model.Language {
	return model.Language{
		Language: o.required("language"),
		Fluency:  o.marker("fluency"),
	}
}

func parseInterest(o *object) model.Interest {
	return model.Interest{
		Name:     o.required("name"),
		Keywords: o.strings("keywords"),
	}
}

func parseReference(o *object) model.Reference {
	ref := model.Reference{Name: o.required("name")}
	if text := o.optional("reference"); text != nil {
		ref.Reference = *text
	} else {
		o.report.add(o.fieldPath("reference"), ActionDefaulted, "set to "+model.ReferencePlaceholder)
		ref.Reference = model.ReferencePlaceholder
	}
	return ref
}

func parseProject(o *object) model.Project {
	return model.Project{
		Name:        o.required("name"),
		Description: o.optional("description"),
		Highlights:  o.strings("highlights"),
		Keywords:    o.strings("keywords"),
		StartDate:   o.optionalDate("startDate"),
		EndDate:     o.endDate("endDate"),
		URL:         o.optional("url"),
		Roles:       o.strings("roles"),
		Entity:      o.optional("entity"),
		Type:        o.optional("type"),
	}
}

func parseMeta(f field) *model.Meta {
	if !f.present {
		return nil
	}
	m, ok := f.value.(map[string]any)
	if !ok {
		f.report.add(f.path, ActionDropped, "not an object")
		return nil
	}
	o := newObject(m, f.path, f.report)
	meta := model.Meta{
		Canonical:    o.optional("canonical"),
		Version:      o.optional("version"),
		LastModified: o.optional("lastModified"),
	}
	o.finish()
	if meta.IsZero() {
		return nil
	}
	return &meta
}
