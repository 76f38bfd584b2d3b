package normalize

import (
	"fmt"

	"buildyourcv/resume/model"
)

// Policy states how an invalid field is repaired.
type Policy string

const (
	// PolicyDefault replaces the field with its sentinel value.
	PolicyDefault Policy = "default"
	// PolicyDropField omits the whole field.
	PolicyDropField Policy = "drop_field"
	// PolicyDropElement omits only the offending list element.
	PolicyDropElement Policy = "drop_element"
)

// field is one top-level value handed to a rule.
type field struct {
	value   any
	present bool
	path    string
	report  *Report
}

type rule struct {
	key    string
	policy Policy
	apply  func(f field, policy Policy, out *model.Resume)
}

// rules is the repair table for the top-level record, in output order.
var rules = []rule{
	{key: "$schema", policy: PolicyDropField, apply: func(f field, _ Policy, out *model.Resume) {
		out.Schema = scalarField(f)
	}},
	{key: "basics", policy: PolicyDefault, apply: func(f field, _ Policy, out *model.Resume) {
		out.Basics = parseBasics(f)
	}},
	{key: "work", policy: PolicyDropElement, apply: func(f field, p Policy, out *model.Resume) {
		out.Work = salvage(f, p, parseWork)
	}},
	{key: "volunteer", policy: PolicyDropElement, apply: func(f field, p Policy, out *model.Resume) {
		out.Volunteer = salvage(f, p, parseVolunteer)
	}},
	{key: "education", policy: PolicyDropElement, apply: func(f field, p Policy, out *model.Resume) {
		out.Education = salvage(f, p, parseEducation)
	}},
	{key: "awards", policy: PolicyDropElement, apply: func(f field, p Policy, out *model.Resume) {
		out.Awards = salvage(f, p, parseAward)
	}},
	{key: "certificates", policy: PolicyDropElement, apply: func(f field, p Policy, out *model.Resume) {
		out.Certificates = salvage(f, p, parseCertificate)
	}},
	{key: "publications", policy: PolicyDropElement, apply: func(f field, p Policy, out *model.Resume) {
		out.Publications = salvage(f, p, parsePublication)
	}},
	{key: "skills", policy: PolicyDropElement, apply: func(f field, p Policy, out *model.Resume) {
		out.Skills = salvage(f, p, parseSkill)
	}},
	{key: "languages", policy: PolicyDropElement, apply: func(f field, p Policy, out *model.Resume) {
		out.Languages = salvage(f, p, parseLanguage)
	}},
	{key: "interests", policy: PolicyDropElement, apply: func(f field, p Policy, out *model.Resume) {
		out.Interests = salvage(f, p, parseInterest)
	}},
	{key: "references", policy: PolicyDropElement, apply: func(f field, p Policy, out *model.Resume) {
		out.References = salvage(f, p, parseReference)
	}},
	{key: "projects", policy: PolicyDropElement, apply: func(f field, p Policy, out *model.Resume) {
		out.Projects = salvage(f, p, parseProject)
	}},
	{key: "meta", policy: PolicyDropField, apply: func(f field, _ Policy, out *model.Resume) {
		out.Meta = parseMeta(f)
	}},
}

// PolicyFor returns the declared policy of a top-level field.
func PolicyFor(key string) (Policy, bool) {
	for _, r := range rules {
		if r.key == key {
			return r.policy, true
		}
	}
	return "", false
}

// salvage parses a list of objects. Anything other than a list drops the
// whole field. Elements that fail their own checks are handled per policy; the
// result is nil when nothing survives.
func salvage[T any](f field, policy Policy, parse func(o *object) T) []T {
	if !f.present {
		return nil
	}
	var items []any
	switch v := f.value.(type) {
	case []any:
		items = v
	default:
		f.report.add(f.path, ActionDropped, "not a list")
		return nil
	}

	var out []T
	for i, item := range items {
		path := fmt.Sprintf("%s[%d]", f.path, i)
		m, ok := item.(map[string]any)
		if !ok {
			if policy == PolicyDropField {
				f.report.add(f.path, ActionDropped, path+" is not an object")
				return nil
			}
			f.report.add(path, ActionDropped, "not an object")
			continue
		}
		var local Report
		o := newObject(m, path, &local)
		v := parse(o)
		if !o.valid() {
			if policy == PolicyDropField {
				f.report.add(f.path, ActionDropped, path+" "+o.invalid)
				return nil
			}
			f.report.add(path, ActionDropped, o.invalid)
			continue
		}
		o.finish()
		f.report.merge(local)
		out = append(out, v)
	}
	return out
}

func scalarField(f field) *string {
	if !f.present {
		return nil
	}
	holder := newObject(map[string]any{f.path: f.value}, "", f.report)
	return holder.optional(f.path)
}
