package model

// Clone returns a deep copy of r that shares no slices or pointers with it.
func Clone(r Resume) Resume {
	out := Resume{
		Schema: cloneString(r.Schema),
		Basics: cloneBasics(r.Basics),
	}
	out.Work = cloneEach(r.Work, func(w Work) Work {
		return Work{
			Name:       cloneString(w.Name),
			Company:    w.Company,
			Position:   w.Position,
			URL:        cloneString(w.URL),
			StartDate:  w.StartDate,
			EndDate:    cloneString(w.EndDate),
			Summary:    cloneString(w.Summary),
			Highlights: cloneStrings(w.Highlights),
		}
	})
	out.Volunteer = cloneEach(r.Volunteer, func(v Volunteer) Volunteer {
		return Volunteer{
			Organization: v.Organization,
			Position:     v.Position,
			URL:          cloneString(v.URL),
			StartDate:    v.StartDate,
			EndDate:      cloneString(v.EndDate),
			Summary:      cloneString(v.Summary),
			Highlights:   cloneStrings(v.Highlights),
		}
	})
	out.Education = cloneEach(r.Education, func(e Education) Education {
		return Education{
			Institution: e.Institution,
			URL:         cloneString(e.URL),
			Area:        e.Area,
			StudyType:   e.StudyType,
			StartDate:   e.StartDate,
			EndDate:     cloneString(e.EndDate),
			Score:       cloneString(e.Score),
			Courses:     cloneStrings(e.Courses),
		}
	})
	out.Awards = cloneEach(r.Awards, func(a Award) Award {
		a.Summary = cloneString(a.Summary)
		return a
	})
	out.Certificates = cloneEach(r.Certificates, func(c Certificate) Certificate {
		c.URL = cloneString(c.URL)
		return c
	})
	out.Publications = cloneEach(r.Publications, func(p Publication) Publication {
		p.URL = cloneString(p.URL)
		p.Summary = cloneString(p.Summary)
		return p
	})
	out.Skills = cloneEach(r.Skills, func(s Skill) Skill {
		return Skill{Name: s.Name, Level: cloneString(s.Level), Keywords: cloneStrings(s.Keywords)}
	})
	out.Languages = cloneEach(r.Languages, func(l Language) Language { return l })
	out.Interests = cloneEach(r.Interests, func(i Interest) Interest {
		return Interest{Name: i.Name, Keywords: cloneStrings(i.Keywords)}
	})
	out.References = cloneEach(r.References, func(ref Reference) Reference { return ref })
	out.Projects = cloneEach(r.Projects, cloneProject)
	if r.Meta != nil {
		out.Meta = &Meta{
			Canonical:    cloneString(r.Meta.Canonical),
			Version:      cloneString(r.Meta.Version),
			LastModified: cloneString(r.Meta.LastModified),
		}
	}
	return out
}

func cloneBasics(b Basics) Basics {
	out := Basics{
		Name:    b.Name,
		Label:   cloneString(b.Label),
		Image:   cloneString(b.Image),
		Email:   cloneString(b.Email),
		Phone:   cloneString(b.Phone),
		URL:     cloneString(b.URL),
		Summary: cloneString(b.Summary),
	}
	if b.Location != nil {
		out.Location = &Location{
			Address:     cloneString(b.Location.Address),
			PostalCode:  cloneString(b.Location.PostalCode),
			City:        cloneString(b.Location.City),
			CountryCode: cloneString(b.Location.CountryCode),
			Region:      cloneString(b.Location.Region),
		}
	}
	out.Profiles = cloneEach(b.Profiles, func(p Profile) Profile {
		p.Username = cloneString(p.Username)
		return p
	})
	return out
}

func cloneProject(p Project) Project {
	return Project{
		Name:        p.Name,
		Description: cloneString(p.Description),
		Highlights:  cloneStrings(p.Highlights),
		Keywords:    cloneStrings(p.Keywords),
		StartDate:   cloneString(p.StartDate),
		EndDate:     cloneString(p.EndDate),
		URL:         cloneString(p.URL),
		Roles:       cloneStrings(p.Roles),
		Entity:      cloneString(p.Entity),
		Type:        cloneString(p.Type),
	}
}

func cloneEach[T any](items []T, fn func(T) T) []T {
	if len(items) == 0 {
		return nil
	}
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}

func cloneStrings(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	return append([]string(nil), items...)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
