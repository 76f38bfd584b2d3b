package model

// DefaultTemplate returns the built-in illustrative resume shown before any
// upload. Each call returns an independent value.
func DefaultTemplate() Resume {
	return Resume{
		Basics: Basics{
			Name:    "John Doe",
			Label:   String("Software Engineer"),
			Email:   String("john@example.com"),
			Phone:   String("+1 (555) 123-4567"),
			Summary: String("A passionate software engineer with experience in web development."),
			Location: &Location{
				City:        String("San Francisco"),
				CountryCode: String("US"),
			},
			Profiles: []Profile{
				{Network: "LinkedIn", URL: "https://linkedin.com/in/johndoe"},
				{Network: "GitHub", URL: "https://github.com/johndoe"},
			},
		},
		Work: []Work{
			{
				Company:   "Tech Company",
				Position:  "Senior Software Engineer",
				StartDate: "2020-01",
				EndDate:   String(Present),
				Summary:   String("Leading development of web applications"),
				Highlights: []string{
					"Led a team of 5 developers",
					"Improved application performance by 40%",
					"Implemented CI/CD pipelines",
				},
			},
		},
		Education: []Education{
			{
				Institution: "University of Technology",
				Area:        "Computer Science",
				StudyType:   "Bachelor",
				StartDate:   "2014-09",
				EndDate:     String("2018-06"),
			},
		},
		Skills: []Skill{
			{Name: "Frontend", Keywords: []string{"React", "TypeScript", "Next.js", "Tailwind CSS"}},
			{Name: "Backend", Keywords: []string{"Node.js", "Python", "PostgreSQL"}},
		},
		Projects: []Project{
			{
				Name:        "Open Source Project",
				Description: String("A popular open source tool"),
				Highlights:  []string{"1000+ GitHub stars", "Used by 500+ developers"},
				URL:         String("https://github.com/example/project"),
			},
		},
		Languages: []Language{
			{Language: "English", Fluency: "Native"},
			{Language: "Spanish", Fluency: "Intermediate"},
		},
	}
}
