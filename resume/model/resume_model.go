package model

import (
	"regexp"
	"strings"
)

// UnknownName is substituted for a missing basics.name.
const UnknownName = "Unknown"

// Present marks an ongoing engagement in an endDate field.
const Present = "Present"

// ReferencePlaceholder is the conventional text for references offered on request.
const ReferencePlaceholder = "Available upon request"

// Resume is the canonical JSON Resume record. Slice order is presentation order.
type Resume struct {
	Schema       *string       `json:"$schema,omitempty"`
	Basics       Basics        `json:"basics"`
	Work         []Work        `json:"work,omitempty"`
	Volunteer    []Volunteer   `json:"volunteer,omitempty"`
	Education    []Education   `json:"education,omitempty"`
	Awards       []Award       `json:"awards,omitempty"`
	Certificates []Certificate `json:"certificates,omitempty"`
	Publications []Publication `json:"publications,omitempty"`
	Skills       []Skill       `json:"skills,omitempty"`
	Languages    []Language    `json:"languages,omitempty"`
	Interests    []Interest    `json:"interests,omitempty"`
	References   []Reference   `json:"references,omitempty"`
	Projects     []Project     `json:"projects,omitempty"`
	Meta         *Meta         `json:"meta,omitempty"`
}

// Basics carries identity and contact details. Name is never empty.
type Basics struct {
	Name     string    `json:"name"`
	Label    *string   `json:"label,omitempty"`
	Image    *string   `json:"image,omitempty"`
	Email    *string   `json:"email,omitempty"`
	Phone    *string   `json:"phone,omitempty"`
	URL      *string   `json:"url,omitempty"`
	Summary  *string   `json:"summary,omitempty"`
	Location *Location `json:"location,omitempty"`
	Profiles []Profile `json:"profiles,omitempty"`
}

// Location fields are independently optional.
type Location struct {
	Address     *string `json:"address,omitempty"`
	PostalCode  *string `json:"postalCode,omitempty"`
	City        *string `json:"city,omitempty"`
	CountryCode *string `json:"countryCode,omitempty"`
	Region      *string `json:"region,omitempty"`
}

// IsZero reports whether no location field is set.
func (l Location) IsZero() bool {
	return l.Address == nil && l.PostalCode == nil && l.City == nil && l.CountryCode == nil && l.Region == nil
}

// Profile is a social or professional network presence.
type Profile struct {
	Network  string  `json:"network"`
	Username *string `json:"username,omitempty"`
	URL      string  `json:"url"`
}

// Work is an employment entry. StartDate is YYYY-MM, YYYY, or empty when
// unknown; EndDate is YYYY-MM, YYYY, Present, the CV's own wording, or absent.
type Work struct {
	Name       *string  `json:"name,omitempty"`
	Company    string   `json:"company"`
	Position   string   `json:"position"`
	URL        *string  `json:"url,omitempty"`
	StartDate  string   `json:"startDate"`
	EndDate    *string  `json:"endDate,omitempty"`
	Summary    *string  `json:"summary,omitempty"`
	Highlights []string `json:"highlights,omitempty"`
}

// Volunteer is an unpaid engagement, dated like Work.
type Volunteer struct {
	Organization string   `json:"organization"`
	Position     string   `json:"position"`
	URL          *string  `json:"url,omitempty"`
	StartDate    string   `json:"startDate"`
	EndDate      *string  `json:"endDate,omitempty"`
	Summary      *string  `json:"summary,omitempty"`
	Highlights   []string `json:"highlights,omitempty"`
}

// Education is a course of study.
type Education struct {
	Institution string   `json:"institution"`
	URL         *string  `json:"url,omitempty"`
	Area        string   `json:"area"`
	StudyType   string   `json:"studyType"`
	StartDate   string   `json:"startDate"`
	EndDate     *string  `json:"endDate,omitempty"`
	Score       *string  `json:"score,omitempty"`
	Courses     []string `json:"courses,omitempty"`
}

type Award struct {
	Title   string  `json:"title"`
	Date    string  `json:"date"`
	Awarder string  `json:"awarder"`
	Summary *string `json:"summary,omitempty"`
}

type Certificate struct {
	Name   string  `json:"name"`
	Date   string  `json:"date"`
	Issuer string  `json:"issuer"`
	URL    *string `json:"url,omitempty"`
}

type Publication struct {
	Name        string  `json:"name"`
	Publisher   string  `json:"publisher"`
	ReleaseDate string  `json:"releaseDate"`
	URL         *string `json:"url,omitempty"`
	Summary     *string `json:"summary,omitempty"`
}

// Skill groups keywords under a category name.
type Skill struct {
	Name     string   `json:"name"`
	Level    *string  `json:"level,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// Language keeps Fluency even when empty; the key is always emitted.
type Language struct {
	Language string `json:"language"`
	Fluency  string `json:"fluency"`
}

type Interest struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords,omitempty"`
}

type Reference struct {
	Name      string `json:"name"`
	Reference string `json:"reference"`
}

type Project struct {
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Highlights  []string `json:"highlights,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	StartDate   *string  `json:"startDate,omitempty"`
	EndDate     *string  `json:"endDate,omitempty"`
	URL         *string  `json:"url,omitempty"`
	Roles       []string `json:"roles,omitempty"`
	Entity      *string  `json:"entity,omitempty"`
	Type        *string  `json:"type,omitempty"`
}

type Meta struct {
	Canonical    *string `json:"canonical,omitempty"`
	Version      *string `json:"version,omitempty"`
	LastModified *string `json:"lastModified,omitempty"`
}

// IsZero reports whether no meta field is set.
func (m Meta) IsZero() bool {
	return m.Canonical == nil && m.Version == nil && m.LastModified == nil
}

// String returns a pointer to a copy of s.
func String(s string) *string {
	return &s
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var (
	monthDatePattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
	yearDatePattern  = regexp.MustCompile(`^\d{4}$`)
)

// IsMonthDate reports whether value is a YYYY-MM date.
func IsMonthDate(value string) bool {
	return monthDatePattern.MatchString(value)
}

// IsYearDate reports whether value is a bare YYYY year, used when a CV gives
// no month.
func IsYearDate(value string) bool {
	return yearDatePattern.MatchString(value)
}

// IsResumeDate reports whether value is in one of the canonical date forms.
func IsResumeDate(value string) bool {
	return IsMonthDate(value) || IsYearDate(value)
}

// IsOngoing reports whether an endDate denotes an engagement that has not ended.
// An absent endDate is ongoing.
func IsOngoing(endDate *string) bool {
	return endDate == nil || strings.EqualFold(strings.TrimSpace(*endDate), Present)
}

// DisplayEndDate renders an endDate for presentation, labelling absence as Present.
func DisplayEndDate(endDate *string) string {
	if IsOngoing(endDate) {
		return Present
	}
	return *endDate
}
