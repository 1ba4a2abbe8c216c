package models

import "slices"

// Header holds the lesson metadata shown in the export header and footer
type Header struct {
	CourseTopic       string `json:"courseTopic"`
	InstructorName    string `json:"instructorName"`
	InstructorEmail   string `json:"instructorEmail"`
	FooterCourseInfo  string `json:"footerCourseInfo"`
	FooterInstitution string `json:"footerInstitution"`
	FooterCopyright   string `json:"footerCopyright"`
	Logo              string `json:"logo,omitempty"`
}

// Document is the root aggregate of a lesson
type Document struct {
	Header
	Week     string    `json:"week"`
	Date     string    `json:"date"`
	Sections []Section `json:"sections"`
}

// SectionIndex returns the position of the section with the given id or -1
func (d *Document) SectionIndex(sectionID string) int {
	return slices.IndexFunc(d.Sections, func(s Section) bool { return s.ID == sectionID })
}

// Section returns a pointer to the section with the given id
func (d *Document) Section(sectionID string) (*Section, bool) {
	i := d.SectionIndex(sectionID)
	if i < 0 {
		return nil, false
	}
	return &d.Sections[i], true
}

// Clone returns a deep copy of the document
func (d Document) Clone() Document {
	cp := d
	cp.Sections = make([]Section, len(d.Sections))
	for i, s := range d.Sections {
		cp.Sections[i] = s.Clone()
	}
	return cp
}

// HeaderUpdate is a partial update of the document header (nil fields are untouched)
type HeaderUpdate struct {
	CourseTopic       *string `json:"courseTopic,omitempty"`
	InstructorName    *string `json:"instructorName,omitempty"`
	InstructorEmail   *string `json:"instructorEmail,omitempty"`
	FooterCourseInfo  *string `json:"footerCourseInfo,omitempty"`
	FooterInstitution *string `json:"footerInstitution,omitempty"`
	FooterCopyright   *string `json:"footerCopyright,omitempty"`
	Logo              *string `json:"logo,omitempty"`
	Week              *string `json:"week,omitempty"`
	Date              *string `json:"date,omitempty"`
}

// Apply copies every set field onto the document
func (u *HeaderUpdate) Apply(d *Document) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&d.CourseTopic, u.CourseTopic)
	set(&d.InstructorName, u.InstructorName)
	set(&d.InstructorEmail, u.InstructorEmail)
	set(&d.FooterCourseInfo, u.FooterCourseInfo)
	set(&d.FooterInstitution, u.FooterInstitution)
	set(&d.FooterCopyright, u.FooterCopyright)
	set(&d.Logo, u.Logo)
	set(&d.Week, u.Week)
	set(&d.Date, u.Date)
}

// IsEmpty reports whether no field is set
func (u *HeaderUpdate) IsEmpty() bool {
	return u.CourseTopic == nil && u.InstructorName == nil && u.InstructorEmail == nil &&
		u.FooterCourseInfo == nil && u.FooterInstitution == nil && u.FooterCopyright == nil &&
		u.Logo == nil && u.Week == nil && u.Date == nil
}
