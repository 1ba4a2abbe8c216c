package models

// SaveFileVersion is the version written into every save file
const SaveFileVersion = "2.0.0"

// SaveFile is the durable JSON form of a document.
// Blocks are keyed by section id and carry no ids.
type SaveFile struct {
	Version           string             `json:"version"`
	Timestamp         string             `json:"timestamp"`
	CourseTopic       string             `json:"courseTopic"`
	InstructorName    string             `json:"instructorName"`
	InstructorEmail   string             `json:"instructorEmail"`
	FooterCourseInfo  string             `json:"footerCourseInfo"`
	FooterInstitution string             `json:"footerInstitution"`
	FooterCopyright   string             `json:"footerCopyright"`
	Logo              string             `json:"logo,omitempty"`
	Week              string             `json:"week"`
	Date              string             `json:"date"`
	Sections          map[string][]Block `json:"sections"`
	SectionOrder      []string           `json:"sectionOrder,omitempty"`
	SectionTitles     map[string]string  `json:"sectionTitles,omitempty"`
	AutoSaved         bool               `json:"autoSaved,omitempty"`
}
