package models

import "slices"

// SectionType is a cosmetic categorization of a section
type SectionType string

const (
	SectionTypeContent SectionType = "content"
	SectionTypeBOPPPS  SectionType = "boppps"
)

// Well-known section ids
const (
	SectionOverview              = "overview"
	SectionBridgeIn              = "bridge-in"
	SectionOutcomes              = "outcomes"
	SectionPreAssessment         = "pre-assessment"
	SectionParticipatoryLearning = "participatory-learning"
	SectionPostAssessment        = "post-assessment"
	SectionSummary               = "summary"
	SectionResources             = "resources"
)

// Section represents an ordered pedagogical phase of a lesson
type Section struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Type   SectionType `json:"type"`
	Blocks []Block     `json:"blocks"`
}

// IndexOf returns the position of the block with the given id or -1
func (s *Section) IndexOf(blockID string) int {
	return slices.IndexFunc(s.Blocks, func(b Block) bool { return b.ID == blockID })
}

// Block returns the block with the given id
func (s *Section) Block(blockID string) (Block, bool) {
	i := s.IndexOf(blockID)
	if i < 0 {
		return Block{}, false
	}
	return s.Blocks[i], true
}

// Clone returns a deep copy of the section
func (s Section) Clone() Section {
	cp := s
	cp.Blocks = make([]Block, len(s.Blocks))
	for i, b := range s.Blocks {
		cp.Blocks[i] = b.Clone()
	}
	return cp
}
