package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Progress tracks which materials of a course a learner has completed and
// the last material index viewed. Updates are last-writer-wins: the stored
// index set is overwritten wholesale, never merged.
type Progress struct {
	gorm.Model
	LearnerID          uint           `gorm:"not null;uniqueIndex:idx_progress_learner_course" json:"learnerId"`
	CourseID           uint           `gorm:"not null;uniqueIndex:idx_progress_learner_course" json:"courseId"`
	CompletedMaterials datatypes.JSON `json:"completedMaterials"`
	LastAccessedIndex  int            `gorm:"default:0" json:"lastAccessedIndex"`
}

// CompletedIndices decodes the stored material index set
func (p *Progress) CompletedIndices() []int {
	if len(p.CompletedMaterials) == 0 {
		return []int{}
	}
	var indices []int
	if err := json.Unmarshal(p.CompletedMaterials, &indices); err != nil {
		return []int{}
	}
	return indices
}

// SetCompletedIndices encodes indices into the JSON column
func (p *Progress) SetCompletedIndices(indices []int) error {
	if indices == nil {
		indices = []int{}
	}
	raw, err := json.Marshal(indices)
	if err != nil {
		return err
	}
	p.CompletedMaterials = datatypes.JSON(raw)
	return nil
}
