package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment ties a learner to a purchased course. The composite unique index
// is the authoritative guard against double enrollment: two concurrent
// requests can both pass the read check, but only one insert survives.
type Enrollment struct {
	gorm.Model
	LearnerID   uint       `gorm:"not null;uniqueIndex:idx_enrollments_learner_course" json:"learnerId"`
	CourseID    uint       `gorm:"not null;uniqueIndex:idx_enrollments_learner_course" json:"courseId"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	Progress    float64    `gorm:"default:0" json:"progress"`
	CompletedAt *time.Time `json:"completedAt"`
	Course      Course     `gorm:"foreignKey:CourseID" json:"-"`
}
