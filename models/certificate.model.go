package models

import "gorm.io/gorm"

// Certificate is issued once per completed enrollment and never mutated.
// Learner, course and instructor names are denormalized into the record so
// the certificate stays stable even if the source rows change later.
type Certificate struct {
	gorm.Model
	CertificateID  string `gorm:"unique;not null" json:"certificateId"`
	LearnerID      uint   `gorm:"index;not null" json:"learnerId"`
	LearnerName    string `json:"learnerName"`
	CourseID       uint   `gorm:"index;not null" json:"courseId"`
	CourseTitle    string `json:"courseTitle"`
	InstructorName string `json:"instructor"`
}
