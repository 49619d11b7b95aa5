package models

import "gorm.io/gorm"

const (
	MaterialTypeVideo = "VIDEO"
	MaterialTypeAudio = "AUDIO"
	MaterialTypeText  = "TEXT"
	MaterialTypeMCQ   = "MCQ"
)

// MaterialTypes lists the accepted content types for course materials
var MaterialTypes = []string{MaterialTypeVideo, MaterialTypeAudio, MaterialTypeText, MaterialTypeMCQ}

// Course is a sellable unit of the catalog with an ordered list of materials
type Course struct {
	gorm.Model
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Price          float64    `gorm:"not null;default:0" json:"price"`
	InstructorID   uint       `gorm:"index;not null" json:"instructorId"`
	InstructorName string     `json:"instructor"`
	Materials      []Material `gorm:"foreignKey:CourseID" json:"materials"`
	IsDeleted      bool       `gorm:"default:false" json:"-"`
}

// Material is one unit of course content. Position gives the order inside
// the course; the list is replaced wholesale by the owning instructor.
type Material struct {
	gorm.Model
	CourseID     uint   `gorm:"index;not null" json:"courseId"`
	Position     int    `gorm:"not null;default:0" json:"position"`
	MaterialType string `gorm:"type:varchar(20);not null" json:"type"`
	Title        string `json:"title"`
	Content      string `gorm:"type:text" json:"content"`
	URL          string `json:"url"`
}

// IsValidMaterialType reports whether t is one of the accepted material types
func IsValidMaterialType(t string) bool {
	for _, mt := range MaterialTypes {
		if mt == t {
			return true
		}
	}
	return false
}
