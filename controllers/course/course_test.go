package courseController

import (
	"lms/config"
	"lms/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCourseWithBonus(t *testing.T) {
	db := newTestDB(t, "course_bonus")
	instructor := createUserWithAccount(t, db, "John", "john@test.com", models.RoleInstructor, "ACC_I1", 500)
	createPlatformAccount(t, db, 10000)

	materials := []MaterialInput{
		{Type: models.MaterialTypeVideo, Title: "Intro", URL: "intro.mp4"},
		{Type: models.MaterialTypeText, Title: "Basics", Content: "Some text"},
		{Type: models.MaterialTypeMCQ, Title: "Quiz", Content: "Questions"},
	}

	course, payment, err := createCourseWithBonus(db, instructor, "Go Fundamentals", "Learn Go", 149, materials)
	require.NoError(t, err)
	require.NotNil(t, course)

	assert.InDelta(t, config.CourseUploadBonus, payment, 0.001)
	assert.InDelta(t, 700, balanceOf(t, db, "ACC_I1"), 0.001)
	assert.InDelta(t, 9800, balanceOf(t, db, "ACC_LMS"), 0.001)

	// Materials keep their upload order
	var saved models.Material
	require.NoError(t, db.Where("course_id = ? AND position = ?", course.ID, 1).First(&saved).Error)
	assert.Equal(t, "Basics", saved.Title)
	assert.Equal(t, models.MaterialTypeText, saved.MaterialType)

	var materialCount int64
	require.NoError(t, db.Model(&models.Material{}).Where("course_id = ?", course.ID).Count(&materialCount).Error)
	assert.Equal(t, int64(3), materialCount)
}

func TestCreateCourseWithoutPlatformAccount(t *testing.T) {
	db := newTestDB(t, "course_noplatform")
	instructor := createUserWithAccount(t, db, "John", "john@test.com", models.RoleInstructor, "ACC_I1", 500)

	course, payment, err := createCourseWithBonus(db, instructor, "Go Fundamentals", "Learn Go", 149, nil)
	require.NoError(t, err)
	require.NotNil(t, course)

	// No platform account to pay from: the course survives, the bonus is skipped
	assert.InDelta(t, 0, payment, 0.001)
	assert.InDelta(t, 500, balanceOf(t, db, "ACC_I1"), 0.001)

	var courseCount int64
	require.NoError(t, db.Model(&models.Course{}).Count(&courseCount).Error)
	assert.Equal(t, int64(1), courseCount)
}

func TestCreateCourseInstructorWithoutAccount(t *testing.T) {
	db := newTestDB(t, "course_noaccount")
	instructor := createUserWithAccount(t, db, "John", "john@test.com", models.RoleInstructor, "", 0)
	createPlatformAccount(t, db, 10000)

	course, payment, err := createCourseWithBonus(db, instructor, "Go Fundamentals", "Learn Go", 149, nil)
	require.NoError(t, err)
	require.NotNil(t, course)

	assert.InDelta(t, 0, payment, 0.001)
	assert.InDelta(t, 10000, balanceOf(t, db, "ACC_LMS"), 0.001)
}

func TestCreateCoursePlatformShortOfFunds(t *testing.T) {
	db := newTestDB(t, "course_platformbroke")
	instructor := createUserWithAccount(t, db, "John", "john@test.com", models.RoleInstructor, "ACC_I1", 500)
	createPlatformAccount(t, db, 50)

	course, payment, err := createCourseWithBonus(db, instructor, "Go Fundamentals", "Learn Go", 149, nil)
	require.NoError(t, err)
	require.NotNil(t, course)

	assert.InDelta(t, 0, payment, 0.001)
	assert.InDelta(t, 500, balanceOf(t, db, "ACC_I1"), 0.001)
	assert.InDelta(t, 50, balanceOf(t, db, "ACC_LMS"), 0.001)
}

func TestBuildMaterialsPositions(t *testing.T) {
	inputs := []MaterialInput{
		{Type: models.MaterialTypeVideo, Title: "A", URL: "a.mp4"},
		{Type: models.MaterialTypeAudio, Title: "B", URL: "b.mp3"},
		{Type: models.MaterialTypeText, Title: "C", Content: "c"},
	}

	materials := buildMaterials(7, inputs)
	require.Len(t, materials, 3)
	for i, m := range materials {
		assert.Equal(t, i, m.Position)
		assert.Equal(t, uint(7), m.CourseID)
		assert.Equal(t, inputs[i].Title, m.Title)
	}
}
