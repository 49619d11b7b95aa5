package courseController

import (
	"lms/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueCertificate(t *testing.T) {
	db := newTestDB(t, "cert_issue")
	learner := createUserWithAccount(t, db, "Alice", "alice@test.com", models.RoleLearner, "ACC_L1", 1000)
	instructor := createUserWithAccount(t, db, "John", "john@test.com", models.RoleInstructor, "ACC_I1", 500)
	course := createTestCourse(t, db, instructor, "Web Development", 99, 3)

	require.NoError(t, db.Create(&models.Enrollment{
		LearnerID: learner.ID,
		CourseID:  course.ID,
	}).Error)

	certificate, err := issueCertificate(db, learner.ID, course.ID)
	require.NoError(t, err)
	require.NotNil(t, certificate)

	assert.NotEmpty(t, certificate.CertificateID)
	assert.Equal(t, "Alice", certificate.LearnerName)
	assert.Equal(t, "Web Development", certificate.CourseTitle)
	assert.Equal(t, "John", certificate.InstructorName)

	var enrollment models.Enrollment
	require.NoError(t, db.Where("learner_id = ? AND course_id = ?", learner.ID, course.ID).First(&enrollment).Error)
	assert.True(t, enrollment.Completed)
	assert.InDelta(t, 100, enrollment.Progress, 0.001)
	require.NotNil(t, enrollment.CompletedAt)
}

func TestIssueCertificateTwice(t *testing.T) {
	db := newTestDB(t, "cert_twice")
	learner := createUserWithAccount(t, db, "Alice", "alice@test.com", models.RoleLearner, "ACC_L1", 1000)
	instructor := createUserWithAccount(t, db, "John", "john@test.com", models.RoleInstructor, "ACC_I1", 500)
	course := createTestCourse(t, db, instructor, "Web Development", 99, 3)

	require.NoError(t, db.Create(&models.Enrollment{
		LearnerID: learner.ID,
		CourseID:  course.ID,
	}).Error)

	_, err := issueCertificate(db, learner.ID, course.ID)
	require.NoError(t, err)

	_, err = issueCertificate(db, learner.ID, course.ID)
	require.ErrorIs(t, err, ErrAlreadyCompleted)

	var certCount int64
	require.NoError(t, db.Model(&models.Certificate{}).Count(&certCount).Error)
	assert.Equal(t, int64(1), certCount)
}

func TestIssueCertificateNotEnrolled(t *testing.T) {
	db := newTestDB(t, "cert_notenrolled")
	learner := createUserWithAccount(t, db, "Alice", "alice@test.com", models.RoleLearner, "ACC_L1", 1000)
	instructor := createUserWithAccount(t, db, "John", "john@test.com", models.RoleInstructor, "ACC_I1", 500)
	course := createTestCourse(t, db, instructor, "Web Development", 99, 3)

	_, err := issueCertificate(db, learner.ID, course.ID)
	require.ErrorIs(t, err, ErrNotEnrolled)

	var certCount int64
	require.NoError(t, db.Model(&models.Certificate{}).Count(&certCount).Error)
	assert.Equal(t, int64(0), certCount)
}
