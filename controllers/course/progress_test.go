package courseController

import (
	"lms/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertProgressLastWriterWins(t *testing.T) {
	db := newTestDB(t, "progress_lww")
	learner := createUserWithAccount(t, db, "Alice", "alice@test.com", models.RoleLearner, "ACC_L1", 1000)
	instructor := createUserWithAccount(t, db, "John", "john@test.com", models.RoleInstructor, "ACC_I1", 500)
	course := createTestCourse(t, db, instructor, "Web Development", 99, 3)

	progress, err := upsertProgress(db, learner.ID, course.ID, []int{0}, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, progress.CompletedIndices())
	assert.Equal(t, 0, progress.LastAccessedIndex)

	progress, err = upsertProgress(db, learner.ID, course.ID, []int{0, 1}, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, progress.CompletedIndices())
	assert.Equal(t, 1, progress.LastAccessedIndex)

	// The smaller set overwrites: no merging with earlier writes
	progress, err = upsertProgress(db, learner.ID, course.ID, []int{2}, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, progress.CompletedIndices())

	var rowCount int64
	require.NoError(t, db.Model(&models.Progress{}).Count(&rowCount).Error)
	assert.Equal(t, int64(1), rowCount)
}

func TestUpsertProgressIndexOutOfRange(t *testing.T) {
	db := newTestDB(t, "progress_range")
	learner := createUserWithAccount(t, db, "Alice", "alice@test.com", models.RoleLearner, "ACC_L1", 1000)
	instructor := createUserWithAccount(t, db, "John", "john@test.com", models.RoleInstructor, "ACC_I1", 500)
	course := createTestCourse(t, db, instructor, "Web Development", 99, 3)

	_, err := upsertProgress(db, learner.ID, course.ID, []int{0, 3}, 0)
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = upsertProgress(db, learner.ID, course.ID, []int{-1}, 0)
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = upsertProgress(db, learner.ID, course.ID, []int{0}, 3)
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	// Rejected updates leave nothing behind except the lazily created row
	var progress models.Progress
	err = db.Where("learner_id = ? AND course_id = ?", learner.ID, course.ID).First(&progress).Error
	if err == nil {
		assert.Empty(t, progress.CompletedIndices())
	}
}

func TestGetOrCreateProgress(t *testing.T) {
	db := newTestDB(t, "progress_create")
	learner := createUserWithAccount(t, db, "Alice", "alice@test.com", models.RoleLearner, "ACC_L1", 1000)
	instructor := createUserWithAccount(t, db, "John", "john@test.com", models.RoleInstructor, "ACC_I1", 500)
	course := createTestCourse(t, db, instructor, "Web Development", 99, 3)

	progress, err := getOrCreateProgress(db, learner.ID, course.ID)
	require.NoError(t, err)
	assert.Empty(t, progress.CompletedIndices())
	assert.Equal(t, 0, progress.LastAccessedIndex)

	again, err := getOrCreateProgress(db, learner.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, progress.ID, again.ID)

	var rowCount int64
	require.NoError(t, db.Model(&models.Progress{}).Count(&rowCount).Error)
	assert.Equal(t, int64(1), rowCount)
}
