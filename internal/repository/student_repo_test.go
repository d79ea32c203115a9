package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/edupath-ng/edupath-go-api/internal/models"
)

func setupStudentTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Student{}))
	return db
}

func sampleStudent(studentID, email string) models.Student {
	return models.Student{
		StudentID:            studentID,
		FirstName:            "Ada",
		LastName:             "Obi",
		Sex:                  "female",
		Email:                email,
		DesiredCourse:        "Medicine",
		PreferredInstitution: "University of Lagos",
		MobileNumber:         "08030000000",
		ParentsPhoneNumber:   "08030000001",
		SubjectCombination:   datatypes.NewJSONSlice([]string{"English", "Biology"}),
		DesiredUTMEScore:     310,
		Status:               models.StudentStatusPending,
	}
}

func TestStudentRepositoryCreateReportsConflictSource(t *testing.T) {
	db := setupStudentTestDB(t)
	repo := NewStudentRepository(db)
	ctx := context.Background()

	first := sampleStudent("260000001", "ada@example.com")
	require.NoError(t, repo.Create(ctx, &first))

	dupID := sampleStudent("260000001", "other@example.com")
	require.ErrorIs(t, repo.Create(ctx, &dupID), ErrStudentIDConflict)

	dupEmail := sampleStudent("260000002", "ada@example.com")
	require.ErrorIs(t, repo.Create(ctx, &dupEmail), ErrEmailConflict)
}

func TestStudentRepositoryGetByStudentID(t *testing.T) {
	db := setupStudentTestDB(t)
	repo := NewStudentRepository(db)
	ctx := context.Background()

	student := sampleStudent("260000001", "ada@example.com")
	require.NoError(t, repo.Create(ctx, &student))

	found, err := repo.GetByStudentID(ctx, "260000001")
	require.NoError(t, err)
	require.Equal(t, student.ID, found.ID)

	_, err = repo.GetByStudentID(ctx, "260000099")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStudentRepositoryListFiltersAndPaginates(t *testing.T) {
	db := setupStudentTestDB(t)
	repo := NewStudentRepository(db)
	ctx := context.Background()

	pending := sampleStudent("260000001", "a@example.com")
	approved := sampleStudent("260000002", "b@example.com")
	approved.Status = models.StudentStatusApproved
	require.NoError(t, repo.Create(ctx, &pending))
	require.NoError(t, repo.Create(ctx, &approved))

	all, total, err := repo.List(ctx, StudentFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, all, 2)

	onlyPending, total, err := repo.List(ctx, StudentFilter{Status: models.StudentStatusPending})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, onlyPending, 1)
	require.Equal(t, "260000001", onlyPending[0].StudentID)

	paged, total, err := repo.List(ctx, StudentFilter{Page: 2, PageSize: 1})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, paged, 1)
}

func TestStudentRepositoryUpdate(t *testing.T) {
	db := setupStudentTestDB(t)
	repo := NewStudentRepository(db)
	ctx := context.Background()

	student := sampleStudent("260000001", "ada@example.com")
	require.NoError(t, repo.Create(ctx, &student))

	updated, err := repo.Update(ctx, student.ID, map[string]interface{}{
		"status":        models.StudentStatusApproved,
		"password_hash": "hash",
	})
	require.NoError(t, err)
	require.Equal(t, models.StudentStatusApproved, updated.Status)
	require.Equal(t, "hash", updated.PasswordHash)

	_, err = repo.Update(ctx, 999, map[string]interface{}{"status": models.StudentStatusApproved})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStudentRepositoryDelete(t *testing.T) {
	db := setupStudentTestDB(t)
	repo := NewStudentRepository(db)
	ctx := context.Background()

	student := sampleStudent("260000001", "ada@example.com")
	require.NoError(t, repo.Create(ctx, &student))

	require.NoError(t, repo.Delete(ctx, student.ID))
	require.ErrorIs(t, repo.Delete(ctx, student.ID), gorm.ErrRecordNotFound)
}
