package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/cinofilo-api/internal/models"
)

func TestClassRepositoryInviteCodeLookup(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClassRepository(db)

	course := models.Course{Name: "Puppy class"}
	require.NoError(t, db.Create(&course).Error)

	code := "WOOF2026"
	class := models.Class{CourseID: course.ID, EditionName: "Primavera 2026", InviteCode: &code}
	require.NoError(t, repo.Create(context.Background(), &class))

	found, err := repo.GetByInviteCode(context.Background(), "WOOF2026")
	require.NoError(t, err)
	require.Equal(t, class.ID, found.ID)
	require.Equal(t, "Puppy class", found.Course.Name)

	_, err = repo.GetByInviteCode(context.Background(), "NOPE")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestClassRepositoryEnrollment(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClassRepository(db)

	course := models.Course{Name: "Agility"}
	require.NoError(t, db.Create(&course).Error)
	class := models.Class{CourseID: course.ID, EditionName: "Autunno 2026"}
	require.NoError(t, db.Create(&class).Error)
	student := models.Profile{Email: "s@example.com", FullName: "Mario Rossi", Role: models.RoleStudent}
	require.NoError(t, db.Create(&student).Error)

	enrolled, err := repo.IsEnrolled(context.Background(), class.ID, student.ID)
	require.NoError(t, err)
	require.False(t, enrolled)

	require.NoError(t, repo.Enroll(context.Background(), &models.ClassStudent{ClassID: class.ID, ProfileID: student.ID}))

	enrolled, err = repo.IsEnrolled(context.Background(), class.ID, student.ID)
	require.NoError(t, err)
	require.True(t, enrolled)

	students, err := repo.ListStudents(context.Background(), class.ID)
	require.NoError(t, err)
	require.Len(t, students, 1)
	require.Equal(t, "Mario Rossi", students[0].Profile.FullName)
	require.False(t, students[0].EnrolledAt.IsZero())

	classes, err := repo.ListEnrollments(context.Background(), student.ID)
	require.NoError(t, err)
	require.Len(t, classes, 1)
	require.Equal(t, "Agility", classes[0].Course.Name)
}
