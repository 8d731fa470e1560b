package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/cinofilo-api/internal/models"
)

func TestCategoryRepositoryReorder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)

	course := models.Course{Name: "Corso base"}
	require.NoError(t, db.Create(&course).Error)

	first := models.MaterialCategory{CourseID: course.ID, Name: "Teoria", SortOrder: 0}
	second := models.MaterialCategory{CourseID: course.ID, Name: "Pratica", SortOrder: 1}
	third := models.MaterialCategory{CourseID: course.ID, Name: "Approfondimenti", SortOrder: 2}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)
	require.NoError(t, db.Create(&third).Error)

	require.NoError(t, repo.Reorder(context.Background(), course.ID, []string{third.ID, first.ID, second.ID}))

	categories, err := repo.ListByCourse(context.Background(), course.ID)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	require.Equal(t, "Approfondimenti", categories[0].Name)
	require.Equal(t, "Teoria", categories[1].Name)
	require.Equal(t, "Pratica", categories[2].Name)
}

func TestCategoryRepositoryReorderRollsBackOnUnknownID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)

	course := models.Course{Name: "Corso base"}
	require.NoError(t, db.Create(&course).Error)

	category := models.MaterialCategory{CourseID: course.ID, Name: "Teoria", SortOrder: 5}
	require.NoError(t, db.Create(&category).Error)

	err := repo.Reorder(context.Background(), course.ID, []string{category.ID, "missing-id"})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	reloaded, err := repo.GetByID(context.Background(), category.ID)
	require.NoError(t, err)
	require.Equal(t, 5, reloaded.SortOrder, "partial updates must roll back")
}
