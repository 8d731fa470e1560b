package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/cinofilo-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Role{},
		&models.Profile{},
		&models.Dog{},
		&models.Course{},
		&models.MaterialCategory{},
		&models.Material{},
		&models.Class{},
		&models.ClassStudent{},
		&models.ClassDog{},
		&models.Lesson{},
		&models.Quiz{},
		&models.QuizSubmission{},
		&models.CaseStudy{},
		&models.CaseStudyAttempt{},
	))

	return db
}
