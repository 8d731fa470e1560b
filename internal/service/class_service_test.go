package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/cinofilo-api/internal/dto"
	"github.com/noah-isme/cinofilo-api/internal/models"
	"github.com/noah-isme/cinofilo-api/internal/repository"
)

func setupClassService(t *testing.T, name string) (ClassService, *gorm.DB, *recordingInvalidator) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Role{}, &models.Profile{}, &models.Dog{}, &models.Course{},
		&models.Class{}, &models.ClassStudent{}, &models.ClassDog{}, &models.Lesson{},
	))

	invalidator := &recordingInvalidator{}
	service := NewClassService(
		repository.NewClassRepository(db),
		repository.NewCourseRepository(db),
		repository.NewProfileRepository(db),
		validator.New(),
		nil,
		invalidator,
		zerolog.Nop(),
	)

	return service, db, invalidator
}

func TestClassCreateGeneratesInviteCode(t *testing.T) {
	service, db, _ := setupClassService(t, "class_create_test")

	course := models.Course{Name: "Puppy class"}
	require.NoError(t, db.Create(&course).Error)

	created, err := service.Create(context.Background(), dto.ClassCreateRequest{
		CourseID:    course.ID,
		EditionName: "Edizione primavera",
	})
	require.NoError(t, err)
	require.NotNil(t, created.InviteCode)
	require.Len(t, *created.InviteCode, 8)
}

func TestClassJoinByInviteCode(t *testing.T) {
	service, db, invalidator := setupClassService(t, "class_join_test")

	course := models.Course{Name: "Obbedienza avanzata"}
	require.NoError(t, db.Create(&course).Error)

	code := "JOIN1234"
	class := models.Class{CourseID: course.ID, EditionName: "Edizione estate", InviteCode: &code}
	require.NoError(t, db.Create(&class).Error)

	profileID := "ffffffff-ffff-4fff-8fff-ffffffffffff"

	joined, err := service.Join(context.Background(), profileID, dto.JoinClassRequest{InviteCode: code})
	require.NoError(t, err)
	require.Equal(t, class.ID, joined.ID)
	// Students never see the invite code back.
	require.Nil(t, joined.InviteCode)

	// The enrollment feeds the dashboard, so its cache entry must go.
	require.Equal(t, []string{profileID}, invalidator.profileIDs)

	_, err = service.Join(context.Background(), profileID, dto.JoinClassRequest{InviteCode: code})
	require.ErrorIs(t, err, ErrAlreadyEnrolled)

	_, err = service.Join(context.Background(), profileID, dto.JoinClassRequest{InviteCode: "NOPE9999"})
	require.ErrorIs(t, err, ErrInviteCodeInvalid)

	// Rejected joins leave the cache alone.
	require.Equal(t, []string{profileID}, invalidator.profileIDs)
}

func TestClassAssignDogRequiresOwnershipAndEnrollment(t *testing.T) {
	service, db, _ := setupClassService(t, "class_dog_test")

	course := models.Course{Name: "Rally obedience"}
	require.NoError(t, db.Create(&course).Error)

	code := "DOGS5678"
	class := models.Class{CourseID: course.ID, EditionName: "Edizione inverno", InviteCode: &code}
	require.NoError(t, db.Create(&class).Error)

	owner := "11111111-2222-4333-8444-555555555555"
	stranger := "66666666-7777-4888-8999-aaaaaaaaaaaa"

	dog := models.Dog{ProfileID: owner, Name: "Luna", Breed: "Border Collie"}
	require.NoError(t, db.Create(&dog).Error)

	// Not enrolled yet.
	err := service.AssignDog(context.Background(), class.ID, owner, dto.AssignDogRequest{DogID: dog.ID})
	require.ErrorIs(t, err, ErrNotEnrolled)

	_, err = service.Join(context.Background(), owner, dto.JoinClassRequest{InviteCode: code})
	require.NoError(t, err)
	_, err = service.Join(context.Background(), stranger, dto.JoinClassRequest{InviteCode: code})
	require.NoError(t, err)

	// Someone else's dog.
	err = service.AssignDog(context.Background(), class.ID, stranger, dto.AssignDogRequest{DogID: dog.ID})
	require.ErrorIs(t, err, ErrDogNotFound)

	require.NoError(t, service.AssignDog(context.Background(), class.ID, owner, dto.AssignDogRequest{DogID: dog.ID}))

	dogs, err := service.ListDogs(context.Background(), class.ID)
	require.NoError(t, err)
	require.Len(t, dogs, 1)
	require.Equal(t, "Luna", dogs[0].Dog.Name)
}
