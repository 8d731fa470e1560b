package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/cinofilo-api/internal/models"
)

// ProfileFilter narrows profile queries.
type ProfileFilter struct {
	Role   string
	Search string
}

// ProfileRepository defines data operations for user profiles and their dogs.
type ProfileRepository interface {
	List(ctx context.Context, filter ProfileFilter) ([]models.Profile, error)
	GetByID(ctx context.Context, id string) (models.Profile, error)
	GetByEmail(ctx context.Context, email string) (models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, profile *models.Profile) error
	ListDogs(ctx context.Context, profileID string) ([]models.Dog, error)
	GetDog(ctx context.Context, id string) (models.Dog, error)
	CreateDog(ctx context.Context, dog *models.Dog) error
	DeleteDog(ctx context.Context, id string) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository instantiates the repository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) List(ctx context.Context, filter ProfileFilter) ([]models.Profile, error) {
	query := r.db.WithContext(ctx).Model(&models.Profile{})

	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("full_name LIKE ? OR email LIKE ?", pattern, pattern)
	}

	var profiles []models.Profile
	if err := query.Order("created_at DESC").Find(&profiles).Error; err != nil {
		return nil, err
	}

	return profiles, nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Preload("Dogs").First(&profile, "id = ?", id).Error; err != nil {
		return models.Profile{}, err
	}

	return profile, nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, "email = ?", email).Error; err != nil {
		return models.Profile{}, err
	}

	return profile, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *profileRepository) ListDogs(ctx context.Context, profileID string) ([]models.Dog, error) {
	var dogs []models.Dog
	if err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("created_at ASC").
		Find(&dogs).Error; err != nil {
		return nil, err
	}

	return dogs, nil
}

func (r *profileRepository) GetDog(ctx context.Context, id string) (models.Dog, error) {
	var dog models.Dog
	if err := r.db.WithContext(ctx).First(&dog, "id = ?", id).Error; err != nil {
		return models.Dog{}, err
	}

	return dog, nil
}

func (r *profileRepository) CreateDog(ctx context.Context, dog *models.Dog) error {
	return r.db.WithContext(ctx).Create(dog).Error
}

func (r *profileRepository) DeleteDog(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Dog{}, "id = ?", id).Error
}
