package repository

import (
	"errors"
	"time"

	"github.com/nbagirov/tapreflex/internal/domain"

	"gorm.io/gorm"
)

// ProfileRepository implements domain.ProfileRepository
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) domain.ProfileRepository {
	return &ProfileRepository{db: db}
}

// WithTransaction returns a repository bound to the given transaction
func (r *ProfileRepository) WithTransaction(tx *gorm.DB) domain.ProfileRepository {
	return &ProfileRepository{db: tx}
}

// GetByID retrieves a profile by user ID, nil when none exists
func (r *ProfileRepository) GetByID(userID string) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	result := r.db.Where("user_id = ?", userID).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &profile, nil
}

// Create creates a new profile
func (r *ProfileRepository) Create(profile *domain.UserProfile) error {
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = time.Now()
	return r.db.Create(profile).Error
}

// Update saves the full profile document
func (r *ProfileRepository) Update(profile *domain.UserProfile) error {
	profile.UpdatedAt = time.Now()
	return r.db.Save(profile).Error
}

// TopByTotalScore retrieves the highest-scoring profiles in descending order
func (r *ProfileRepository) TopByTotalScore(limit int) ([]*domain.UserProfile, error) {
	var profiles []*domain.UserProfile
	result := r.db.Order("total_score DESC").
		Limit(limit).
		Find(&profiles)
	return profiles, result.Error
}

// SearchByNickname retrieves profiles whose nickname starts with the prefix.
// LIKE wildcards in the term are escaped so the match stays a literal prefix.
func (r *ProfileRepository) SearchByNickname(prefix string, limit int) ([]*domain.UserProfile, error) {
	var profiles []*domain.UserProfile
	result := r.db.Where("nickname LIKE ? ESCAPE '\\'", escapeLikePrefix(prefix)+"%").
		Order("nickname ASC").
		Limit(limit).
		Find(&profiles)
	return profiles, result.Error
}

// SearchByPublicID retrieves profiles whose public id starts with the prefix
func (r *ProfileRepository) SearchByPublicID(prefix string, limit int) ([]*domain.UserProfile, error) {
	var profiles []*domain.UserProfile
	result := r.db.Where("public_id LIKE ? ESCAPE '\\'", escapeLikePrefix(prefix)+"%").
		Order("public_id ASC").
		Limit(limit).
		Find(&profiles)
	return profiles, result.Error
}

func escapeLikePrefix(prefix string) string {
	escaped := make([]byte, 0, len(prefix))
	for i := 0; i < len(prefix); i++ {
		switch prefix[i] {
		case '%', '_', '\\':
			escaped = append(escaped, '\\')
		}
		escaped = append(escaped, prefix[i])
	}
	return string(escaped)
}
