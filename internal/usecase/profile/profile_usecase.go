package profile

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nbagirov/tapreflex/internal/domain"
	"github.com/nbagirov/tapreflex/internal/infrastructure/lock"
	"github.com/nbagirov/tapreflex/internal/infrastructure/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Nickname length bounds, shared by signup and profile edit.
const (
	NicknameMinLen = 3
	NicknameMaxLen = 20
)

// DefaultHistoryLimit caps history listings when the caller passes no limit.
const DefaultHistoryLimit = 50

// publicIDAlphabet is base36; public ids look like "k3f9-x2ab".
const publicIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// ProfileUseCase implements domain.ProfileUseCase
type ProfileUseCase struct {
	profileRepo domain.ProfileRepository
	historyRepo domain.HistoryRepository
	db          *gorm.DB
	logger      *logger.Logger
	lockManager *lock.PlayerLockManager
}

// NewProfileUseCase creates a new profile use case
func NewProfileUseCase(
	profileRepo domain.ProfileRepository,
	historyRepo domain.HistoryRepository,
	db *gorm.DB,
	logger *logger.Logger,
	lockManager *lock.PlayerLockManager,
) domain.ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
		historyRepo: historyRepo,
		db:          db,
		logger:      logger,
		lockManager: lockManager,
	}
}

// CreateProfile creates the player's profile at signup: all counters zeroed,
// every difficulty pre-populated with an unset entry, and a display public id
// generated once. The public id is best-effort unique, never a substitute for
// the user id.
func (uc *ProfileUseCase) CreateProfile(userID, email, nickname string) (*domain.UserProfile, error) {
	if userID == "" {
		return nil, domain.NewAppError(domain.ErrCodeRequiredField, "User ID is required", 400, nil)
	}
	if err := ValidateNickname(nickname); err != nil {
		return nil, err
	}

	existing, err := uc.profileRepo.GetByID(userID)
	if err != nil {
		uc.logger.Error("Failed to check existing profile", zap.String("userID", userID), zap.Error(err))
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to check existing profile", 500, err)
	}
	if existing != nil {
		return nil, domain.NewAppError(domain.ErrCodeProfileAlreadyExists, "Profile already exists", 409, nil)
	}

	profile := &domain.UserProfile{
		UserID:        userID,
		PublicID:      generatePublicID(),
		Email:         email,
		Nickname:      strings.TrimSpace(nickname),
		LevelProgress: domain.NewLevelProgress(),
	}

	if err := uc.profileRepo.Create(profile); err != nil {
		uc.logger.Error("Failed to create profile", zap.String("userID", userID), zap.Error(err))
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to create profile", 500, err)
	}

	uc.logger.Info("Profile created",
		zap.String("userID", userID),
		zap.String("publicID", profile.PublicID))

	return profile, nil
}

// GetProfile retrieves a profile, nil when none exists
func (uc *ProfileUseCase) GetProfile(userID string) (*domain.UserProfile, error) {
	profile, err := uc.profileRepo.GetByID(userID)
	if err != nil {
		uc.logger.Error("Failed to get profile", zap.String("userID", userID), zap.Error(err))
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get profile", 500, err)
	}
	return profile, nil
}

// UpdateProfile applies caller-editable fields to an existing profile
func (uc *ProfileUseCase) UpdateProfile(userID string, updates domain.ProfileUpdates) (*domain.UserProfile, error) {
	profile, err := uc.profileRepo.GetByID(userID)
	if err != nil {
		uc.logger.Error("Failed to get profile for update", zap.String("userID", userID), zap.Error(err))
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get profile", 500, err)
	}
	if profile == nil {
		return nil, domain.NewAppError(domain.ErrCodeProfileNotFound, "Profile not found", 404, nil)
	}

	if updates.Nickname != nil {
		if err := ValidateNickname(*updates.Nickname); err != nil {
			return nil, err
		}
		profile.Nickname = strings.TrimSpace(*updates.Nickname)
	}

	if err := uc.profileRepo.Update(profile); err != nil {
		uc.logger.Error("Failed to update profile", zap.String("userID", userID), zap.Error(err))
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to update profile", 500, err)
	}

	return profile, nil
}

// History lists the player's most recent completed rounds
func (uc *ProfileUseCase) History(userID string, limit int) ([]*domain.HistoryEntry, error) {
	if limit <= 0 || limit > DefaultHistoryLimit {
		limit = DefaultHistoryLimit
	}
	entries, err := uc.historyRepo.ListByUser(userID, limit)
	if err != nil {
		uc.logger.Error("Failed to list game history", zap.String("userID", userID), zap.Error(err))
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to list game history", 500, err)
	}
	return entries, nil
}

// ValidateNickname checks the display name bounds. Length is counted in
// runes, not bytes, so non-ASCII nicknames get the same 3-20 range.
func ValidateNickname(nickname string) error {
	trimmed := strings.TrimSpace(nickname)
	if utf8.RuneCountInString(trimmed) < NicknameMinLen {
		return domain.NewAppError(domain.ErrCodeInvalidNickname, "Nickname must be at least 3 characters", 400, nil)
	}
	if utf8.RuneCountInString(trimmed) > NicknameMaxLen {
		return domain.NewAppError(domain.ErrCodeInvalidNickname, "Nickname must be at most 20 characters", 400, nil)
	}
	return nil
}

// generatePublicID draws a short display identifier. Collisions are tolerated:
// the public id is cosmetic and search results always dedup by user id.
func generatePublicID() string {
	const half = 4
	buf := make([]byte, half*2+1)
	for i := range buf {
		if i == half {
			buf[i] = '-'
			continue
		}
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(publicIDAlphabet))))
		if err != nil {
			// crypto/rand failure is unrecoverable at this layer
			panic(err)
		}
		buf[i] = publicIDAlphabet[n.Int64()]
	}
	return string(buf)
}

// lockPlayer serializes result merges for one player within this process.
func (uc *ProfileUseCase) lockPlayer(userID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return uc.lockManager.Lock(ctx, userID)
}
