package postgres

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"pulpit/internal/domain/entity"
	"pulpit/internal/domain/repository"
	"pulpit/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// tokenByteLength is the entropy of a session token before hex encoding.
// 32 random bytes encode to the 64 character values stored in the table.
const tokenByteLength = 32

// GenerateToken returns a fresh opaque session token: 32 bytes from the
// system CSPRNG, lowercase hex encoded. The value carries no structure and
// no claims; it is only meaningful as a database lookup key.
func GenerateToken() (string, error) {
	buf := make([]byte, tokenByteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to read random bytes for session token")
	}

	return hex.EncodeToString(buf), nil
}

// sessionTokenRepository implements the domain.SessionTokenRepository
// interface using GORM.
type sessionTokenRepository struct {
	db *gorm.DB
}

// NewSessionTokenRepository is the constructor for sessionTokenRepository.
func NewSessionTokenRepository(db *gorm.DB) repository.SessionTokenRepository {
	return &sessionTokenRepository{db: db}
}

// Create inserts a new token row for userID. The partial unique index on
// user_id rejects a second active row, so callers rotate via Regenerate
// when a session already exists.
func (repo *sessionTokenRepository) Create(ctx context.Context, userID int64) (*entity.SessionToken, error) {
	token, err := GenerateToken()
	if err != nil {
		return nil, err
	}

	tokenM := &model.SessionTokenModel{
		UserID: userID,
		Token:  token,
	}

	if err := repo.db.WithContext(ctx).Create(tokenM).Error; err != nil {
		return nil, errors.Wrap(err, "failed to create session token")
	}

	return toSessionTokenDomain(tokenM), nil
}

// Regenerate rotates the token value of an existing session in place. The
// row identity survives so the session keeps its id while the credential
// the client holds is replaced.
func (repo *sessionTokenRepository) Regenerate(ctx context.Context, token *entity.SessionToken) (bool, error) {
	fresh, err := GenerateToken()
	if err != nil {
		return false, err
	}

	result := repo.db.WithContext(ctx).
		Model(&model.SessionTokenModel{}).
		Scopes(active).
		Where("id = ?", token.ID).
		Updates(map[string]any{
			"token":      fresh,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return false, errors.Wrap(result.Error, "failed to regenerate session token")
	}

	if result.RowsAffected > 0 {
		token.Token = fresh

		return true, nil
	}

	return false, nil
}

// Revoke soft-deletes the row for token.ID. Filtering on the active scope
// makes a repeated revocation a no-op that reports false.
func (repo *sessionTokenRepository) Revoke(ctx context.Context, token *entity.SessionToken) (bool, error) {
	now := time.Now()

	result := repo.db.WithContext(ctx).
		Model(&model.SessionTokenModel{}).
		Scopes(active).
		Where("id = ?", token.ID).
		Update("deleted_at", now)

	if result.Error != nil {
		return false, errors.Wrap(result.Error, "failed to revoke session token")
	}

	if result.RowsAffected > 0 {
		token.DeletedAt = &now

		return true, nil
	}

	return false, nil
}

// FindByID returns the active row with the given id, or nil on a miss.
func (repo *sessionTokenRepository) FindByID(ctx context.Context, id int64) (*entity.SessionToken, error) {
	return repo.findOne(ctx, "id = ?", id)
}

// FindByUserID returns the active row owned by userID, or nil on a miss.
func (repo *sessionTokenRepository) FindByUserID(ctx context.Context, userID int64) (*entity.SessionToken, error) {
	return repo.findOne(ctx, "user_id = ?", userID)
}

// FindByToken returns the active row carrying the given token value, or nil
// on a miss. This is the hot path of every authenticated request.
func (repo *sessionTokenRepository) FindByToken(ctx context.Context, token string) (*entity.SessionToken, error) {
	return repo.findOne(ctx, "token = ?", token)
}

func (repo *sessionTokenRepository) findOne(ctx context.Context, query string, arg any) (*entity.SessionToken, error) {
	var tokenM model.SessionTokenModel

	err := repo.db.WithContext(ctx).
		Scopes(active).
		Where(query, arg).
		First(&tokenM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to find session token")
	}

	return toSessionTokenDomain(&tokenM), nil
}

// --- Mapper Functions ---

// toSessionTokenDomain converts a GORM SessionTokenModel to a domain entity.
func toSessionTokenDomain(data *model.SessionTokenModel) *entity.SessionToken {
	if data == nil {
		return nil
	}

	return &entity.SessionToken{
		ID:        data.ID,
		UserID:    data.UserID,
		Token:     data.Token,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
		DeletedAt: data.DeletedAt,
	}
}
