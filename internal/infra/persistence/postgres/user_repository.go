package postgres

import (
	"context"
	"time"

	"pulpit/internal/domain/entity"
	domainerrors "pulpit/internal/domain/errors"
	"pulpit/internal/domain/repository"
	"pulpit/internal/domain/service"
	"pulpit/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db     *gorm.DB
	hasher service.PasswordHasher
}

// NewUserRepository is the constructor for userRepository. It returns the
// repository as a domain interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB, hasher service.PasswordHasher) repository.UserRepository {
	return &userRepository{db: db, hasher: hasher}
}

// Create hashes the plaintext password and inserts a new account row.
// Duplicate checking is deliberately left to the use case; the partial
// unique indexes are the final backstop.
func (repo *userRepository) Create(ctx context.Context, args repository.CreateUserArgs) (*entity.User, error) {
	passwordHash, err := repo.hasher.Hash(args.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	userM := &model.UserModel{
		FullName:     args.FullName,
		Email:        args.Email,
		Phone:        args.Phone,
		PasswordHash: passwordHash,
		ColorTheme:   args.ColorTheme,
		Lang:         args.Lang,
	}

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return nil, domainerrors.ErrUserAlreadyExists.WrapMessage("email or phone already registered")
		}

		return nil, errors.Wrap(err, "failed to create user")
	}

	return toUserDomain(userM), nil
}

// Update mutates the active row for user.ID. A supplied password is
// re-hashed; an absent one preserves the stored hash. updated_at is always
// bumped. Reports whether a row was affected.
func (repo *userRepository) Update(ctx context.Context, user *entity.User, args repository.UpdateUserArgs) (bool, error) {
	values := map[string]any{
		"updated_at": time.Now(),
	}

	if args.FullName != nil {
		values["full_name"] = *args.FullName
	}
	if args.Email != nil {
		values["email"] = *args.Email
	}
	if args.Phone != nil {
		values["phone"] = *args.Phone
	}
	if args.ColorTheme != nil {
		values["color_theme"] = *args.ColorTheme
	}
	if args.Lang != nil {
		values["lang"] = *args.Lang
	}
	if args.Password != nil {
		passwordHash, err := repo.hasher.Hash(*args.Password)
		if err != nil {
			return false, errors.Wrap(err, "failed to hash updated password")
		}
		values["password_hash"] = passwordHash
	}

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Scopes(active).
		Where("id = ?", user.ID).
		Updates(values)

	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return false, domainerrors.ErrUserAlreadyExists.WrapMessage("email or phone already registered")
		}

		return false, errors.Wrap(result.Error, "failed to update user")
	}

	return result.RowsAffected > 0, nil
}

// Delete soft-deletes the active row for user.ID. Filtering on the active
// scope makes repeated deletion report false, matching token revocation.
func (repo *userRepository) Delete(ctx context.Context, user *entity.User) (bool, error) {
	now := time.Now()

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Scopes(active).
		Where("id = ?", user.ID).
		Update("deleted_at", now)

	if result.Error != nil {
		return false, errors.Wrap(result.Error, "failed to delete user")
	}

	if result.RowsAffected > 0 {
		user.DeletedAt = &now

		return true, nil
	}

	return false, nil
}

// FindByID returns the active row with the given id, or nil on a miss.
func (repo *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	var userM model.UserModel

	err := repo.db.WithContext(ctx).
		Scopes(active).
		Where("id = ?", id).
		First(&userM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByEmailOrPhone returns the first active row matching either
// identifier, or nil on a miss.
func (repo *userRepository) FindByEmailOrPhone(ctx context.Context, email, phone string) (*entity.User, error) {
	var userM model.UserModel

	err := repo.db.WithContext(ctx).
		Scopes(active).
		Where(repo.db.Where("email = ?", email).Or("phone = ?", phone)).
		First(&userM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to find user by email or phone")
	}

	return toUserDomain(&userM), nil
}

// --- Mapper Functions ---

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:           data.ID,
		FullName:     data.FullName,
		Email:        data.Email,
		Phone:        data.Phone,
		PasswordHash: data.PasswordHash,
		ColorTheme:   data.ColorTheme,
		Lang:         data.Lang,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
		DeletedAt:    data.DeletedAt,
	}
}
