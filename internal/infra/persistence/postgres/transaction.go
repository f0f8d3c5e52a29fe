package postgres

import (
	"context"

	"pulpit/internal/domain/repository"
	"pulpit/internal/domain/service"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// gormRepositoryFactory hands out repositories bound to a single *gorm.DB,
// which is a transaction handle when created by the transaction manager.
type gormRepositoryFactory struct {
	db     *gorm.DB
	hasher service.PasswordHasher
}

// NewRepositoryFactory builds a factory over the shared connection pool.
// Used directly for single-statement work that needs no transaction.
func NewRepositoryFactory(db *gorm.DB, hasher service.PasswordHasher) repository.RepositoryFactory {
	return &gormRepositoryFactory{db: db, hasher: hasher}
}

func (f *gormRepositoryFactory) UserRepo() repository.UserRepository {
	return NewUserRepository(f.db, f.hasher)
}

func (f *gormRepositoryFactory) SessionTokenRepo() repository.SessionTokenRepository {
	return NewSessionTokenRepository(f.db)
}

// gormTransactionManager implements the domain.TransactionManager interface.
type gormTransactionManager struct {
	db     *gorm.DB
	hasher service.PasswordHasher
}

// NewTransactionManager is the constructor for gormTransactionManager.
func NewTransactionManager(db *gorm.DB, hasher service.PasswordHasher) repository.TransactionManager {
	return &gormTransactionManager{db: db, hasher: hasher}
}

// Execute runs fn inside one transaction. Repositories obtained from the
// factory all operate on the same tx handle; returning an error rolls the
// whole unit back.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	err := tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepositoryFactory{db: tx, hasher: tm.hasher})
	})
	if err != nil {
		return errors.Wrap(err, "transaction failed")
	}

	return nil
}
