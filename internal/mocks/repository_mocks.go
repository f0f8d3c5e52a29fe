// Package mocks provides hand-written testify mocks for the domain
// interfaces, plus in-memory stand-ins for the transaction machinery so use
// case tests run without a database.
package mocks

import (
	"context"

	"pulpit/internal/domain/entity"
	"pulpit/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, args repository.CreateUserArgs) (*entity.User, error) {
	ret := m.Called(ctx, args)

	var user *entity.User
	if ret.Get(0) != nil {
		user = ret.Get(0).(*entity.User)
	}

	return user, ret.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User, args repository.UpdateUserArgs) (bool, error) {
	ret := m.Called(ctx, user, args)

	return ret.Bool(0), ret.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, user *entity.User) (bool, error) {
	ret := m.Called(ctx, user)

	return ret.Bool(0), ret.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	ret := m.Called(ctx, id)

	var user *entity.User
	if ret.Get(0) != nil {
		user = ret.Get(0).(*entity.User)
	}

	return user, ret.Error(1)
}

func (m *MockUserRepository) FindByEmailOrPhone(ctx context.Context, email, phone string) (*entity.User, error) {
	ret := m.Called(ctx, email, phone)

	var user *entity.User
	if ret.Get(0) != nil {
		user = ret.Get(0).(*entity.User)
	}

	return user, ret.Error(1)
}

// MockSessionTokenRepository mocks repository.SessionTokenRepository.
type MockSessionTokenRepository struct {
	mock.Mock
}

func (m *MockSessionTokenRepository) Create(ctx context.Context, userID int64) (*entity.SessionToken, error) {
	ret := m.Called(ctx, userID)

	var token *entity.SessionToken
	if ret.Get(0) != nil {
		token = ret.Get(0).(*entity.SessionToken)
	}

	return token, ret.Error(1)
}

func (m *MockSessionTokenRepository) Regenerate(ctx context.Context, token *entity.SessionToken) (bool, error) {
	ret := m.Called(ctx, token)

	return ret.Bool(0), ret.Error(1)
}

func (m *MockSessionTokenRepository) Revoke(ctx context.Context, token *entity.SessionToken) (bool, error) {
	ret := m.Called(ctx, token)

	return ret.Bool(0), ret.Error(1)
}

func (m *MockSessionTokenRepository) FindByID(ctx context.Context, id int64) (*entity.SessionToken, error) {
	ret := m.Called(ctx, id)

	var token *entity.SessionToken
	if ret.Get(0) != nil {
		token = ret.Get(0).(*entity.SessionToken)
	}

	return token, ret.Error(1)
}

func (m *MockSessionTokenRepository) FindByUserID(ctx context.Context, userID int64) (*entity.SessionToken, error) {
	ret := m.Called(ctx, userID)

	var token *entity.SessionToken
	if ret.Get(0) != nil {
		token = ret.Get(0).(*entity.SessionToken)
	}

	return token, ret.Error(1)
}

func (m *MockSessionTokenRepository) FindByToken(ctx context.Context, token string) (*entity.SessionToken, error) {
	ret := m.Called(ctx, token)

	var found *entity.SessionToken
	if ret.Get(0) != nil {
		found = ret.Get(0).(*entity.SessionToken)
	}

	return found, ret.Error(1)
}

// RepositoryFactoryStub hands out fixed repositories.
type RepositoryFactoryStub struct {
	Users  repository.UserRepository
	Tokens repository.SessionTokenRepository
}

func (f *RepositoryFactoryStub) UserRepo() repository.UserRepository {
	return f.Users
}

func (f *RepositoryFactoryStub) SessionTokenRepo() repository.SessionTokenRepository {
	return f.Tokens
}

// TransactionManagerStub runs the unit of work directly against the given
// factory. Rollback semantics are not simulated; tests assert on the calls
// the unit of work makes.
type TransactionManagerStub struct {
	Factory repository.RepositoryFactory
}

func (s *TransactionManagerStub) Execute(_ context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	return fn(s.Factory)
}
