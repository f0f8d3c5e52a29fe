package mocks

import (
	"context"

	"pulpit/internal/domain/entity"
	"pulpit/internal/domain/repository"
	"pulpit/internal/usecase"

	"github.com/stretchr/testify/mock"
)

// MockAuthUsecase mocks usecase.AuthUsecase.
type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	ret := m.Called(ctx, input)

	var output *usecase.LoginOutput
	if ret.Get(0) != nil {
		output = ret.Get(0).(*usecase.LoginOutput)
	}

	return output, ret.Error(1)
}

func (m *MockAuthUsecase) Logout(ctx context.Context, token *entity.SessionToken) error {
	ret := m.Called(ctx, token)

	return ret.Error(0)
}

// MockUserUsecase mocks usecase.UserUsecase.
type MockUserUsecase struct {
	mock.Mock
}

func (m *MockUserUsecase) CreateUser(ctx context.Context, input usecase.CreateUserInput) (*usecase.CreateUserOutput, error) {
	ret := m.Called(ctx, input)

	var output *usecase.CreateUserOutput
	if ret.Get(0) != nil {
		output = ret.Get(0).(*usecase.CreateUserOutput)
	}

	return output, ret.Error(1)
}

func (m *MockUserUsecase) FindUserByID(ctx context.Context, id int64) (*entity.User, error) {
	ret := m.Called(ctx, id)

	var user *entity.User
	if ret.Get(0) != nil {
		user = ret.Get(0).(*entity.User)
	}

	return user, ret.Error(1)
}

func (m *MockUserUsecase) FindUserByEmailOrPhone(ctx context.Context, email, phone string) (*entity.User, error) {
	ret := m.Called(ctx, email, phone)

	var user *entity.User
	if ret.Get(0) != nil {
		user = ret.Get(0).(*entity.User)
	}

	return user, ret.Error(1)
}

func (m *MockUserUsecase) UpdateUser(ctx context.Context, user *entity.User, args repository.UpdateUserArgs) error {
	ret := m.Called(ctx, user, args)

	return ret.Error(0)
}

func (m *MockUserUsecase) DeleteUser(ctx context.Context, user *entity.User) error {
	ret := m.Called(ctx, user)

	return ret.Error(0)
}
