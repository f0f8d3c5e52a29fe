package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockPasswordHasher mocks service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	ret := m.Called(password)

	return ret.String(0), ret.Error(1)
}

func (m *MockPasswordHasher) Verify(hash, password string) (bool, error) {
	ret := m.Called(hash, password)

	return ret.Bool(0), ret.Error(1)
}
