package storage

import (
	"context"

	"github.com/cyp0633/libvcard/contact"
	"github.com/stretchr/testify/mock"
)

// MockStorage implements the Storage interface for testing
type MockStorage struct {
	mock.Mock
}

// GetContact implements the Storage interface
func (m *MockStorage) GetContact(ctx context.Context, id string) (*Record, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Record), args.Error(1)
}

// ListContacts implements the Storage interface
func (m *MockStorage) ListContacts(ctx context.Context) ([]Record, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Record), args.Error(1)
}

// PutContact implements the Storage interface
func (m *MockStorage) PutContact(ctx context.Context, c *contact.Contact) (string, error) {
	args := m.Called(c)
	return args.String(0), args.Error(1)
}

// DeleteContact implements the Storage interface
func (m *MockStorage) DeleteContact(ctx context.Context, id string) error {
	args := m.Called(id)
	return args.Error(0)
}
