package vcard

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockResolver implements MediaResolver for testing
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) RemoteContentType(ctx context.Context, url string) (string, error) {
	args := m.Called(url)
	return args.String(0), args.Error(1)
}

func (m *MockResolver) FetchRemote(ctx context.Context, url string) ([]byte, error) {
	args := m.Called(url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockResolver) LocalContentType(path string) (string, error) {
	args := m.Called(path)
	return args.String(0), args.Error(1)
}

func (m *MockResolver) ReadLocal(path string) ([]byte, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockResolver) DetectContent(content []byte) (string, error) {
	args := m.Called(content)
	return args.String(0), args.Error(1)
}
