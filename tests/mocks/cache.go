package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	sharedCache "github.com/davicafu/detailstream/internal/shared/infra/platform/cache"
)

// MockCache simula la caché compartida. Get no rellena dest: un hit solo
// indica que la clave existe, que es lo que necesita el ledger.
type MockCache struct {
	mock.Mock
}

var _ sharedCache.Cache = (*MockCache)(nil)

func (m *MockCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, val interface{}, ttlSecs int) error {
	args := m.Called(ctx, key, val, ttlSecs)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
