package commands_test

import (
	"context"
	"io"
	"time"

	"bloom/internal/core/application/usecases/commands"
	"bloom/internal/core/domain/model/checkout"
	"bloom/internal/core/domain/model/kernel"
	"bloom/internal/core/domain/model/upload"
	"bloom/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockPresigner struct{ mock.Mock }

func (m *MockPresigner) Presign(ctx context.Context, key, contentType string) (ports.PresignedUpload, error) {
	args := m.Called(ctx, key, contentType)
	return args.Get(0).(ports.PresignedUpload), args.Error(1)
}

type MockUploader struct {
	mock.Mock
	bodies []string
}

func (m *MockUploader) Put(ctx context.Context, url, contentType string, body io.Reader, size int64) error {
	raw, _ := io.ReadAll(body)
	m.bodies = append(m.bodies, string(raw))
	args := m.Called(ctx, url, contentType, body, size)
	return args.Error(0)
}

type MockOrderGateway struct{ mock.Mock }

func (m *MockOrderGateway) CreateOrder(ctx context.Context, draft checkout.OrderDraft) (ports.CreatedOrder, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(ports.CreatedOrder), args.Error(1)
}

type MockNavigator struct{ mock.Mock }

func (m *MockNavigator) Navigate(ctx context.Context, destination string) error {
	args := m.Called(ctx, destination)
	return args.Error(0)
}

type MockUploadGrantRepository struct{ mock.Mock }

func (m *MockUploadGrantRepository) Add(ctx context.Context, g *upload.Grant) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockUploadGrantRepository) Get(ctx context.Context, id kernel.UUID) (*upload.Grant, error) {
	args := m.Called(ctx, id)
	g, _ := args.Get(0).(*upload.Grant)
	return g, args.Error(1)
}

func (m *MockUploadGrantRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockUploadGrantUoW struct{ mock.Mock }

func (m *MockUploadGrantUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUploadGrantUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUploadGrantUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUploadGrantUoW) UploadGrantRepository() ports.UploadGrantRepository {
	args := m.Called()
	return args.Get(0).(ports.UploadGrantRepository)
}

type MockUploadGrantUoWFactory struct{ mock.Mock }

func (m *MockUploadGrantUoWFactory) Create() commands.UploadGrantUoW {
	args := m.Called()
	return args.Get(0).(commands.UploadGrantUoW)
}

type MockURLSigner struct{ mock.Mock }

func (m *MockURLSigner) SignPut(ctx context.Context, key, contentType string, expires time.Time) (string, error) {
	args := m.Called(ctx, key, contentType, expires)
	return args.String(0), args.Error(1)
}
