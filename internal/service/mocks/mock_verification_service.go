package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sellerverify/internal/model"
	"sellerverify/internal/service"
	"sellerverify/internal/verification"
)

type MockVerificationService struct {
	mock.Mock
}

func (m *MockVerificationService) Start(ctx context.Context, sellerID string) (*service.Session, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockVerificationService) Get(ctx context.Context, id string) (*service.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockVerificationService) SelectFile(ctx context.Context, id, documentID string) (*service.Picker, error) {
	args := m.Called(ctx, id, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Picker), args.Error(1)
}

func (m *MockVerificationService) Upload(ctx context.Context, id, documentID, fileName string, size int64) (*verification.Upload, error) {
	args := m.Called(ctx, id, documentID, fileName, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*verification.Upload), args.Error(1)
}

func (m *MockVerificationService) Submit(ctx context.Context, id string) (*service.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockVerificationService) Notifications(ctx context.Context, id string) ([]model.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *MockVerificationService) Close(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVerificationService) Shutdown() {
	m.Called()
}

func (m *MockVerificationService) Sweep(ctx context.Context) int {
	args := m.Called(ctx)
	return args.Int(0)
}
