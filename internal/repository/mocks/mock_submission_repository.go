package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sellerverify/internal/model"
)

type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) Create(ctx context.Context, s *model.Submission) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
