package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sellerverify/internal/model"
)

type MockReviewIntake struct {
	mock.Mock
}

func (m *MockReviewIntake) Submit(ctx context.Context, s *model.Submission) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
