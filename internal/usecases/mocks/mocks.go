// Package mocks holds hand-written testify doubles for the use-case
// interfaces. It is imported by test files only and stays out of the
// production build.
package mocks

import (
	"context"

	"github.com/clusteriq/assistant/internal/usecases"
	"github.com/stretchr/testify/mock"
)

type mockConstructorTestingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockAnswerQuery is a test double for usecases.AnswerQuery.
type MockAnswerQuery struct {
	mock.Mock
}

func NewMockAnswerQuery(t mockConstructorTestingT) *MockAnswerQuery {
	m := &MockAnswerQuery{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAnswerQuery) Execute(ctx context.Context, query string) (usecases.Answer, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(usecases.Answer), args.Error(1)
}
