// Package mocks holds hand-written testify doubles for the domain ports.
// It is imported by test files only and stays out of the production build.
package mocks

import (
	"context"
	"time"

	"github.com/clusteriq/assistant/internal/domain"
	"github.com/stretchr/testify/mock"
)

type mockConstructorTestingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockAssistant is a test double for domain.Assistant.
type MockAssistant struct {
	mock.Mock
}

func NewMockAssistant(t mockConstructorTestingT) *MockAssistant {
	m := &MockAssistant{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAssistant) NextStep(ctx context.Context, req domain.AssistantTurnRequest) (domain.AssistantStep, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.AssistantStep), args.Error(1)
}

// MockAssistantActionRegistry is a test double for domain.AssistantActionRegistry.
type MockAssistantActionRegistry struct {
	mock.Mock
}

func NewMockAssistantActionRegistry(t mockConstructorTestingT) *MockAssistantActionRegistry {
	m := &MockAssistantActionRegistry{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAssistantActionRegistry) Execute(ctx context.Context, call domain.AssistantActionCall, transcript []domain.AssistantMessage) domain.AssistantMessage {
	args := m.Called(ctx, call, transcript)
	return args.Get(0).(domain.AssistantMessage)
}

func (m *MockAssistantActionRegistry) StatusMessage(actionName string) string {
	args := m.Called(actionName)
	return args.String(0)
}

func (m *MockAssistantActionRegistry) List() []domain.AssistantActionDefinition {
	args := m.Called()
	return args.Get(0).([]domain.AssistantActionDefinition)
}

func (m *MockAssistantActionRegistry) ListRelevant(ctx context.Context, userInput string) []domain.AssistantActionDefinition {
	args := m.Called(ctx, userInput)
	return args.Get(0).([]domain.AssistantActionDefinition)
}

// MockAssistantAction is a test double for domain.AssistantAction.
type MockAssistantAction struct {
	mock.Mock
}

func NewMockAssistantAction(t mockConstructorTestingT) *MockAssistantAction {
	m := &MockAssistantAction{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAssistantAction) Definition() domain.AssistantActionDefinition {
	args := m.Called()
	return args.Get(0).(domain.AssistantActionDefinition)
}

func (m *MockAssistantAction) StatusMessage() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockAssistantAction) Execute(ctx context.Context, call domain.AssistantActionCall, transcript []domain.AssistantMessage) domain.AssistantMessage {
	args := m.Called(ctx, call, transcript)
	return args.Get(0).(domain.AssistantMessage)
}

// MockInventoryReader is a test double for domain.InventoryReader.
type MockInventoryReader struct {
	mock.Mock
}

func NewMockInventoryReader(t mockConstructorTestingT) *MockInventoryReader {
	m := &MockInventoryReader{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockInventoryReader) Overview(ctx context.Context) (domain.InventoryOverview, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.InventoryOverview), args.Error(1)
}

func (m *MockInventoryReader) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockInventoryReader) GetAccount(ctx context.Context, name string) (domain.Account, bool, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(domain.Account), args.Bool(1), args.Error(2)
}

func (m *MockInventoryReader) ListClusters(ctx context.Context) ([]domain.Cluster, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Cluster), args.Error(1)
}

func (m *MockInventoryReader) GetCluster(ctx context.Context, name string) (domain.Cluster, bool, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(domain.Cluster), args.Bool(1), args.Error(2)
}

func (m *MockInventoryReader) ListInstances(ctx context.Context) ([]domain.Instance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Instance), args.Error(1)
}

func (m *MockInventoryReader) ListClusterInstances(ctx context.Context, clusterName string) ([]domain.Instance, error) {
	args := m.Called(ctx, clusterName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Instance), args.Error(1)
}

// MockSemanticEncoder is a test double for domain.SemanticEncoder.
type MockSemanticEncoder struct {
	mock.Mock
}

func NewMockSemanticEncoder(t mockConstructorTestingT) *MockSemanticEncoder {
	m := &MockSemanticEncoder{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSemanticEncoder) VectorizeQuery(ctx context.Context, model, query string) (domain.EmbeddingVector, error) {
	args := m.Called(ctx, model, query)
	return args.Get(0).(domain.EmbeddingVector), args.Error(1)
}

func (m *MockSemanticEncoder) VectorizeAssistantActionDefinition(ctx context.Context, model string, action domain.AssistantActionDefinition) (domain.EmbeddingVector, error) {
	args := m.Called(ctx, model, action)
	return args.Get(0).(domain.EmbeddingVector), args.Error(1)
}

// MockCurrentTimeProvider is a test double for domain.CurrentTimeProvider.
type MockCurrentTimeProvider struct {
	mock.Mock
}

func NewMockCurrentTimeProvider(t mockConstructorTestingT) *MockCurrentTimeProvider {
	m := &MockCurrentTimeProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCurrentTimeProvider) Now() time.Time {
	args := m.Called()
	return args.Get(0).(time.Time)
}
