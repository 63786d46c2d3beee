package assistant

import (
	"context"

	"github.com/gastos-labs/gastos-gateway/engine/llm"
	"github.com/gastos-labs/gastos-gateway/engine/webhook"
	"github.com/stretchr/testify/mock"
)

type MockLLMClient struct {
	mock.Mock
}

func (m *MockLLMClient) Complete(ctx context.Context, req *llm.Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) DispatchAll(ctx context.Context, event *webhook.Event, targets []webhook.Target) []webhook.Outcome {
	args := m.Called(ctx, event, targets)
	if outcomes, ok := args.Get(0).([]webhook.Outcome); ok {
		return outcomes
	}
	return nil
}
