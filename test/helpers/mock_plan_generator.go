package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/trading-engine-go/internal/application/trading/services"
)

// MockPlanGenerator is a scripted pipeline provider that records every request
type MockPlanGenerator struct {
	mu       sync.Mutex
	Plan     services.RawPlan
	Err      error
	Requests []services.PlanRequest
}

// NewMockPlanGenerator creates a provider answering with plan
func NewMockPlanGenerator(plan services.RawPlan) *MockPlanGenerator {
	return &MockPlanGenerator{Plan: plan}
}

func (m *MockPlanGenerator) GeneratePlan(ctx context.Context, req services.PlanRequest) (services.RawPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests = append(m.Requests, req)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Plan, nil
}

// Calls returns how many plans were requested
func (m *MockPlanGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}
