package broker

import (
	"context"

	"BreakoutSniper/internal/model"
)

// MockBroker returns controllable account state for development and testing.
type MockBroker struct {
	AccountState Account
	Held         []model.Position
	Pending      []string
	Submitted    []model.PositionPlan
	SubmitErr    error
}

func (m *MockBroker) Name() string { return "mock" }

func (m *MockBroker) Account(_ context.Context) (Account, error) {
	return m.AccountState, nil
}

func (m *MockBroker) Positions(_ context.Context) ([]model.Position, error) {
	return m.Held, nil
}

func (m *MockBroker) OpenOrderSymbols(_ context.Context) ([]string, error) {
	return m.Pending, nil
}

func (m *MockBroker) SubmitBracket(_ context.Context, plan model.PositionPlan) error {
	if m.SubmitErr != nil {
		return m.SubmitErr
	}
	m.Submitted = append(m.Submitted, plan)
	return nil
}
