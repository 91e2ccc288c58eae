package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/davicafu/detailstream/internal/detail/domain"
)

// MockAppendLog simula el append log
type MockAppendLog struct {
	mock.Mock
}

func (m *MockAppendLog) PutRecords(ctx context.Context, stream string, entries []domain.Entry) (domain.DeliveryResult, error) {
	args := m.Called(ctx, stream, entries)
	return args.Get(0).(domain.DeliveryResult), args.Error(1)
}

// AcceptAll construye una respuesta sin fallos para n entradas.
func AcceptAll(n int) domain.DeliveryResult {
	res := domain.DeliveryResult{Records: make([]domain.EntryResult, n)}
	for i := range res.Records {
		res.Records[i] = domain.EntryResult{SequenceNumber: "seq", ShardID: "shardId-000000000000"}
	}
	return res
}

// MockLedger simula el ledger de entregas
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Seen(ctx context.Context, eventID string) (bool, error) {
	args := m.Called(ctx, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedger) Mark(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

var (
	_ domain.AppendLog = (*MockAppendLog)(nil)
	_ domain.Ledger    = (*MockLedger)(nil)
)
