package pledge

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fundmate/fundmate-backend/internal/domain"
	"github.com/fundmate/fundmate-backend/internal/notify"
)

var (
	_ pledgeRepo     = &pledgeRepoMock{}
	_ campaignReader = &campaignReaderMock{}
	_ aggregator     = &aggregatorMock{}
	_ notify.Emitter = &emitterMock{}
)

type pledgeRepoMock struct {
	CreateFunc            func(ctx context.Context, p *domain.Pledge) (*domain.Pledge, error)
	GetByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.Pledge, error)
	UpdateFunc            func(ctx context.Context, p *domain.Pledge) (*domain.Pledge, error)
	SetStatusFunc         func(ctx context.Context, id uuid.UUID, from, to domain.PledgeStatus) (*domain.Pledge, bool, error)
	DeleteFunc            func(ctx context.Context, id uuid.UUID) error
	ListByCampaignFunc    func(ctx context.Context, campaignID uuid.UUID, statuses ...domain.PledgeStatus) ([]*domain.Pledge, error)
	ListByContributorFunc func(ctx context.Context, contributorID uuid.UUID) ([]*domain.Pledge, error)

	calls struct {
		Create    []struct{ Pledge *domain.Pledge }
		GetByID   []struct{ ID uuid.UUID }
		Update    []struct{ Pledge *domain.Pledge }
		SetStatus []struct {
			ID   uuid.UUID
			From domain.PledgeStatus
			To   domain.PledgeStatus
		}
		Delete []struct{ ID uuid.UUID }
	}
	mu sync.RWMutex
}

func (mock *pledgeRepoMock) Create(ctx context.Context, p *domain.Pledge) (*domain.Pledge, error) {
	if mock.CreateFunc == nil {
		panic("pledgeRepoMock.CreateFunc: method is nil but pledgeRepo.Create was just called")
	}
	mock.mu.Lock()
	mock.calls.Create = append(mock.calls.Create, struct{ Pledge *domain.Pledge }{Pledge: p})
	mock.mu.Unlock()
	return mock.CreateFunc(ctx, p)
}

func (mock *pledgeRepoMock) CreateCalls() []struct{ Pledge *domain.Pledge } {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.Create
}

func (mock *pledgeRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Pledge, error) {
	if mock.GetByIDFunc == nil {
		panic("pledgeRepoMock.GetByIDFunc: method is nil but pledgeRepo.GetByID was just called")
	}
	mock.mu.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, struct{ ID uuid.UUID }{ID: id})
	mock.mu.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *pledgeRepoMock) Update(ctx context.Context, p *domain.Pledge) (*domain.Pledge, error) {
	if mock.UpdateFunc == nil {
		panic("pledgeRepoMock.UpdateFunc: method is nil but pledgeRepo.Update was just called")
	}
	mock.mu.Lock()
	mock.calls.Update = append(mock.calls.Update, struct{ Pledge *domain.Pledge }{Pledge: p})
	mock.mu.Unlock()
	return mock.UpdateFunc(ctx, p)
}

func (mock *pledgeRepoMock) UpdateCalls() []struct{ Pledge *domain.Pledge } {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.Update
}

func (mock *pledgeRepoMock) SetStatus(ctx context.Context, id uuid.UUID, from, to domain.PledgeStatus) (*domain.Pledge, bool, error) {
	if mock.SetStatusFunc == nil {
		panic("pledgeRepoMock.SetStatusFunc: method is nil but pledgeRepo.SetStatus was just called")
	}
	callInfo := struct {
		ID   uuid.UUID
		From domain.PledgeStatus
		To   domain.PledgeStatus
	}{ID: id, From: from, To: to}
	mock.mu.Lock()
	mock.calls.SetStatus = append(mock.calls.SetStatus, callInfo)
	mock.mu.Unlock()
	return mock.SetStatusFunc(ctx, id, from, to)
}

func (mock *pledgeRepoMock) SetStatusCalls() []struct {
	ID   uuid.UUID
	From domain.PledgeStatus
	To   domain.PledgeStatus
} {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.SetStatus
}

func (mock *pledgeRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("pledgeRepoMock.DeleteFunc: method is nil but pledgeRepo.Delete was just called")
	}
	mock.mu.Lock()
	mock.calls.Delete = append(mock.calls.Delete, struct{ ID uuid.UUID }{ID: id})
	mock.mu.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *pledgeRepoMock) DeleteCalls() []struct{ ID uuid.UUID } {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.Delete
}

func (mock *pledgeRepoMock) ListByCampaign(ctx context.Context, campaignID uuid.UUID, statuses ...domain.PledgeStatus) ([]*domain.Pledge, error) {
	if mock.ListByCampaignFunc == nil {
		panic("pledgeRepoMock.ListByCampaignFunc: method is nil but pledgeRepo.ListByCampaign was just called")
	}
	return mock.ListByCampaignFunc(ctx, campaignID, statuses...)
}

func (mock *pledgeRepoMock) ListByContributor(ctx context.Context, contributorID uuid.UUID) ([]*domain.Pledge, error) {
	if mock.ListByContributorFunc == nil {
		panic("pledgeRepoMock.ListByContributorFunc: method is nil but pledgeRepo.ListByContributor was just called")
	}
	return mock.ListByContributorFunc(ctx, contributorID)
}

type campaignReaderMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Campaign, error)
}

func (mock *campaignReaderMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	if mock.GetByIDFunc == nil {
		panic("campaignReaderMock.GetByIDFunc: method is nil but campaignReader.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, id)
}

type aggregatorMock struct {
	RecomputeFunc func(ctx context.Context, campaignID uuid.UUID) (decimal.Decimal, error)

	calls struct {
		Recompute []struct{ CampaignID uuid.UUID }
	}
	mu sync.RWMutex
}

func (mock *aggregatorMock) Recompute(ctx context.Context, campaignID uuid.UUID) (decimal.Decimal, error) {
	mock.mu.Lock()
	mock.calls.Recompute = append(mock.calls.Recompute, struct{ CampaignID uuid.UUID }{CampaignID: campaignID})
	mock.mu.Unlock()
	if mock.RecomputeFunc != nil {
		return mock.RecomputeFunc(ctx, campaignID)
	}
	return decimal.Zero, nil
}

func (mock *aggregatorMock) RecomputeCalls() []struct{ CampaignID uuid.UUID } {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.Recompute
}

type emitterMock struct {
	EmitFunc func(ctx context.Context, event notify.Event) error

	calls struct {
		Emit []struct{ Event notify.Event }
	}
	mu sync.RWMutex
}

func (mock *emitterMock) Emit(ctx context.Context, event notify.Event) error {
	mock.mu.Lock()
	mock.calls.Emit = append(mock.calls.Emit, struct{ Event notify.Event }{Event: event})
	mock.mu.Unlock()
	if mock.EmitFunc != nil {
		return mock.EmitFunc(ctx, event)
	}
	return nil
}

func (mock *emitterMock) EmitCalls() []struct{ Event notify.Event } {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.Emit
}

// txRunnerMock runs the callback inline, outside any real transaction.
type txRunnerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx int
	}
	mu sync.RWMutex
}

func (mock *txRunnerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	mock.mu.Lock()
	mock.calls.RunInTx++
	mock.mu.Unlock()
	if mock.RunInTxFunc != nil {
		return mock.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}

func (mock *txRunnerMock) RunInTxCalls() int {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.RunInTx
}
