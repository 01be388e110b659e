package campaign

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/fundmate/fundmate-backend/internal/domain"
)

var _ campaignRepo = &campaignRepoMock{}

type campaignRepoMock struct {
	CreateFunc    func(ctx context.Context, c *domain.Campaign) (*domain.Campaign, error)
	GetByIDFunc   func(ctx context.Context, id uuid.UUID) (*domain.Campaign, error)
	UpdateFunc    func(ctx context.Context, c *domain.Campaign) (*domain.Campaign, error)
	SetStatusFunc func(ctx context.Context, id uuid.UUID, from, to domain.CampaignStatus) (bool, error)
	ListFunc      func(ctx context.Context, f domain.CampaignFilter) ([]*domain.Campaign, error)

	calls struct {
		Create  []struct{ Campaign *domain.Campaign }
		GetByID []struct{ ID uuid.UUID }
		Update  []struct{ Campaign *domain.Campaign }
		SetStatus []struct {
			ID   uuid.UUID
			From domain.CampaignStatus
			To   domain.CampaignStatus
		}
		List []struct{ Filter domain.CampaignFilter }
	}
	lockCreate    sync.RWMutex
	lockGetByID   sync.RWMutex
	lockUpdate    sync.RWMutex
	lockSetStatus sync.RWMutex
	lockList      sync.RWMutex
}

func (mock *campaignRepoMock) Create(ctx context.Context, c *domain.Campaign) (*domain.Campaign, error) {
	if mock.CreateFunc == nil {
		panic("campaignRepoMock.CreateFunc: method is nil but campaignRepo.Create was just called")
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, struct{ Campaign *domain.Campaign }{Campaign: c})
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, c)
}

func (mock *campaignRepoMock) CreateCalls() []struct{ Campaign *domain.Campaign } {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *campaignRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	if mock.GetByIDFunc == nil {
		panic("campaignRepoMock.GetByIDFunc: method is nil but campaignRepo.GetByID was just called")
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, struct{ ID uuid.UUID }{ID: id})
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *campaignRepoMock) GetByIDCalls() []struct{ ID uuid.UUID } {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *campaignRepoMock) Update(ctx context.Context, c *domain.Campaign) (*domain.Campaign, error) {
	if mock.UpdateFunc == nil {
		panic("campaignRepoMock.UpdateFunc: method is nil but campaignRepo.Update was just called")
	}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, struct{ Campaign *domain.Campaign }{Campaign: c})
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, c)
}

func (mock *campaignRepoMock) UpdateCalls() []struct{ Campaign *domain.Campaign } {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *campaignRepoMock) SetStatus(ctx context.Context, id uuid.UUID, from, to domain.CampaignStatus) (bool, error) {
	if mock.SetStatusFunc == nil {
		panic("campaignRepoMock.SetStatusFunc: method is nil but campaignRepo.SetStatus was just called")
	}
	callInfo := struct {
		ID   uuid.UUID
		From domain.CampaignStatus
		To   domain.CampaignStatus
	}{ID: id, From: from, To: to}
	mock.lockSetStatus.Lock()
	mock.calls.SetStatus = append(mock.calls.SetStatus, callInfo)
	mock.lockSetStatus.Unlock()
	return mock.SetStatusFunc(ctx, id, from, to)
}

func (mock *campaignRepoMock) SetStatusCalls() []struct {
	ID   uuid.UUID
	From domain.CampaignStatus
	To   domain.CampaignStatus
} {
	mock.lockSetStatus.RLock()
	calls := mock.calls.SetStatus
	mock.lockSetStatus.RUnlock()
	return calls
}

func (mock *campaignRepoMock) List(ctx context.Context, f domain.CampaignFilter) ([]*domain.Campaign, error) {
	if mock.ListFunc == nil {
		panic("campaignRepoMock.ListFunc: method is nil but campaignRepo.List was just called")
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, struct{ Filter domain.CampaignFilter }{Filter: f})
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, f)
}

func (mock *campaignRepoMock) ListCalls() []struct{ Filter domain.CampaignFilter } {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
