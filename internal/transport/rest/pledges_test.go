package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fundmate/fundmate-backend/internal/domain"
	"github.com/fundmate/fundmate-backend/internal/service/pledge"
	"github.com/fundmate/fundmate-backend/pkg/ctxutil"
)

type pledgeServiceMock struct {
	CreateFunc         func(ctx context.Context, input pledge.CreateInput) (*domain.Pledge, error)
	EditFunc           func(ctx context.Context, input pledge.EditInput) (*domain.Pledge, error)
	SetStatusFunc      func(ctx context.Context, pledgeID uuid.UUID, newStatus domain.PledgeStatus) (*domain.Pledge, error)
	DeleteFunc         func(ctx context.Context, pledgeID uuid.UUID) error
	GetFunc            func(ctx context.Context, pledgeID uuid.UUID) (*domain.Pledge, error)
	ListByCampaignFunc func(ctx context.Context, campaignID uuid.UUID, statuses ...domain.PledgeStatus) ([]*domain.Pledge, error)
	ListMineFunc       func(ctx context.Context) ([]*domain.Pledge, error)
}

func (m *pledgeServiceMock) Create(ctx context.Context, input pledge.CreateInput) (*domain.Pledge, error) {
	return m.CreateFunc(ctx, input)
}

func (m *pledgeServiceMock) Edit(ctx context.Context, input pledge.EditInput) (*domain.Pledge, error) {
	return m.EditFunc(ctx, input)
}

func (m *pledgeServiceMock) SetStatus(ctx context.Context, pledgeID uuid.UUID, newStatus domain.PledgeStatus) (*domain.Pledge, error) {
	return m.SetStatusFunc(ctx, pledgeID, newStatus)
}

func (m *pledgeServiceMock) Delete(ctx context.Context, pledgeID uuid.UUID) error {
	return m.DeleteFunc(ctx, pledgeID)
}

func (m *pledgeServiceMock) Get(ctx context.Context, pledgeID uuid.UUID) (*domain.Pledge, error) {
	return m.GetFunc(ctx, pledgeID)
}

func (m *pledgeServiceMock) ListByCampaign(ctx context.Context, campaignID uuid.UUID, statuses ...domain.PledgeStatus) ([]*domain.Pledge, error) {
	return m.ListByCampaignFunc(ctx, campaignID, statuses...)
}

func (m *pledgeServiceMock) ListMine(ctx context.Context) ([]*domain.Pledge, error) {
	return m.ListMineFunc(ctx)
}

func samplePledge() *domain.Pledge {
	return &domain.Pledge{
		ID:            uuid.New(),
		CampaignID:    uuid.New(),
		ContributorID: uuid.New(),
		Amount:        decimal.NewFromInt(200),
		Status:        domain.PledgeStatusPending,
		PromisedAt:    time.Now(),
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

func asUser(req *http.Request, userID uuid.UUID) *http.Request {
	return req.WithContext(ctxutil.WithUserID(req.Context(), userID))
}

func TestPledgeCreate_Success(t *testing.T) {
	t.Parallel()

	want := samplePledge()
	var gotInput pledge.CreateInput
	svc := &pledgeServiceMock{
		CreateFunc: func(_ context.Context, input pledge.CreateInput) (*domain.Pledge, error) {
			gotInput = input
			return want, nil
		},
	}
	h := NewPledgeHandler(svc, testLogger())

	body := fmt.Sprintf(`{"campaignId":%q,"amount":"200","message":"good luck"}`, want.CampaignID)
	req := httptest.NewRequest(http.MethodPost, "/v1/pledges", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotInput.CampaignID != want.CampaignID {
		t.Errorf("expected campaign %s, got %s", want.CampaignID, gotInput.CampaignID)
	}
	if gotInput.Amount.String() != "200" {
		t.Errorf("expected amount 200, got %s", gotInput.Amount)
	}
	if gotInput.Message == nil || *gotInput.Message != "good luck" {
		t.Errorf("expected message to be carried, got %v", gotInput.Message)
	}

	var resp pledgeResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ContributorID != want.ContributorID.String() {
		t.Errorf("creation response must show the owner their own id, got %q", resp.ContributorID)
	}
}

func TestPledgeCreate_BadAmount(t *testing.T) {
	t.Parallel()

	h := NewPledgeHandler(&pledgeServiceMock{}, testLogger())

	body := fmt.Sprintf(`{"campaignId":%q,"amount":"abc"}`, uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/v1/pledges", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestPledgeCreate_CampaignNotActive(t *testing.T) {
	t.Parallel()

	svc := &pledgeServiceMock{
		CreateFunc: func(_ context.Context, _ pledge.CreateInput) (*domain.Pledge, error) {
			return nil, fmt.Errorf("campaign DRAFT: %w", domain.ErrCampaignNotAcceptingPledges)
		},
	}
	h := NewPledgeHandler(svc, testLogger())

	body := fmt.Sprintf(`{"campaignId":%q,"amount":"50"}`, uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/v1/pledges", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != "CAMPAIGN_NOT_ACCEPTING_PLEDGES" {
		t.Errorf("expected code CAMPAIGN_NOT_ACCEPTING_PLEDGES, got %q", resp.Code)
	}
}

func TestPledgeGet_AnonymousHidesContributor(t *testing.T) {
	t.Parallel()

	p := samplePledge()
	p.IsAnonymous = true
	svc := &pledgeServiceMock{
		GetFunc: func(_ context.Context, _ uuid.UUID) (*domain.Pledge, error) {
			return p, nil
		},
	}
	h := NewPledgeHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/pledges/"+p.ID.String(), nil)
	req.SetPathValue("id", p.ID.String())
	req = asUser(req, uuid.New()) // some other viewer
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp pledgeResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ContributorID != "" {
		t.Errorf("anonymous pledge must hide contributor from other viewers, got %q", resp.ContributorID)
	}
	if !resp.IsAnonymous {
		t.Error("expected isAnonymous true")
	}
}

func TestPledgeGet_AnonymousVisibleToOwner(t *testing.T) {
	t.Parallel()

	p := samplePledge()
	p.IsAnonymous = true
	svc := &pledgeServiceMock{
		GetFunc: func(_ context.Context, _ uuid.UUID) (*domain.Pledge, error) {
			return p, nil
		},
	}
	h := NewPledgeHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/pledges/"+p.ID.String(), nil)
	req.SetPathValue("id", p.ID.String())
	req = asUser(req, p.ContributorID)
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp pledgeResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ContributorID != p.ContributorID.String() {
		t.Errorf("owner must see their own anonymous pledge, got %q", resp.ContributorID)
	}
}

func TestPledgeSetStatus_UppercasesInput(t *testing.T) {
	t.Parallel()

	p := samplePledge()
	p.Status = domain.PledgeStatusPaid
	var gotStatus domain.PledgeStatus
	svc := &pledgeServiceMock{
		SetStatusFunc: func(_ context.Context, _ uuid.UUID, newStatus domain.PledgeStatus) (*domain.Pledge, error) {
			gotStatus = newStatus
			return p, nil
		},
	}
	h := NewPledgeHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/v1/pledges/"+p.ID.String()+"/status",
		strings.NewReader(`{"status":"paid"}`))
	req.SetPathValue("id", p.ID.String())
	rec := httptest.NewRecorder()

	h.SetStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotStatus != domain.PledgeStatusPaid {
		t.Errorf("expected PAID, got %q", gotStatus)
	}
}

func TestPledgeSetStatus_InvalidTransition(t *testing.T) {
	t.Parallel()

	svc := &pledgeServiceMock{
		SetStatusFunc: func(_ context.Context, _ uuid.UUID, _ domain.PledgeStatus) (*domain.Pledge, error) {
			return nil, fmt.Errorf("PAID -> CANCELLED: %w", domain.ErrInvalidTransition)
		},
	}
	h := NewPledgeHandler(svc, testLogger())

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodPost, "/v1/pledges/"+id+"/status",
		strings.NewReader(`{"status":"CANCELLED"}`))
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()

	h.SetStatus(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
}

func TestPledgeDelete_NoContent(t *testing.T) {
	t.Parallel()

	deleted := false
	svc := &pledgeServiceMock{
		DeleteFunc: func(_ context.Context, _ uuid.UUID) error {
			deleted = true
			return nil
		},
	}
	h := NewPledgeHandler(svc, testLogger())

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodDelete, "/v1/pledges/"+id, nil)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()

	h.Delete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if !deleted {
		t.Error("expected delete to be called")
	}
}

func TestPledgeDelete_NotOwner(t *testing.T) {
	t.Parallel()

	svc := &pledgeServiceMock{
		DeleteFunc: func(_ context.Context, _ uuid.UUID) error {
			return domain.ErrNotPledgeOwner
		},
	}
	h := NewPledgeHandler(svc, testLogger())

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodDelete, "/v1/pledges/"+id, nil)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()

	h.Delete(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
}

func TestPledgeListByCampaign_BadStatus(t *testing.T) {
	t.Parallel()

	h := NewPledgeHandler(&pledgeServiceMock{}, testLogger())

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/v1/campaigns/"+id+"/pledges?status=BOGUS", nil)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()

	h.ListByCampaign(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestPledgeListByCampaign_FiltersAndAnonymity(t *testing.T) {
	t.Parallel()

	campaignID := uuid.New()
	open := samplePledge()
	anon := samplePledge()
	anon.IsAnonymous = true

	var gotStatuses []domain.PledgeStatus
	svc := &pledgeServiceMock{
		ListByCampaignFunc: func(_ context.Context, id uuid.UUID, statuses ...domain.PledgeStatus) ([]*domain.Pledge, error) {
			if id != campaignID {
				t.Errorf("expected campaign %s, got %s", campaignID, id)
			}
			gotStatuses = statuses
			return []*domain.Pledge{open, anon}, nil
		},
	}
	h := NewPledgeHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet,
		"/v1/campaigns/"+campaignID.String()+"/pledges?status=PENDING&status=PAID", nil)
	req.SetPathValue("id", campaignID.String())
	rec := httptest.NewRecorder()

	h.ListByCampaign(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(gotStatuses) != 2 {
		t.Fatalf("expected 2 statuses, got %v", gotStatuses)
	}

	var resp []pledgeResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 pledges, got %d", len(resp))
	}
	if resp[0].ContributorID == "" {
		t.Error("non-anonymous pledge must show its contributor")
	}
	if resp[1].ContributorID != "" {
		t.Error("anonymous pledge must hide its contributor from the public list")
	}
}

func TestPledgeListMine_Unauthorized(t *testing.T) {
	t.Parallel()

	svc := &pledgeServiceMock{
		ListMineFunc: func(_ context.Context) ([]*domain.Pledge, error) {
			return nil, domain.ErrUnauthorized
		},
	}
	h := NewPledgeHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/pledges", nil)
	rec := httptest.NewRecorder()

	h.ListMine(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestPledgeEdit_PatchFields(t *testing.T) {
	t.Parallel()

	p := samplePledge()
	var gotInput pledge.EditInput
	svc := &pledgeServiceMock{
		EditFunc: func(_ context.Context, input pledge.EditInput) (*domain.Pledge, error) {
			gotInput = input
			return p, nil
		},
	}
	h := NewPledgeHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPatch, "/v1/pledges/"+p.ID.String(),
		strings.NewReader(`{"amount":"350.25","isAnonymous":true}`))
	req.SetPathValue("id", p.ID.String())
	rec := httptest.NewRecorder()

	h.Edit(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotInput.PledgeID != p.ID {
		t.Errorf("expected pledge %s, got %s", p.ID, gotInput.PledgeID)
	}
	if gotInput.Amount == nil || gotInput.Amount.String() != "350.25" {
		t.Errorf("expected amount 350.25, got %v", gotInput.Amount)
	}
	if gotInput.IsAnonymous == nil || !*gotInput.IsAnonymous {
		t.Errorf("expected isAnonymous true, got %v", gotInput.IsAnonymous)
	}
	if gotInput.Message != nil {
		t.Errorf("message was not in the patch, got %v", gotInput.Message)
	}
}
