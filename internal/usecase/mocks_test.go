package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/meta"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context) (*entity.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Settings), args.Error(1)
}

type MockConversionProvider struct {
	mock.Mock
	name string
}

func (m *MockConversionProvider) Name() string {
	return m.name
}

func (m *MockConversionProvider) IsEnabled(settings entity.Settings) bool {
	args := m.Called(settings)
	return args.Bool(0)
}

func (m *MockConversionProvider) BuildEvent(input entity.ConversionInput) entity.ConversionEvent {
	args := m.Called(input)
	return args.Get(0).(entity.ConversionEvent)
}

func (m *MockConversionProvider) Send(ctx context.Context, ev entity.ConversionEvent, settings entity.Settings) (*entity.DispatchResult, error) {
	args := m.Called(ctx, ev, settings)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DispatchResult), args.Error(1)
}

type MockLeadFetcher struct {
	mock.Mock
}

func (m *MockLeadFetcher) FetchLead(ctx context.Context, leadgenID, pageAccessToken string) (*meta.LeadgenResponse, error) {
	args := m.Called(ctx, leadgenID, pageAccessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*meta.LeadgenResponse), args.Error(1)
}

type MockConversionQueue struct {
	mock.Mock
}

func (m *MockConversionQueue) Enqueue(ctx context.Context, job entity.ConversionJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}
