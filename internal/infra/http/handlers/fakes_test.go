package handlers

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type fakeSettingsRepo struct {
	settings entity.Settings
	err      error
}

func (f *fakeSettingsRepo) Get(context.Context) (*entity.Settings, error) {
	if f.err != nil {
		return nil, f.err
	}
	s := f.settings
	return &s, nil
}

type fakeLeadRepo struct {
	mu    sync.Mutex
	leads []*entity.Lead
}

func (f *fakeLeadRepo) Create(_ context.Context, lead *entity.Lead) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.leads = append(f.leads, lead)
	return nil
}

func (f *fakeLeadRepo) FindByID(_ context.Context, id string) (*entity.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.leads {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, entity.ErrLeadNotFound
}

func (f *fakeLeadRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.leads)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Execute(ctx context.Context, provider string, input entity.ConversionInput) (*entity.DispatchResult, error) {
	args := m.Called(ctx, provider, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DispatchResult), args.Error(1)
}

type MockCapturer struct {
	mock.Mock
}

func (m *MockCapturer) Execute(ctx context.Context, input usecase.CaptureLeadInput) (*entity.Lead, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

type MockStageChanger struct {
	mock.Mock
}

func (m *MockStageChanger) Execute(ctx context.Context, input usecase.StageChangeInput) (*usecase.StageChangeOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.StageChangeOutput), args.Error(1)
}
