package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

func captureRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/leads/capture", strings.NewReader(body))
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.RemoteAddr = "192.0.2.10:4000"
	return req
}

func TestLeadHandler_Capture(t *testing.T) {
	capturer := new(MockCapturer)
	capturer.On("Execute", mock.Anything, mock.MatchedBy(func(in usecase.CaptureLeadInput) bool {
		return in.Email == "ana@example.com" && in.ClientIP == "192.0.2.10" && in.UserAgent == "Mozilla/5.0"
	})).Return(&entity.Lead{ID: "lead-1"}, nil).Once()

	rec := httptest.NewRecorder()
	NewLeadHandler(capturer, nil).Capture(rec, captureRequest(`{"name":"Ana","email":"ana@example.com","slug":"lp"}`))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"success":true,"id":"lead-1"}`, rec.Body.String())
	capturer.AssertExpectations(t)
}

func TestLeadHandler_CaptureErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
	}{
		{"json invalido", `{`, nil, http.StatusBadRequest},
		{"validacao", `{}`, &usecase.DomainError{Code: "invalid_lead", Message: "email: is required", Err: usecase.ValidationErrors{{Field: "email", Message: "is required"}}}, http.StatusBadRequest},
		{"erro no banco", `{}`, &usecase.TechnicalError{Code: "lead_insert_failed", Message: "falha", Err: errors.New("db")}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			capturer := new(MockCapturer)
			if tt.err != nil {
				capturer.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err).Once()
			}

			rec := httptest.NewRecorder()
			NewLeadHandler(capturer, nil).Capture(rec, captureRequest(tt.body))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), `"success":false`)
			assert.NotContains(t, rec.Body.String(), "db")
			capturer.AssertExpectations(t)
		})
	}
}

func TestLeadHandler_ValidationDetails(t *testing.T) {
	capturer := new(MockCapturer)
	verrs := usecase.ValidationErrors{{Field: "email", Message: "is required"}}
	capturer.On("Execute", mock.Anything, mock.Anything).
		Return(nil, &usecase.DomainError{Code: "invalid_lead", Message: verrs.Error(), Err: verrs}).Once()

	rec := httptest.NewRecorder()
	NewLeadHandler(capturer, nil).Capture(rec, captureRequest(`{"name":"Ana"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Invalid lead","errors":[{"field":"email","message":"is required"}]}`, rec.Body.String())
}

func TestLeadHandler_RateLimit(t *testing.T) {
	capturer := new(MockCapturer)
	capturer.On("Execute", mock.Anything, mock.Anything).Return(&entity.Lead{ID: "x"}, nil)

	h := NewLeadHandler(capturer, nil)
	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		h.Capture(rec, captureRequest(`{"name":"Ana","email":"ana@example.com"}`))
		assert.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := httptest.NewRecorder()
	h.Capture(rec, captureRequest(`{"name":"Ana","email":"ana@example.com"}`))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	capturer.AssertNumberOfCalls(t, "Execute", 10)
}
