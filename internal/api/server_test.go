package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/loading"
	loadingMocks "github.com/vfg2006/sales-dashboard-api/internal/usecases/loading/mocks"
	reportingMocks "github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting/mocks"
	"go.uber.org/mock/gomock"
)

func testConfig(secret string) *config.Config {
	return &config.Config{
		App:    config.App{Environment: "development"},
		Server: config.Server{Host: "localhost", Port: "0", AllowedOrigins: []string{"http://localhost:3000"}},
		Auth:   config.Auth{Secret: secret, TokenTTL: time.Hour},
	}
}

func TestNewHandler_Autenticacao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := testConfig("segredo-de-teste")
	auth := authenticating.NewService(cfg.Auth)
	token, _, err := auth.IssueToken("gerente")
	require.NoError(t, err)

	reporter := reportingMocks.NewMockReporter(ctrl)
	loader := loadingMocks.NewMockLoader(ctrl)
	loader.EXPECT().Status().Return(loading.Status{}).AnyTimes()

	h := NewHandler(cfg, reporter, loader, auth, nil)

	t.Run("Healthcheck sem token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
	})

	t.Run("Rota protegida sem token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/branches", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Rota protegida com token", func(t *testing.T) {
		reporter.EXPECT().ListBranches(gomock.Any()).Return([]domain.Branch{{TaxID: "111", Name: "Centro"}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/branches", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestNewHandler_SemAutenticacao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := testConfig("")
	reporter := reportingMocks.NewMockReporter(ctrl)
	reporter.EXPECT().ListBranches(gomock.Any()).Return(nil, errors.New("fonte indisponível"))

	h := NewHandler(cfg, reporter, loadingMocks.NewMockLoader(ctrl), authenticating.NewService(cfg.Auth), nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/branches", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "SRV_002")
}

func TestServer_ShutdownExecutaLimpeza(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := testConfig("")
	closed := 0
	srv := New(cfg, reportingMocks.NewMockReporter(ctrl), loadingMocks.NewMockLoader(ctrl),
		authenticating.NewService(cfg.Auth), nil,
		func() error { closed++; return nil },
		func() error { closed++; return errors.New("já fechado") },
	)

	require.NoError(t, srv.Shutdown(context.Background()))
	assert.Equal(t, 2, closed)
}
