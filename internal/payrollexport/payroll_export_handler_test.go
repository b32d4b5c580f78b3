package payrollexport_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"elec-payroll/internal/payrollexport"
	payrollexporterrors "elec-payroll/internal/payrollexport/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type fakeExportService struct {
	payrollexport.Service
	createFn   func(ctx context.Context, companyID, actorID string, req payrollexport.CreateExportRequest) (payrollexport.CreateExportResponse, error)
	downloadFn func(ctx context.Context, companyID, id string) (payrollexport.ExportFile, error)
	syncFn     func(ctx context.Context, companyID, actorID, id string) (payrollexport.ExportResponse, error)
}

func (f *fakeExportService) Create(ctx context.Context, companyID, actorID string, req payrollexport.CreateExportRequest) (payrollexport.CreateExportResponse, error) {
	return f.createFn(ctx, companyID, actorID, req)
}

func (f *fakeExportService) Download(ctx context.Context, companyID, id string) (payrollexport.ExportFile, error) {
	return f.downloadFn(ctx, companyID, id)
}

func (f *fakeExportService) MarkSynced(ctx context.Context, companyID, actorID, id string) (payrollexport.ExportResponse, error) {
	return f.syncFn(ctx, companyID, actorID, id)
}

func TestPayrollExportHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("caches response and releases lock", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		resp := payrollexport.CreateExportResponse{ExportResponse: payrollexport.ExportResponse{ID: "x1", Provider: "xero"}}
		payload, _ := json.Marshal(resp)
		mock.ExpectSet("idemp:cache", payload, 24*time.Hour).SetVal("OK")
		mock.ExpectDel("idemp:lock").SetVal(1)

		svc := &fakeExportService{
			createFn: func(ctx context.Context, companyID, actorID string, req payrollexport.CreateExportRequest) (payrollexport.CreateExportResponse, error) {
				assert.Equal(t, "company-1", companyID)
				assert.Equal(t, "actor-1", actorID)
				assert.Equal(t, "xero", req.Provider)
				return resp, nil
			},
		}
		h := payrollexport.NewHandlerWithRedis(svc, rdb)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/payroll/exports",
			strings.NewReader(`{"provider":"xero","period_start":"2024-01-01","period_end":"2024-01-31"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("company_id", "company-1")
		c.Set("user_id_validated", "actor-1")
		c.Set("idempotency_lock_key", "idemp:lock")
		c.Set("idempotency_cache_key", "idemp:cache")

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing provider", func(t *testing.T) {
		h := payrollexport.NewHandler(&fakeExportService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/payroll/exports",
			strings.NewReader(`{"period_start":"2024-01-01","period_end":"2024-01-31"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var env apiEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("no entries is unprocessable", func(t *testing.T) {
		svc := &fakeExportService{
			createFn: func(ctx context.Context, companyID, actorID string, req payrollexport.CreateExportRequest) (payrollexport.CreateExportResponse, error) {
				return payrollexport.CreateExportResponse{}, payrollexporterrors.ErrNoPayrollEntries
			},
		}
		h := payrollexport.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/payroll/exports",
			strings.NewReader(`{"provider":"sage","period_start":"2024-01-01","period_end":"2024-01-31"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestPayrollExportHandler_Download(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeExportService{
		downloadFn: func(ctx context.Context, companyID, id string) (payrollexport.ExportFile, error) {
			assert.Equal(t, "exp-1", id)
			return payrollexport.ExportFile{Name: "payroll-export-xero-a-to-b.csv", Content: []byte("a,b")}, nil
		},
	}
	h := payrollexport.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/payroll/exports/exp-1/download", nil)
	c.Params = gin.Params{{Key: "id", Value: "exp-1"}}

	h.Download(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="payroll-export-xero-a-to-b.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "a,b", w.Body.String())
}

func TestPayrollExportHandler_MarkSynced_InvalidTransition(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeExportService{
		syncFn: func(ctx context.Context, companyID, actorID, id string) (payrollexport.ExportResponse, error) {
			return payrollexport.ExportResponse{}, payrollexporterrors.ErrInvalidStatusTransition
		},
	}
	h := payrollexport.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/payroll/exports/x/sync", nil)
	c.Params = gin.Params{{Key: "id", Value: "x"}}

	h.MarkSynced(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "INVALID_STATE", env.Error.Code)
}
