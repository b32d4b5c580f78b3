package rbac

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"elec-payroll/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	got EnforceRequest
	err error
}

func (f *fakeService) LoadCompanyPolicy(companyID string) error { return nil }

func (f *fakeService) Enforce(req EnforceRequest) (bool, error) {
	f.got = req
	if f.err != nil {
		return false, f.err
	}
	return req.Resource == "timesheet" && req.Action == "read", nil
}

type envelope struct {
	Ok   bool            `json:"ok"`
	Data EnforceResponse `json:"data"`
}

func enforceRequest(t *testing.T, router *gin.Engine, body EnforceRequest) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_Enforce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("uses caller company", func(t *testing.T) {
		svc := &fakeService{}
		router := gin.New()
		router.POST("/rbac/enforce", func(c *gin.Context) { c.Set("company_id", "company-auth") }, NewHandler(svc).Enforce)

		w := enforceRequest(t, router, EnforceRequest{EmployeeID: " emp-1 ", CompanyID: "company-other", Resource: "timesheet", Action: "read"})

		assert.Equal(t, http.StatusOK, w.Code)
		var env envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.True(t, env.Data.Allowed)
		assert.Equal(t, "company-auth", svc.got.CompanyID)
		assert.Equal(t, "emp-1", svc.got.EmployeeID)
	})

	t.Run("missing fields", func(t *testing.T) {
		router := gin.New()
		router.POST("/rbac/enforce", NewHandler(&fakeService{}).Enforce)

		w := enforceRequest(t, router, EnforceRequest{EmployeeID: "emp-1"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown resource", func(t *testing.T) {
		router := gin.New()
		router.POST("/rbac/enforce", NewHandler(&fakeService{}).Enforce)

		w := enforceRequest(t, router, EnforceRequest{EmployeeID: "e", CompanyID: "c", Resource: "leave", Action: domain.ActionRead})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("service error", func(t *testing.T) {
		router := gin.New()
		router.POST("/rbac/enforce", NewHandler(&fakeService{err: errors.New("db down")}).Enforce)

		w := enforceRequest(t, router, EnforceRequest{EmployeeID: "e", CompanyID: "c", Resource: domain.ResourceExport, Action: domain.ActionSync})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
