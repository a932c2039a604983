package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orchids/plays-registry/internal/domain"
	"github.com/orchids/plays-registry/internal/repository/memory"
	"github.com/orchids/plays-registry/internal/service"
	"github.com/orchids/plays-registry/pkg/logger"
)

type fakeAuditReader struct {
	logs      []*domain.AuditLog
	err       error
	gotPlayID string
	gotLimit  int
	gotOffset int
}

func (f *fakeAuditReader) GetRecent(_ context.Context, limit, offset int) ([]*domain.AuditLog, error) {
	f.gotLimit, f.gotOffset = limit, offset
	return f.logs, f.err
}

func (f *fakeAuditReader) GetByPlay(_ context.Context, playID string, limit, offset int) ([]*domain.AuditLog, error) {
	f.gotPlayID, f.gotLimit, f.gotOffset = playID, limit, offset
	return f.logs, f.err
}

func newAdminRouter(audit AuditReader) *gin.Engine {
	store := memory.NewPlayStore()
	h := NewAdminHandler(service.NewMonitoringService(store, nil), nil, audit, logger.Nop())

	router := gin.New()
	router.GET("/audit", h.GetAuditLogs)
	router.GET("/system", h.GetSystemMetrics)
	return router
}

func serve(router *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestGetAuditLogs_Disabled(t *testing.T) {
	w := serve(newAdminRouter(nil), "/audit")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetAuditLogs_Recent(t *testing.T) {
	reader := &fakeAuditReader{logs: []*domain.AuditLog{
		domain.NewAuditLog("req-1", domain.ActionPlayCreate, uuid.NewString(), "10.0.0.1", "curl", nil),
	}}

	w := serve(newAdminRouter(reader), "/audit?limit=10&offset=5")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, reader.gotLimit)
	assert.Equal(t, 5, reader.gotOffset)

	var body struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, domain.ActionPlayCreate, body.Data[0]["action"])
}

func TestGetAuditLogs_ByPlay(t *testing.T) {
	reader := &fakeAuditReader{}
	id := uuid.NewString()

	w := serve(newAdminRouter(reader), "/audit?play_id="+id)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, reader.gotPlayID)
	assert.Equal(t, 50, reader.gotLimit)
}

func TestGetAuditLogs_EmptyIsArray(t *testing.T) {
	w := serve(newAdminRouter(&fakeAuditReader{}), "/audit")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.JSONEq(t, `[]`, string(body["data"]))
}

func TestGetAuditLogs_BadParams(t *testing.T) {
	router := newAdminRouter(&fakeAuditReader{})

	for _, target := range []string{"/audit?limit=1000", "/audit?offset=-1", "/audit?play_id=nope"} {
		assert.Equal(t, http.StatusUnprocessableEntity, serve(router, target).Code, target)
	}
}

func TestGetAuditLogs_ReadError(t *testing.T) {
	w := serve(newAdminRouter(&fakeAuditReader{err: errors.New("db down")}), "/audit")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetSystemMetrics(t *testing.T) {
	w := serve(newAdminRouter(nil), "/system")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "system")
	assert.Contains(t, body, "store")
	assert.NotContains(t, body, "queue")
}
