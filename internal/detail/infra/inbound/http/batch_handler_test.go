package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/detailstream/internal/config"
	"github.com/davicafu/detailstream/internal/detail/application"
	"github.com/davicafu/detailstream/internal/detail/infra/outbound/memory"
)

func setupRouter(t *testing.T) (*gin.Engine, *memory.AppendLog) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	appendLog := memory.NewAppendLog()
	router := application.NewEmailDomainRouter(config.RoutingRules{
		Attribute:        "email",
		DefaultStream:    "prod",
		TestStream:       "test",
		TestEmailDomains: []string{"example.com"},
	})
	relay := application.NewRelay(
		application.NewExtractor("medicaid_detail", "uuid", clockwork.NewFakeClock(), zap.NewNop()),
		application.NewDispatcher(appendLog, zap.NewNop()),
		router, nil, zap.NewNop(),
	)

	r := gin.New()
	RegisterBatchRoutes(r, NewBatchHandler(relay, zap.NewNop()))
	return r, appendLog
}

func TestPostBatch_DeliversInsert(t *testing.T) {
	r, appendLog := setupRouter(t)
	body, err := os.ReadFile("../../../application/testdata/insert.json")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/batches", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data application.Result `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "prod", resp.Data.Stream)
	assert.Equal(t, 1, resp.Data.BatchSize)
	require.Len(t, resp.Data.Records, 1)
	assert.Equal(t, "TurbocaidApplication", resp.Data.Records[0].RecordType)

	entries := appendLog.Records("prod")
	require.Len(t, entries, 1)
	assert.Equal(t, "6f1d2c1e-6a55-4b8f-9a4e-0c1f5a7b2d10", entries[0].PartitionKey)
}

func TestPostBatch_MalformedBody(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/batches", bytes.NewBufferString(`{"Records": [`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "bad_request")
}

func TestPostBatch_MissingEntityKey(t *testing.T) {
	r, appendLog := setupRouter(t)
	body := `{"Records":[{"eventID":"e-1","eventName":"INSERT","dynamodb":{"NewImage":{"email":{"S":"a@b.com"}}}}]}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/batches", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, appendLog.Records("prod"))
}

func TestHealth(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
