package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.Handler, onAuthExpired func()) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(ClientConfig{
		BaseURL:    srv.URL,
		Token:      "test-token",
		TimeoutMs:  2000,
		MaxRetries: 1,
		RetryDelay: time.Millisecond,
	}, nil, onAuthExpired)
	return c, srv
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": 1, "nombre_entidad": "Alcaldía", "estado": "Borrador"},
		})
	})
	c, _ := testClient(t, handler, nil)

	plans, err := c.ListPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, "Alcaldía", plans[0].EntityName)
}

func TestClient_ExhaustedRetriesReportUnavailable(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})
	c, _ := testClient(t, handler, nil)

	_, err := c.ListPlans(context.Background())
	require.ErrorIs(t, err, ErrServerUnavailable)
	// MaxRetries=1 means two attempts total.
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_AuthExpiredNotRetried(t *testing.T) {
	var calls atomic.Int32
	var expired atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	c, _ := testClient(t, handler, func() { expired.Add(1) })

	_, err := c.ListPlans(context.Background())
	require.ErrorIs(t, err, ErrAuthExpired)
	assert.Equal(t, int32(1), calls.Load(), "auth rejections must not be retried")
	assert.Equal(t, int32(1), expired.Load(), "expiry callback fires once")
}

func TestClient_AuthExpiredDropsToken(t *testing.T) {
	var auths []string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auths = append(auths, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
	})
	c, _ := testClient(t, handler, nil)

	_, err := c.ListPlans(context.Background())
	require.ErrorIs(t, err, ErrAuthExpired)

	// A later call must not replay the rejected credential.
	_, err = c.ListPlans(context.Background())
	require.ErrorIs(t, err, ErrAuthExpired)

	require.Len(t, auths, 2)
	assert.Equal(t, "Bearer test-token", auths[0])
	assert.Empty(t, auths[1], "token must be cleared after an auth rejection")
}

func TestClient_BusinessErrorSurfacesVerbatim(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("El indicador ya tiene un plan activo"))
	})
	c, _ := testClient(t, handler, nil)

	_, err := c.CreatePlan(context.Background(), PlanPayload{EntityName: "Alcaldía"})
	require.Error(t, err)
	assert.True(t, IsConflict(err))
	assert.Contains(t, err.Error(), "El indicador ya tiene un plan activo")
	assert.Equal(t, int32(1), calls.Load(), "4xx must not be retried")
}

func TestClient_BlankFieldsTravelAsNull(t *testing.T) {
	var body map[string]interface{}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"id": 7, "nombre_entidad": "Alcaldía"})
	})
	c, _ := testClient(t, handler, nil)

	p := PlanPayload{
		EntityName: "Alcaldía",
		Indicator:  Nullable("IND-1"),
		StartDate:  Nullable("   "),
	}
	created, err := c.CreatePlan(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)

	assert.Equal(t, "IND-1", body["indicador"])
	v, present := body["fecha_inicio"]
	assert.True(t, present)
	assert.Nil(t, v, "blank dates must be explicit nulls, not empty strings")
}

func TestClient_RequestCarriesAuthAndRequestID(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		_ = json.NewEncoder(w).Encode([]string{"IND-1", " ", "IND-2"})
	})
	c, _ := testClient(t, handler, nil)

	used, err := c.UsedIndicators(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"IND-1", "IND-2"}, used)
}

func TestClient_SetPlanStateEncodesToken(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/seguimiento/4/estado", r.URL.Path)
		assert.Equal(t, "Habilitado seguimiento", r.URL.Query().Get("estado"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id": 4, "nombre_entidad": "Alcaldía", "estado": "Habilitado seguimiento",
		})
	})
	c, _ := testClient(t, handler, nil)

	updated, err := c.SetPlanState(context.Background(), 4, "Habilitado seguimiento")
	require.NoError(t, err)
	assert.Equal(t, "enabled_for_follow_up", string(updated.State))
	// An enabled plan implies approval even without a decision field.
	assert.Equal(t, "approved", string(updated.Decision))
}
