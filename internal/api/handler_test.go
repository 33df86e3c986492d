package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/api"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/app"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/config"
	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/db"
)

type testServer struct {
	srv  *httptest.Server
	seed *app.SeedResult
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	write, read := db.OpenTestSQLite(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{
		CashGraceWindow: 24 * time.Hour,
		Auth: config.AuthConfig{
			JWTSecret:    "test-secret",
			SessionTTL:   time.Hour,
			BcryptCost:   bcrypt.MinCost,
			MinReasonLen: 20,
		},
	}
	a := app.New(app.Deps{Cfg: cfg, WriteDB: write, ReadDB: read, Logger: logger})
	seed, err := a.SeedDemo(context.Background())
	require.NoError(t, err)

	h := api.NewHandler(a.Services.Sessions, nil, a.Services.Refunds,
		a.Services.Engine, a.Services.Audit, logger)
	r := chi.NewRouter()
	h.Routes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &testServer{srv: srv, seed: seed}
}

type response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) (int, response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, ts.srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var out response
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return res.StatusCode, out
}

func (ts *testServer) login(t *testing.T, email string) string {
	t.Helper()
	status, res := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"tenant":   ts.seed.TenantID,
		"email":    email,
		"password": ts.seed.Logins[email],
	})
	require.Equal(t, http.StatusOK, status)
	var lr struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &lr))
	require.NotEmpty(t, lr.Token)
	return lr.Token
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	status, res := ts.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, res.Success)
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	status, res := ts.do(t, http.MethodGet, "/api/audit", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, res.Success)

	status, _ = ts.do(t, http.MethodGet, "/api/audit", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	ts := newTestServer(t)
	status, res := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"tenant":   ts.seed.TenantID,
		"email":    "owner@demo.hotel",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusForbidden, status)
	require.NotNil(t, res.Error)
	assert.Equal(t, "invalid credentials", res.Error.Message)
}

func TestRefundFlowOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	reception := ts.login(t, "reception@demo.hotel")
	manager := ts.login(t, "manager@demo.hotel")

	status, res := ts.do(t, http.MethodPost, "/api/refunds", reception, map[string]any{
		"booking_id":  ts.seed.BookingID,
		"amount":      50000,
		"reason_code": "GUEST_COMPLAINT",
		"reason_text": "noisy room, agreed partial refund",
	})
	require.Equal(t, http.StatusCreated, status)
	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &created))
	assert.Equal(t, "PENDING", created.Status)

	// The requester's role cannot approve at all.
	status, _ = ts.do(t, http.MethodPost, "/api/refunds/"+created.ID+"/approve", reception,
		map[string]string{"refund_mode": "CREDIT_NOTE"})
	assert.Equal(t, http.StatusForbidden, status)

	status, res = ts.do(t, http.MethodPost, "/api/refunds/"+created.ID+"/approve", manager,
		map[string]string{"refund_mode": "CREDIT_NOTE"})
	require.Equal(t, http.StatusOK, status)
	var note struct {
		Number int64 `json:"number"`
		Amount int64 `json:"amount"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &note))
	assert.EqualValues(t, 1, note.Number)
	assert.EqualValues(t, 50000, note.Amount)

	// Second approval attempt conflicts.
	status, res = ts.do(t, http.MethodPost, "/api/refunds/"+created.ID+"/approve", manager,
		map[string]string{"refund_mode": "CASH"})
	assert.Equal(t, http.StatusConflict, status)
	require.NotNil(t, res.Error)
	assert.Equal(t, "ALREADY_RESOLVED", res.Error.Code)
}

func TestEngineEndpointsEnforceRolesAndGuard(t *testing.T) {
	ts := newTestServer(t)
	manager := ts.login(t, "manager@demo.hotel")
	owner := ts.login(t, "owner@demo.hotel")

	// Engine endpoints are owner-only; even a manager is turned away.
	status, _ := ts.do(t, http.MethodPost, "/api/engine/invoice/"+ts.seed.InvoiceID+"/void", manager,
		map[string]string{"reason": "long enough reason for the gate", "confirm_password": "manager-pass-123"})
	assert.Equal(t, http.StatusForbidden, status)

	// Short reason fails validation before anything happens.
	status, res := ts.do(t, http.MethodPost, "/api/engine/invoice/"+ts.seed.InvoiceID+"/void", owner,
		map[string]string{"reason": "too short", "confirm_password": "owner-pass-123"})
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, res.Error)
	assert.Equal(t, "REASON_TOO_SHORT", res.Error.Code)

	// Wrong password fails the credential re-confirmation.
	status, res = ts.do(t, http.MethodPost, "/api/engine/invoice/"+ts.seed.InvoiceID+"/void", owner,
		map[string]string{"reason": "duplicate invoice issued by mistake", "confirm_password": "wrong"})
	assert.Equal(t, http.StatusForbidden, status)
	require.NotNil(t, res.Error)
	assert.Equal(t, "PASSWORD_CONFIRMATION_FAILED", res.Error.Code)

	// A well-formed request goes through.
	status, res = ts.do(t, http.MethodPost, "/api/engine/invoice/"+ts.seed.InvoiceID+"/void", owner,
		map[string]string{"reason": "duplicate invoice issued by mistake", "confirm_password": "owner-pass-123"})
	require.Equal(t, http.StatusOK, status)
	var inv struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &inv))
	assert.Equal(t, "VOID", inv.Status)
}

func TestAuditListRestrictedByRole(t *testing.T) {
	ts := newTestServer(t)
	owner := ts.login(t, "owner@demo.hotel")
	manager := ts.login(t, "manager@demo.hotel")

	status, _ := ts.do(t, http.MethodGet, "/api/audit", manager, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, res := ts.do(t, http.MethodGet, "/api/audit", owner, nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, res.Success)
}

func TestUnknownJSONFieldRejected(t *testing.T) {
	ts := newTestServer(t)
	reception := ts.login(t, "reception@demo.hotel")

	status, res := ts.do(t, http.MethodPost, "/api/refunds", reception, map[string]any{
		"booking_id": ts.seed.BookingID,
		"amount":     1000,
		"surprise":   true,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, res.Error)
}
