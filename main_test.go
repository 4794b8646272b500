package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Ductwork/internal/auth"
	"Ductwork/internal/calc/duct"
	"Ductwork/internal/config"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, tokenKey string) http.Handler {
	t.Helper()
	cfg, err := config.FromEnv(func(key string) (string, bool) {
		switch key {
		case "TOKEN_KEY":
			return tokenKey, true
		case "RATE_LIMIT":
			return "1000", true
		}
		return "", false
	})
	require.NoError(t, err)
	r := mux.NewRouter()
	HandleList(r, cfg, duct.Default())
	return CORS(r)
}

const batchBody = `{"items":[{"mode":"duct-size","shape":"round","material":"galvanized","airflow_cfm":400,"friction_rate":0.1,"velocity_limit_fpm":1200,"duct_length_ft":100}]}`

func TestRoutes(t *testing.T) {
	h := newTestServer(t, "secret")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tools/duct/materials", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/tools/duct/calc", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/premium/duct/batch", strings.NewReader(batchBody)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := (&auth.TokenGate{Key: []byte("secret")}).Issue("tester", time.Minute)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/premium/duct/batch", strings.NewReader(batchBody))
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestPremiumDisabledWithoutKey(t *testing.T) {
	h := newTestServer(t, "")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/premium/duct/batch", strings.NewReader(batchBody)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoadEngine(t *testing.T) {
	engine, err := loadEngine(config.Config{})
	require.NoError(t, err)
	assert.Len(t, engine.Materials, 4)

	_, err = loadEngine(config.Config{TablesPath: "conf/missing.ini"})
	assert.Error(t, err)

	engine, err = loadEngine(config.Config{TablesPath: "conf/duct.ini"})
	require.NoError(t, err)
	assert.NotEmpty(t, engine.Sizes.Round)
}
