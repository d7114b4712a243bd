package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onsenswap/onsenswap/app"
	"github.com/onsenswap/onsenswap/testutil/node"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() Config {
	config := DefaultConfig()
	config.RateLimit.Enabled = false
	config.CORSOrigins = []string{"http://localhost:3000"}
	return config
}

// setupTestServer creates a server over a node whose pool holds 5000/10000
func setupTestServer(t *testing.T, mutate ...func(*Config)) (*Server, *node.Fixture) {
	t.Helper()
	f := node.Setup(t, 5000, 10000)

	config := testConfig()
	for _, m := range mutate {
		m(&config)
	}
	server, err := NewServer(f.App, config)
	require.NoError(t, err)
	t.Cleanup(server.Close)
	return server, f
}

func doRequest(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		bz, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(bz)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealthCheck(t *testing.T) {
	server, _ := setupTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])

	w = doRequest(t, server, http.MethodGet, "/health/detailed", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode(t, w)["status"])
}

func TestStatus(t *testing.T) {
	server, f := setupTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/status", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "onsen-test", resp.ChainID)
	assert.Equal(t, f.App.Height(), resp.Height)
	assert.True(t, resp.Initialized)
	assert.True(t, resp.TxEnabled)
}

func TestPairQueries(t *testing.T) {
	server, f := setupTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/pair/reserves", nil)
	require.Equal(t, http.StatusOK, w.Code)
	reserves := decode(t, w)
	assert.Equal(t, "5000", reserves["reserve0"])
	assert.Equal(t, "10000", reserves["reserve1"])

	w = doRequest(t, server, http.MethodGet, "/api/pair/k-last", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "50000000", decode(t, w)["k_last"])

	w = doRequest(t, server, http.MethodGet, "/api/pair/owner", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, node.Owner.String(), decode(t, w)["owner"])

	w = doRequest(t, server, http.MethodGet, "/api/pair", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, f.Pool.String(), decode(t, w)["pool"])

	w = doRequest(t, server, http.MethodGet, "/api/pair/invariants", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["broken"])
}

func TestQuote(t *testing.T) {
	server, f := setupTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/pair/quote?asset_in="+f.Asset0.String()+"&amount_in=1000", nil)
	require.Equal(t, http.StatusOK, w.Code)
	quote := decode(t, w)
	assert.Equal(t, "0", quote["amount0_out"])
	assert.Equal(t, "1662", quote["amount1_out"])

	tests := []struct {
		name   string
		query  string
		status int
		code   string
	}{
		{"negative amount", "asset_in=" + f.Asset0.String() + "&amount_in=-5", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad account", "asset_in=nope&amount_in=5", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"not traded", "asset_in=" + node.Trader.String() + "&amount_in=5", http.StatusBadRequest, "pair:10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, server, http.MethodGet, "/api/pair/quote?"+tt.query, nil)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decode(t, w)["code"])
		})
	}
}

func TestSwapExactInFlow(t *testing.T) {
	server, f := setupTestServer(t)

	w := doRequest(t, server, http.MethodPost, "/api/tx/swap-exact-in", SwapExactInRequest{
		Trader:   node.Trader.String(),
		AssetIn:  f.Asset0.String(),
		AmountIn: "1000",
		MinOut:   "1600",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, server, http.MethodGet, "/api/pair/swaps?limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var swaps SwapsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &swaps))
	require.Equal(t, 1, swaps.Count)
	assert.Equal(t, "1662", swaps.Swaps[0].Amount1Out.String())

	w = doRequest(t, server, http.MethodGet, "/api/tokens/"+f.Asset1.String()+"/balances/"+node.Trader.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1001662", decode(t, w)["balance"])

	w = doRequest(t, server, http.MethodGet, "/api/pair/reserves", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "6000", decode(t, w)["reserve0"])
}

func TestRawSwapAfterDeposit(t *testing.T) {
	server, f := setupTestServer(t)

	w := doRequest(t, server, http.MethodPost, "/api/tx/transfer", TransferRequest{
		Token:  f.Asset1.String(),
		From:   node.Trader.String(),
		To:     f.Pool.String(),
		Amount: "2000",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, server, http.MethodPost, "/api/tx/swap", SwapRequest{
		Recipient:  node.Trader.String(),
		Amount0Out: "831",
		Amount1Out: "0",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Height uint64 `json:"height"`
		Result struct {
			Record struct {
				Amount1In string `json:"amount1_in"`
				Reserve0  string `json:"reserve0"`
			} `json:"record"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2000", resp.Result.Record.Amount1In)
	assert.Equal(t, "4169", resp.Result.Record.Reserve0)
	assert.Equal(t, f.App.Height(), resp.Height)
}

func TestSwapErrors(t *testing.T) {
	server, f := setupTestServer(t)

	tests := []struct {
		name   string
		req    SwapRequest
		status int
		code   string
	}{
		{
			name:   "no input deposited",
			req:    SwapRequest{Recipient: node.Trader.String(), Amount0Out: "0", Amount1Out: "10"},
			status: http.StatusUnprocessableEntity,
			code:   "pair:6",
		},
		{
			name:   "zero outputs",
			req:    SwapRequest{Recipient: node.Trader.String(), Amount0Out: "0", Amount1Out: "0"},
			status: http.StatusUnprocessableEntity,
			code:   "pair:2",
		},
		{
			name:   "drains reserve",
			req:    SwapRequest{Recipient: node.Trader.String(), Amount0Out: "5000", Amount1Out: "0"},
			status: http.StatusUnprocessableEntity,
			code:   "pair:3",
		},
		{
			name:   "recipient is an asset",
			req:    SwapRequest{Recipient: f.Asset0.String(), Amount0Out: "1", Amount1Out: "0"},
			status: http.StatusUnprocessableEntity,
			code:   "pair:4",
		},
		{
			name:   "bad recipient",
			req:    SwapRequest{Recipient: "onsen1xyz", Amount0Out: "1", Amount1Out: "0"},
			status: http.StatusBadRequest,
			code:   "onsen:2",
		},
		{
			name:   "fractional amount",
			req:    SwapRequest{Recipient: node.Trader.String(), Amount0Out: "1.5", Amount1Out: "0"},
			status: http.StatusBadRequest,
			code:   "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			height := f.App.Height()
			w := doRequest(t, server, http.MethodPost, "/api/tx/swap", tt.req)
			require.Equal(t, tt.status, w.Code, w.Body.String())

			resp := decode(t, w)
			assert.Equal(t, tt.code, resp["code"])
			if strings.HasPrefix(tt.code, "pair:") {
				assert.NotEmpty(t, resp["details"])
			}
			assert.Equal(t, height, f.App.Height())
		})
	}
}

func TestSkimAndOwnershipRoutes(t *testing.T) {
	server, f := setupTestServer(t)

	w := doRequest(t, server, http.MethodPost, "/api/tx/skim", SkimRequest{
		Caller:    node.Trader.String(),
		Recipient: node.Trader.String(),
	})
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "pair:7", decode(t, w)["code"])

	w = doRequest(t, server, http.MethodPost, "/api/tx/transfer", TransferRequest{
		Token: f.Asset1.String(), From: node.Trader.String(), To: f.Pool.String(), Amount: "9",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, server, http.MethodPost, "/api/tx/skim", SkimRequest{
		Caller:    node.Owner.String(),
		Recipient: node.Owner.String(),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, server, http.MethodPost, "/api/tx/ownership/transfer", TransferOwnershipRequest{
		Caller:   node.Owner.String(),
		NewOwner: node.Trader.String(),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, server, http.MethodPost, "/api/tx/ownership/renounce", RenounceOwnershipRequest{Caller: node.Owner.String()})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, server, http.MethodPost, "/api/tx/ownership/renounce", RenounceOwnershipRequest{Caller: node.Trader.String()})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, server, http.MethodGet, "/api/pair/owner", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, node.Trader.String(), decode(t, w)["owner"])
}

func TestTokenRoutes(t *testing.T) {
	server, f := setupTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/tokens", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decode(t, w)["count"])

	w = doRequest(t, server, http.MethodGet, "/api/tokens/"+f.Asset0.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "TKA", decode(t, w)["symbol"])

	w = doRequest(t, server, http.MethodGet, "/api/tokens/"+f.Asset0.String()+"/balances", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decode(t, w)["count"])

	w = doRequest(t, server, http.MethodGet, "/api/tokens/"+node.Trader.String(), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "token:2", decode(t, w)["code"])

	w = doRequest(t, server, http.MethodPost, "/api/tx/tokens", CreateTokenRequest{
		Minter: node.Trader.String(), Symbol: "NEW", Decimals: 8,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, server, http.MethodPost, "/api/tx/tokens", CreateTokenRequest{
		Minter: node.Trader.String(), Symbol: "NEW", Decimals: 8,
	})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestCreatePairOnEmptyNode(t *testing.T) {
	empty, err := app.NewOnsenApp(log.NewNopLogger(), dbm.NewMemDB(), 10)
	require.NoError(t, err)
	server, err := NewServer(empty, testConfig())
	require.NoError(t, err)
	defer server.Close()

	w := doRequest(t, server, http.MethodGet, "/api/pair", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "pair:12", decode(t, w)["code"])

	w = doRequest(t, server, http.MethodGet, "/health/ready", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "degraded", decode(t, w)["status"])

	token0, err := empty.CreateToken(context.Background(), node.Minter, "AAA", 6)
	require.NoError(t, err)
	token1, err := empty.CreateToken(context.Background(), node.Minter, "BBB", 6)
	require.NoError(t, err)

	w = doRequest(t, server, http.MethodPost, "/api/tx/pair", CreatePairRequest{
		Creator: node.Owner.String(),
		Asset0:  token0.ID.String(),
		Asset1:  token1.ID.String(),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, server, http.MethodGet, "/api/pair/reserves", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", decode(t, w)["reserve0"])
}

func TestTxRoutesDisabled(t *testing.T) {
	server, _ := setupTestServer(t, func(c *Config) { c.EnableTx = false })

	w := doRequest(t, server, http.MethodPost, "/api/tx/skim", SkimRequest{})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvalidJSON(t *testing.T) {
	server, _ := setupTestServer(t)

	req, err := http.NewRequest(http.MethodPost, "/api/tx/swap", strings.NewReader("{"))
	require.NoError(t, err)
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode(t, w)["code"])

	w = doRequest(t, server, http.MethodPost, "/api/tx/skim", map[string]string{"caller": node.Owner.String()})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestIDAndHeaders(t *testing.T) {
	server, _ := setupTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/status", nil)
	_, err := uuid.Parse(w.Header().Get("X-Request-ID"))
	require.NoError(t, err)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	id := uuid.NewString()
	req, err := http.NewRequest(http.MethodGet, "/api/status", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", id)
	w = httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)
	assert.Equal(t, id, w.Header().Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	server, _ := setupTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, "/api/tx/swap", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.MethodPost, w.Header().Get("Access-Control-Allow-Methods"))

	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsRoute(t *testing.T) {
	server, _ := setupTestServer(t, func(c *Config) { c.ServeMetrics = true })

	doRequest(t, server, http.MethodGet, "/api/pair/reserves", nil)
	w := doRequest(t, server, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "onsenswap_api_requests_total")
	assert.Contains(t, w.Body.String(), "onsenswap_api_request_duration_seconds")
}

func TestAuditLog(t *testing.T) {
	dir := t.TempDir()
	server, _ := setupTestServer(t, func(c *Config) { c.AuditLogDir = dir })

	w := doRequest(t, server, http.MethodPost, "/api/tx/skim", SkimRequest{
		Caller:    node.Trader.String(),
		Recipient: node.Trader.String(),
	})
	require.Equal(t, http.StatusForbidden, w.Code)
	doRequest(t, server, http.MethodGet, "/api/pair/reserves", nil)

	bz, err := os.ReadFile(filepath.Join(dir, auditFileName))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(bz)), "\n")
	require.Len(t, lines, 1)

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &event))
	assert.Equal(t, "tx", event["event_type"])
	assert.Equal(t, "POST /api/tx/skim", event["action"])
	assert.Equal(t, "failure", event["status"])
	assert.Equal(t, "pair:7", event["error_code"])
}
