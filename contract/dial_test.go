package contract

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiestadao/fiesta-gov/config"
)

func chainIDServer(t *testing.T, chainID string, seenClientID *string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seenClientID = r.Header.Get(ClientIDHeader)
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.Header().Set("Content-Type", "application/json")
		resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
		if req.Method == "eth_chainId" {
			resp["result"] = chainID
		} else {
			resp["error"] = map[string]interface{}{"code": -32601, "message": "method not found"}
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestDial(t *testing.T) {
	var seen string
	srv := chainIDServer(t, "0x51", &seen)
	defer srv.Close()

	n, _ := config.LookupNetwork(config.NetworkShibuya)
	n.RPCURL = srv.URL
	cli, err := Dial(context.Background(), n, "dashboard")
	require.NoError(t, err)
	defer cli.Close()
	assert.Equal(t, "dashboard", seen)
}

func TestDialWrongNetwork(t *testing.T) {
	var seen string
	srv := chainIDServer(t, "0x1", &seen)
	defer srv.Close()

	n, _ := config.LookupNetwork(config.NetworkShibuya)
	n.RPCURL = srv.URL
	_, err := Dial(context.Background(), n, "")
	assert.ErrorIs(t, err, ErrWrongNetwork)
}

func TestDialNoActiveChain(t *testing.T) {
	_, err := Dial(context.Background(), config.Network{}, "")
	assert.ErrorIs(t, err, ErrNoActiveChain)
}
