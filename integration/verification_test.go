//go:build integration

// Package integration contains integration tests for workbench.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defectsFixture = `[
  {"Empresa": "Metalurgica Norte", "ProduccionTotal": 1000, "CantidaPiezasConFallas": 20},
  {"Empresa": "Plasticos del Sur", "ProduccionTotal": 500, "CantidaPiezasConFallas": 5},
  {"Empresa": "Metalurgica Norte", "ProduccionTotal": 1000, "CantidaPiezasConFallas": 30}
]`

// freeAddr reserves a loopback port and releases it for the server to bind.
func freeAddr(t *testing.T) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())
	return addr
}

// startServe launches workbench serve and waits until both services answer.
func startServe(t *testing.T, dogsAddr, defectsAddr string) {
	t.Helper()
	dir := t.TempDir()
	defectsFile := filepath.Join(dir, "defects.json")
	require.NoError(t, os.WriteFile(defectsFile, []byte(defectsFixture), 0o644))

	cmd := exec.Command(getWorkbenchBinary(), "serve",
		"--dogs-addr", dogsAddr,
		"--defects-addr", defectsAddr,
		"--dogs-db-connect", filepath.Join(dir, "data.json"),
		"--defects-file", defectsFile,
		"--log-level", "warn",
	)
	cmd.Stderr = os.Stderr
	require.NoError(t, cmd.Start())
	t.Cleanup(func() {
		_ = cmd.Process.Signal(os.Interrupt)
		_ = cmd.Wait()
	})

	for _, addr := range []string{dogsAddr, defectsAddr} {
		require.Eventually(t, func() bool {
			conn, err := net.DialTimeout("tcp", addr, 100*time.Millisecond)
			if err != nil {
				return false
			}
			_ = conn.Close()
			return true
		}, 10*time.Second, 50*time.Millisecond, "service on %s never came up", addr)
	}
}

func request(t *testing.T, method, url, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

// TestServeEndToEnd drives both HTTP services through the real binary.
func TestServeEndToEnd(t *testing.T) {
	dogsAddr, defectsAddr := freeAddr(t), freeAddr(t)
	startServe(t, dogsAddr, defectsAddr)
	dogsURL := fmt.Sprintf("http://%s/", dogsAddr)

	status, body := request(t, http.MethodPost, dogsURL,
		`{"name":"Toby","breed":"Beagle","age":3,"weight":12.5,"intakeDate":"2024-01-10"}`)
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body = request(t, http.MethodPost, dogsURL,
		`{"name":"Rex","breed":"Boxer","age":"5","weight":30,"intakeDate":"2023-05-01"}`)
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body = request(t, http.MethodPost, dogsURL, `{"name":"Nope"}`)
	assert.Equal(t, http.StatusBadRequest, status, string(body))

	status, body = request(t, http.MethodGet, dogsURL+"?sort=age&order=desc", "")
	require.Equal(t, http.StatusOK, status)
	var listed []map[string]any
	require.NoError(t, json.Unmarshal(body, &listed))
	require.Len(t, listed, 2)
	assert.Equal(t, "Rex", listed[0]["name"])

	status, body = request(t, http.MethodPatch, dogsURL+"1", `{"weight":13}`)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Contains(t, string(body), `"weight":13`)

	status, _ = request(t, http.MethodDelete, dogsURL+"2", "")
	assert.Equal(t, http.StatusOK, status)
	status, _ = request(t, http.MethodGet, dogsURL+"2", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, body = request(t, http.MethodGet, fmt.Sprintf("http://%s/data", defectsAddr), "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{
		"Metalurgica Norte": {"Empresa": "Metalurgica Norte", "ProduccionTotal": 2000, "CantidaPiezasConFallas": 50,
			"CantidadPiezasOk": 1950, "PPiezasOk": 97.5, "PPiezasError": 2.5},
		"Plasticos del Sur": {"Empresa": "Plasticos del Sur", "ProduccionTotal": 500, "CantidaPiezasConFallas": 5,
			"CantidadPiezasOk": 495, "PPiezasOk": 99, "PPiezasError": 1}
	}`, string(body))
}
