// Docker HEALTHCHECK probe for the API server:
//
//	HEALTHCHECK CMD ["/ping"]
//
// Exits 0 when GET /healthz answers {"status":"ok"}.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"
)

const (
	defaultPort          = 5001
	healthEndpoint       = "/healthz"
	expectedHealthStatus = "ok"
	requestTimeout       = 2 * time.Second

	// exit codes
	codeRequestFailed     = 2
	codeDecodeError       = 4
	codeReportedUnhealthy = 5
)

// healthResp mirrors the /healthz body. Error is only set when the database is down.
type healthResp struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func main() {
	url := target()
	client := &http.Client{Timeout: requestTimeout}

	resp, err := client.Get(url)
	if err != nil {
		fail(codeRequestFailed, "request failed: %v", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("failed to close response body: %v", err)
		}
	}()

	var h healthResp
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		fail(codeDecodeError, "decode error (HTTP %d): %v", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK || h.Status != expectedHealthStatus {
		fail(codeReportedUnhealthy, "unhealthy (HTTP %d): status=%q error=%q", resp.StatusCode, h.Status, h.Error)
	}

	log.Printf("service healthy at %s", url)
}

// target honours PING_URL, then APP_PORT, then the default port.
func target() string {
	if v := os.Getenv("PING_URL"); v != "" {
		return v
	}
	port := defaultPort
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 && p <= 65535 {
			port = p
		}
	}
	return fmt.Sprintf("http://localhost:%d%s", port, healthEndpoint)
}

func fail(code int, format string, args ...any) {
	log.Printf(format, args...)
	os.Exit(code)
}
