//go:build e2e

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"mentor-match/internal/config"
)

const (
	registerEndpoint = "/register"
	loginEndpoint    = "/login"
	meEndpoint       = "/me"
	syncEndpoint     = "/syncdata"
	requestEndpoint  = "/requestMentorship"
	acceptEndpoint   = "/acceptMentorshipRequest"
	declineEndpoint  = "/declineMentorshipRequest"
	wsEndpoint       = "/ws/notifications"

	msgFailedToCloseResponseBody = "failed to close response body: %v"

	serverLogTail = 64 << 10
)

// stack is a running server backed by a throwaway MongoDB.
type stack struct {
	BaseURL string
	Client  *http.Client
	logs    *tailBuffer
}

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	mu  sync.Mutex
	max int
	buf []byte
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = append(b.buf, p...)
	if over := len(b.buf) - b.max; over > 0 {
		b.buf = b.buf[over:]
	}
	return len(p), nil
}

func (b *tailBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.buf)
}

func newStack(t *testing.T) *stack {
	return newStackWithEnv(t, nil)
}

// newStackWithEnv boots MongoDB and the server with extra environment on
// top of the defaults. Everything is torn down by t.Cleanup.
func newStackWithEnv(t *testing.T, extraEnv map[string]string) *stack {
	t.Helper()
	config.ResetCache()
	t.Cleanup(config.ResetCache)

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	t.Cleanup(cancel)

	mongoURI := startMongo(ctx, t)

	port, err := randomPort()
	require.NoError(t, err)

	env := map[string]string{
		"MONGO_URI":      mongoURI,
		"MONGO_DB_NAME":  "e2e",
		"JWT_SECRET":     "test-e2e-secret-with-32-plus-characters-for-hs256-validation",
		"LOG_LEVEL":      "info",
		"APP_PORT":       port,
		"MEDIA_PROVIDER": "local",
		"UPLOAD_DIR":     t.TempDir(),
		"BCRYPT_COST":    "4",
	}
	for k, v := range extraEnv {
		env[k] = v
	}

	s := &stack{
		BaseURL: "http://localhost:" + port,
		Client:  &http.Client{Timeout: 5 * time.Second},
		logs:    &tailBuffer{max: serverLogTail},
	}
	startServer(t, env, s.logs)

	if err := waitHealthy(s.BaseURL, 30*time.Second); err != nil {
		t.Logf("server log tail:\n%s", s.logs.String())
		require.NoError(t, err)
	}
	return s
}

func startMongo(ctx context.Context, t *testing.T) string {
	t.Helper()
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:8.0",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("27017/tcp"),
				wait.ForLog("Waiting for connections"),
			).WithDeadline(60 * time.Second),
		},
		Started: true,
	})
	testcontainers.CleanupContainer(t, c)
	require.NoError(t, err, "start mongo container")

	endpoint, err := c.PortEndpoint(ctx, "27017/tcp", "mongodb")
	require.NoError(t, err)
	return endpoint + "/?directConnection=true"
}

// startServer runs BIN_SERVER when set, otherwise `go run ./cmd/server`.
// The child gets its own process group so go run's binary dies with it.
func startServer(t *testing.T, env map[string]string, logs *tailBuffer) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	var cmd *exec.Cmd
	if bin := os.Getenv("BIN_SERVER"); bin != "" {
		cmd = exec.CommandContext(ctx, bin)
	} else {
		cmd = exec.CommandContext(ctx, "go", "run", "./cmd/server")
		cmd.Dir = "../"
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error { return syscall.Kill(-cmd.Process.Pid, syscall.SIGTERM) }
	cmd.WaitDelay = 5 * time.Second

	cmd.Env = os.Environ()
	for k, v := range env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
	cmd.Stderr = logs

	require.NoError(t, cmd.Start())
	t.Cleanup(func() {
		cancel()
		_ = cmd.Wait()
		if t.Failed() {
			t.Logf("server log tail:\n%s", logs.String())
		}
	})
}

func waitHealthy(baseURL string, timeout time.Duration) error {
	probe := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := probe.Get(baseURL + "/healthz")
		if err == nil {
			ok := resp.StatusCode == http.StatusOK
			_ = resp.Body.Close()
			if ok {
				return nil
			}
		}
		time.Sleep(200 * time.Millisecond)
	}
	return fmt.Errorf("server at %s not healthy after %s", baseURL, timeout)
}

// sendJSON issues one request, bearer-authenticated when token is set.
func sendJSON(method, url string, payload any, token string) (*http.Response, error) {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequest(method, url, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return (&http.Client{Timeout: 5 * time.Second}).Do(req)
}

func randomPort() (string, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	defer l.Close()
	return strconv.Itoa(l.Addr().(*net.TCPAddr).Port), nil
}
