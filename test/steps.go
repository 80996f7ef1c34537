//go:build e2e

package test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// apiStep is one JSON call in a scripted flow.
type apiStep struct {
	Name   string
	Method string
	Path   string
	Body   any
	Token  string
	Want   int
	Check  func(*testing.T, map[string]any)
}

func runStep(t *testing.T, baseURL string, s apiStep) map[string]any {
	t.Helper()
	t.Logf("step: %s", s.Name)

	resp, err := sendJSON(s.Method, baseURL+s.Path, s.Body, s.Token)
	require.NoError(t, err)
	defer func() {
		if err := resp.Body.Close(); err != nil {
			t.Errorf(msgFailedToCloseResponseBody, err)
		}
	}()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, s.Want, resp.StatusCode, "%s: %v", s.Name, out)

	if s.Check != nil {
		s.Check(t, out)
	}
	return out
}

func runSteps(t *testing.T, baseURL string, steps []apiStep) {
	t.Helper()
	for _, s := range steps {
		runStep(t, baseURL, s)
	}
}

func hasFields(fields ...string) func(*testing.T, map[string]any) {
	return func(t *testing.T, out map[string]any) {
		t.Helper()
		for _, f := range fields {
			assert.NotEmpty(t, out[f], "field %q", f)
		}
	}
}

func errorContains(sub string) func(*testing.T, map[string]any) {
	return func(t *testing.T, out map[string]any) {
		t.Helper()
		msg, _ := out["error"].(string)
		assert.Contains(t, msg, sub)
	}
}

func messageIs(want string) func(*testing.T, map[string]any) {
	return func(t *testing.T, out map[string]any) {
		t.Helper()
		assert.Equal(t, want, out["message"])
	}
}
