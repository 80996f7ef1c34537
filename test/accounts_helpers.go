//go:build e2e

package test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// profile is a registered account as returned by /register.
type profile struct {
	ID     string
	Email  string
	Mobile string
	Token  string
}

// tinyPNG is a valid 1x1 image accepted by the photo check.
func tinyPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))))
	return buf.Bytes()
}

// registerMultipart posts a registration form and returns the raw response.
func registerMultipart(t *testing.T, c *http.Client, baseURL string, fields map[string]string, photo []byte) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if photo != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="photo"; filename="me.png"`)
		h.Set("Content-Type", "image/png")
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(photo)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, baseURL+registerEndpoint, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.Do(req)
	require.NoError(t, err)
	return resp
}

// registerProfile registers a mentor or mentee and returns its id and token.
func registerProfile(t *testing.T, c *http.Client, baseURL, role, name, email, mobile, password, skills string) profile {
	t.Helper()
	fields := map[string]string{
		"type":     role,
		"name":     name,
		"email":    email,
		"mobile":   mobile,
		"password": password,
		"skills":   skills,
	}
	if role == "mentor" {
		fields["experience"] = "10 years"
		fields["availability"] = "weekends"
	}

	resp := registerMultipart(t, c, baseURL, fields, tinyPNG(t))
	defer func() {
		if err := resp.Body.Close(); err != nil {
			t.Errorf(msgFailedToCloseResponseBody, err)
		}
	}()
	body, _ := io.ReadAll(resp.Body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var out struct {
		User map[string]any `json:"user"`
		Auth string         `json:"auth"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotEmpty(t, out.Auth)
	require.Equal(t, role, out.User["role"])
	require.NotContains(t, out.User, "password")
	require.True(t, strings.HasPrefix(out.User["photo"].(string), "/uploads/"))

	return profile{
		ID:     out.User["_id"].(string),
		Email:  email,
		Mobile: mobile,
		Token:  out.Auth,
	}
}

func loginExpect(t *testing.T, c *http.Client, baseURL, identifier, password string, want int) {
	t.Helper()
	status, err := doJSONPost(t, c, baseURL+loginEndpoint, map[string]string{
		"identifier": identifier,
		"password":   password,
	})
	require.NoError(t, err)
	require.Equal(t, want, status)
}

func doJSONPost(t *testing.T, c *http.Client, url string, body any) (int, error) {
	t.Helper()
	b, _ := json.Marshal(body)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			t.Errorf(msgFailedToCloseResponseBody, err)
		}
	}()

	return resp.StatusCode, nil
}
