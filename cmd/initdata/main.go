package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// ----------------------------------------------------------------------------
// Config ---------------------------------------------------------------------
var (
	baseURL   = flag.String("url", env("API_BASE_URL", "http://localhost:5001"), "Server base URL")
	password  = flag.String("pass", env("PASSWORD", "Password123"), "Password for every seeded profile")
	nMentors  = flag.Int("mentors", envInt("MENTORS", 20), "How many mentors to register")
	nMentees  = flag.Int("mentees", envInt("MENTEES", 40), "How many mentees to register")
	nRequests = flag.Int("requests", envInt("REQUESTS", 30), "How many mentorship requests to send")
)

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v >= 0 {
		return v
	}
	return def
}

var skillPool = []string{"go", "rust", "python", "kubernetes", "react", "sql", "system design", "product", "ux", "ml"}

// ----------------------------------------------------------------------------
// HTTP helpers ---------------------------------------------------------------
func postJSON(path string, body any) (*http.Response, error) {
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, *baseURL+path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return http.DefaultClient.Do(req)
}

func must(body io.ReadCloser) []byte {
	defer body.Close()
	data, _ := io.ReadAll(body)
	return data
}

// avatar renders a small solid PNG so every profile has a valid photo.
func avatar() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	c := color.RGBA{R: gofakeit.Uint8(), G: gofakeit.Uint8(), B: gofakeit.Uint8(), A: 255}
	for x := 0; x < 32; x++ {
		for y := 0; y < 32; y++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

func register(role string) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"type":     role,
		"name":     gofakeit.Name(),
		"email":    strings.ToLower(gofakeit.Email()),
		"mobile":   gofakeit.Numerify("##########"),
		"password": *password,
		"skills":   skills(),
	}
	if role == "mentor" {
		fields["experience"] = fmt.Sprintf("%d years in %s", gofakeit.Number(2, 20), gofakeit.JobTitle())
		fields["availability"] = gofakeit.RandomString([]string{"weekday evenings", "weekends", "mornings", "flexible"})
	}
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="photo"; filename="avatar.png"`)
	h.Set("Content-Type", "image/png")
	part, err := w.CreatePart(h)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(avatar()); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, _ := http.NewRequest(http.MethodPost, *baseURL+"/register", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	body := must(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("register %s failed (%d): %s", role, resp.StatusCode, body)
	}

	var r struct {
		User struct {
			ID string `json:"_id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(body, &r); err != nil {
		return "", err
	}
	return r.User.ID, nil
}

func skills() string {
	n := gofakeit.Number(1, 3)
	picked := make([]string, 0, n)
	for i := 0; i < n; i++ {
		picked = append(picked, gofakeit.RandomString(skillPool))
	}
	return strings.Join(picked, ", ")
}

// ----------------------------------------------------------------------------
// Main -----------------------------------------------------------------------
func main() {
	flag.Parse()
	gofakeit.Seed(time.Now().UnixNano())

	fmt.Printf("Seeding %d mentors, %d mentees, %d requests on %s\n", *nMentors, *nMentees, *nRequests, *baseURL)

	mentors, err := registerMany("mentor", *nMentors)
	if err != nil {
		fatal(err)
	}
	mentees, err := registerMany("mentee", *nMentees)
	if err != nil {
		fatal(err)
	}

	if len(mentors) > 0 && len(mentees) > 0 {
		if err := requestMentorships(mentors, mentees, *nRequests); err != nil {
			fatal(err)
		}
	}

	fmt.Println("✔ done")
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "FATAL:", err)
	os.Exit(1)
}

// ----------------------------------------------------------------------------
// Step 1 – register profiles ---------------------------------------------------
func registerMany(role string, total int) ([]string, error) {
	ids := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		id, err := register(role)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)

		if i%10 == 0 || i == total {
			fmt.Printf("  … %s %d/%d\n", role, i, total)
		}
	}
	return ids, nil
}

// ----------------------------------------------------------------------------
// Step 2 – mentorship requests -------------------------------------------------
func requestMentorships(mentors, mentees []string, total int) error {
	for i := 1; i <= total; i++ {
		req := map[string]string{
			"menteeId": gofakeit.RandomString(mentees),
			"mentorId": gofakeit.RandomString(mentors),
			"message":  gofakeit.Sentence(8),
		}

		resp, err := postJSON("/requestMentorship", req)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusCreated {
			return fmt.Errorf("mentorship request %d failed (%d): %s", i, resp.StatusCode, must(resp.Body))
		}
		_ = must(resp.Body)
	}
	fmt.Printf("  … %d mentorship requests sent\n", total)
	return nil
}
