// Package smoketest exercises the high-scores HTTP API against a fixed list
// of endpoints and reports each status next to the expected one.
package smoketest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"survivor-meshgen/internal/logging"
	"survivor-meshgen/internal/termstyle"
)

// DefaultBaseURL is where the Spring Boot backend listens during development.
const DefaultBaseURL = "http://localhost:8080"

const (
	serverTimeout = 5 * time.Second
	checkTimeout  = 10 * time.Second
	previewLen    = 200
)

// Check is one request and the status it should return.
type Check struct {
	Section string // printed as a heading when it changes
	Name    string
	Method  string
	Path    string
	Body    any // JSON-encoded when set
	Want    int
}

// Outcome is what a check observed.
type Outcome struct {
	Check
	URL    string
	Status int
	Body   string // truncated
	Err    error
}

// Passed reports whether the request completed with the wanted status.
func (o Outcome) Passed() bool { return o.Err == nil && o.Status == o.Want }

// DefaultChecks is the standard API walk: basic endpoints, a deliberate
// 404, one score submission, then the score queries.
func DefaultChecks() []Check {
	const basic, scores = "Running API Tests", "Testing Game Score Endpoints"
	return []Check{
		{Section: basic, Name: "Root Endpoint", Path: "/"},
		{Section: basic, Name: "Health Check", Path: "/health"},
		{Section: basic, Name: "Hello Default", Path: "/hello"},
		{Section: basic, Name: "Hello with Name", Path: "/hello?name=TestRunner"},
		{Section: basic, Name: "Hello Path Variable", Path: "/hello/APITest"},
		{Section: basic, Name: "Non-existent Endpoint (404 Expected)", Path: "/nonexistent", Want: http.StatusNotFound},
		{Section: scores, Name: "Submit Score (POST)", Method: http.MethodPost, Path: "/api/scores/submit",
			Body: map[string]any{"playerName": "TestPlayer", "gameName": "TestGame", "score": 12345},
			Want: http.StatusCreated},
		{Section: scores, Name: "Get All Games", Path: "/api/scores/games"},
		{Section: scores, Name: "Get All Players", Path: "/api/scores/players"},
		{Section: scores, Name: "Get Top Scores for TestGame", Path: "/api/scores/game/TestGame/top"},
		{Section: scores, Name: "Get TestPlayer Scores", Path: "/api/scores/player/TestPlayer"},
	}
}

// Runner sends checks to BaseURL and prints results to Out.
type Runner struct {
	BaseURL string
	Client  *http.Client
	Out     io.Writer
	Log     *zap.Logger
}

func (r *Runner) client() *http.Client {
	if r.Client != nil {
		return r.Client
	}
	return http.DefaultClient
}

func (r *Runner) out() io.Writer {
	if r.Out != nil {
		return r.Out
	}
	return io.Discard
}

func (r *Runner) url(path string) string {
	base := r.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return strings.TrimSuffix(base, "/") + path
}

// CheckServer reports whether GET /health answers 200 within five seconds.
func (r *Runner) CheckServer(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, serverTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url("/health"), nil)
	if err != nil {
		return false
	}
	resp, err := r.client().Do(req)
	if err != nil {
		logging.OrNop(r.Log).Debug("health check failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

// Run executes every check in order. A failing check is reported and the
// run continues.
func (r *Runner) Run(ctx context.Context, checks []Check) []Outcome {
	w := r.out()
	outcomes := make([]Outcome, 0, len(checks))
	section := ""
	for _, c := range checks {
		if c.Section != section {
			section = c.Section
			termstyle.Header(w, "%s...", section)
			fmt.Fprintln(w, strings.Repeat("=", 34))
			fmt.Fprintln(w)
		}
		o := r.do(ctx, c)
		r.report(w, o)
		outcomes = append(outcomes, o)
	}
	return outcomes
}

func (r *Runner) do(ctx context.Context, c Check) Outcome {
	if c.Method == "" {
		c.Method = http.MethodGet
	}
	if c.Want == 0 {
		c.Want = http.StatusOK
	}
	o := Outcome{Check: c, URL: r.url(c.Path)}

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	var body io.Reader
	if c.Body != nil {
		data, err := json.Marshal(c.Body)
		if err != nil {
			o.Err = fmt.Errorf("smoketest: encode body: %w", err)
			return o
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, c.Method, o.URL, body)
	if err != nil {
		o.Err = err
		return o
	}
	if c.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client().Do(req)
	if err != nil {
		o.Err = err
		return o
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	o.Status = resp.StatusCode
	o.Body = truncate(string(data), previewLen)
	if err != nil {
		o.Err = fmt.Errorf("smoketest: read body: %w", err)
	}
	logging.OrNop(r.Log).Debug("check done",
		zap.String("name", c.Name), zap.Int("status", o.Status), zap.Int("want", c.Want))
	return o
}

func (r *Runner) report(w io.Writer, o Outcome) {
	fmt.Fprintf(w, "Testing: %s\n", o.Name)
	fmt.Fprintf(w, "   URL: %s\n", o.URL)
	switch {
	case o.Err != nil && o.Status == 0:
		termstyle.Fail(w, "Error: %v", o.Err)
	case o.Passed():
		termstyle.OK(w, "Status: %d (Expected: %d)", o.Status, o.Want)
		fmt.Fprintf(w, "   Response: %s\n", o.Body)
	default:
		termstyle.Fail(w, "Status: %d (Expected: %d)", o.Status, o.Want)
		fmt.Fprintf(w, "   Response: %s\n", o.Body)
	}
	fmt.Fprintln(w)
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Failed counts outcomes that did not pass.
func Failed(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if !o.Passed() {
			n++
		}
	}
	return n
}
