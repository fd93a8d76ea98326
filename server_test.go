package marvel

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
)

const (
	testPublicKey  = "public-key"
	testPrivateKey = "private-key"
)

// fakeService is an in-memory stand-in for the Marvel API.
type fakeService struct {
	t *testing.T

	characters []Character
	events     map[int][]Event

	// onCharacters, if set, runs before a characters request is answered.
	onCharacters func(r *http.Request)

	mu       sync.Mutex
	requests []*url.URL
}

func newFakeService(t *testing.T, characters []Character, events map[int][]Event) *fakeService {
	t.Helper()
	return &fakeService{t: t, characters: characters, events: events}
}

func (f *fakeService) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/public/characters", f.handleCharacters)
	mux.HandleFunc("GET /v1/public/characters/{id}/events", f.handleEvents)
	return f.authorize(mux)
}

// authorize verifies ts, hash and apikey the way the API does.
func (f *fakeService) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, r.URL)
		f.mu.Unlock()

		q := r.URL.Query()
		sum := md5.Sum([]byte(q.Get("ts") + testPrivateKey + testPublicKey))
		if q.Get("ts") == "" || q.Get("apikey") != testPublicKey || q.Get("hash") != hex.EncodeToString(sum[:]) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"code":"InvalidCredentials","message":"That hash, timestamp and key combination is invalid."}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (f *fakeService) handleCharacters(w http.ResponseWriter, r *http.Request) {
	if f.onCharacters != nil {
		f.onCharacters(r)
	}

	q := r.URL.Query()
	results := []Character{}
	for _, c := range f.characters {
		switch {
		case q.Has("name") && c.Name == q.Get("name"):
			results = append(results, c)
		case q.Has("nameStartsWith") && strings.HasPrefix(c.Name, q.Get("nameStartsWith")):
			results = append(results, c)
		}
	}

	writePage(f.t, w, results)
}

func (f *fakeService) handleEvents(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, `{"code":409,"status":"invalid id"}`, http.StatusConflict)
		return
	}

	results := f.events[id]
	if results == nil {
		results = []Event{}
	}
	writePage(f.t, w, results)
}

func (f *fakeService) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func writePage[T any](t *testing.T, w http.ResponseWriter, results []T) {
	t.Helper()

	resp := Response[T]{
		Code:   "200",
		Status: "Ok",
		Data: &Page[T]{
			Pagination: Pagination{Limit: MaxLimit, Total: len(results), Count: len(results)},
			Results:    results,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

// newTestClient starts srv and returns a client pointed at it.
func newTestClient(t *testing.T, h http.Handler, opts ...ClientOption) *Client {
	t.Helper()

	server := httptest.NewServer(h)
	t.Cleanup(server.Close)

	baseURL, err := url.Parse(server.URL + "/v1/public/")
	if err != nil {
		t.Fatalf("parse server url: %v", err)
	}

	opts = append([]ClientOption{WithBaseURL(baseURL)}, opts...)
	return New(testPublicKey, testPrivateKey, opts...)
}
