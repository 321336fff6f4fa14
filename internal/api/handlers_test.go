package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"redline/internal/change"
	"redline/internal/diff"
	"redline/internal/review"
	reviewstorage "redline/internal/review/storage"
	"redline/internal/vault"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()

	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	v, err := vault.New(db, vault.Options{Root: t.TempDir(), CacheSize: 8})
	require.NoError(t, err)

	manager := review.NewManager(v, reviewstorage.NewStore(db), diff.NewEngine(diff.DefaultConfig()), zap.NewNop())

	mux := http.NewServeMux()
	NewReviewHandler(manager, 1<<20).Register(mux)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func createSession(t *testing.T, server *httptest.Server, original, revised string) review.Session {
	t.Helper()

	body, err := json.Marshal(map[string]string{"original": original, "revised": revised})
	require.NoError(t, err)

	resp, err := http.Post(server.URL+"/api/reviews", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var session review.Session
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&session))
	return session
}

func TestCreateReview(t *testing.T) {
	server := setupServer(t)

	session := createSession(t, server, "a\nb\nc\n", "a\nB\nc\n")
	assert.NotEmpty(t, session.ID)
	require.Len(t, session.Changes, 1)
	assert.Equal(t, change.Modified, session.Changes[0].Kind)
	assert.Equal(t, diff.Stats{Modifications: 1}, session.Stats)
}

func TestCreateReviewRejectsOversizedDocument(t *testing.T) {
	server := setupServer(t)

	big := bytes.Repeat([]byte("x"), 2<<20)
	body, err := json.Marshal(map[string]string{"original": string(big), "revised": "b"})
	require.NoError(t, err)

	resp, err := http.Post(server.URL+"/api/reviews", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetDiff(t *testing.T) {
	server := setupServer(t)
	session := createSession(t, server, "a\nb\nc\n", "a\nB\nc\n")

	resp, err := http.Get(fmt.Sprintf("%s/api/reviews/%s/diff", server.URL, session.ID))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result diff.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Len(t, result.Hunks, 1)
	assert.Equal(t, diff.Stats{Modifications: 1}, result.Stats)
}

func TestDecideAndResult(t *testing.T) {
	server := setupServer(t)
	session := createSession(t, server, "a\nb\nc\n", "a\nB\nc\n")

	decision, err := json.Marshal(map[string]string{
		"change_id": session.Changes[0].ID,
		"state":     "accepted",
	})
	require.NoError(t, err)

	resp, err := http.Post(fmt.Sprintf("%s/api/reviews/%s/decisions", server.URL, session.ID),
		"application/json", bytes.NewReader(decision))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(fmt.Sprintf("%s/api/reviews/%s/result", server.URL, session.ID))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "a\nB\nc\n", out["document"])
}

func TestDecideStaleChangeConflicts(t *testing.T) {
	server := setupServer(t)
	session := createSession(t, server, "a\nb\nc\n", "a\nB\nc\n")

	decision, err := json.Marshal(map[string]string{
		"change_id": "not-a-change",
		"state":     "accepted",
	})
	require.NoError(t, err)

	resp, err := http.Post(fmt.Sprintf("%s/api/reviews/%s/decisions", server.URL, session.ID),
		"application/json", bytes.NewReader(decision))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestGetMissingSession(t *testing.T) {
	server := setupServer(t)

	resp, err := http.Get(server.URL + "/api/reviews/does-not-exist")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
