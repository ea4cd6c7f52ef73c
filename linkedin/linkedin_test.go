package linkedin

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/spetersoncode/postpilot"
	"github.com/spetersoncode/postpilot/retry"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New("test-token",
		WithBaseURL(srv.URL),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	return c, srv
}

func profileHandler(mux *http.ServeMux) {
	mux.HandleFunc("GET /me", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": "abc123"})
	})
}

func TestPostText(t *testing.T) {
	mux := http.NewServeMux()
	profileHandler(mux)

	var posted ugcPost
	mux.HandleFunc("POST /ugcPosts", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "2.0.0", r.Header.Get("X-Restli-Protocol-Version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&posted))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"id": "urn:li:share:42"})
	})

	c, _ := newTestClient(t, mux)
	post, err := c.PostText(context.Background(), "Hello LinkedIn #Go")
	require.NoError(t, err)

	assert.Equal(t, "urn:li:share:42", post.ID)
	assert.Equal(t, "urn:li:person:abc123", posted.Author)
	assert.Equal(t, "PUBLISHED", posted.LifecycleState)

	sc := posted.SpecificContent["com.linkedin.ugc.ShareContent"]
	assert.Equal(t, "Hello LinkedIn #Go", sc.ShareCommentary.Text)
	assert.Equal(t, "NONE", sc.ShareMediaCategory)
	assert.Equal(t, "PUBLIC", posted.Visibility["com.linkedin.ugc.MemberNetworkVisibility"])
}

func TestPostImage(t *testing.T) {
	mux := http.NewServeMux()
	profileHandler(mux)

	var posted ugcPost
	mux.HandleFunc("POST /ugcPosts", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&posted))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"id": "urn:li:share:43"})
	})

	c, _ := newTestClient(t, mux)
	_, err := c.PostImage(context.Background(), "With picture", "urn:li:digitalmediaAsset:img1")
	require.NoError(t, err)

	sc := posted.SpecificContent["com.linkedin.ugc.ShareContent"]
	assert.Equal(t, "IMAGE", sc.ShareMediaCategory)
	require.Len(t, sc.Media, 1)
	assert.Equal(t, "READY", sc.Media[0].Status)
	assert.Equal(t, "urn:li:digitalmediaAsset:img1", sc.Media[0].Media)
}

func TestUploadImage(t *testing.T) {
	mux := http.NewServeMux()
	profileHandler(mux)

	var uploadedBody []byte
	mux.HandleFunc("PUT /upload", func(w http.ResponseWriter, r *http.Request) {
		uploadedBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	})

	var srv *httptest.Server
	mux.HandleFunc("POST /assets", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "registerUpload", r.URL.Query().Get("action"))
		json.NewEncoder(w).Encode(map[string]any{
			"value": map[string]any{
				"asset": "urn:li:digitalmediaAsset:img9",
				"uploadMechanism": map[string]any{
					"com.linkedin.digitalmedia.uploading.MediaUploadHttpRequest": map[string]string{
						"uploadUrl": srv.URL + "/upload",
					},
				},
			},
		})
	})

	c, server := newTestClient(t, mux)
	srv = server

	asset, err := c.UploadImage(context.Background(), []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "urn:li:digitalmediaAsset:img9", asset)
	assert.Equal(t, []byte("png-bytes"), uploadedBody)
}

func TestPersonURNCached(t *testing.T) {
	mux := http.NewServeMux()
	var profileCalls int
	mux.HandleFunc("GET /me", func(w http.ResponseWriter, r *http.Request) {
		profileCalls++
		json.NewEncoder(w).Encode(map[string]string{"id": "abc123"})
	})

	c, _ := newTestClient(t, mux)
	for i := 0; i < 3; i++ {
		urn, err := c.PersonURN(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "urn:li:person:abc123", urn)
	}
	assert.Equal(t, 1, profileCalls)
}

func TestPostTextConcurrent(t *testing.T) {
	mux := http.NewServeMux()
	var profileCalls atomic.Int32
	mux.HandleFunc("GET /me", func(w http.ResponseWriter, r *http.Request) {
		profileCalls.Add(1)
		json.NewEncoder(w).Encode(map[string]string{"id": "abc123"})
	})
	mux.HandleFunc("POST /ugcPosts", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"id": "urn:li:share:44"})
	})

	c, _ := newTestClient(t, mux)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = c.PostText(context.Background(), "Concurrent publish")
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), profileCalls.Load())
}

func TestErrorCategorization(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		transient bool
	}{
		{"rate limited", http.StatusTooManyRequests, true},
		{"server error", http.StatusBadGateway, true},
		{"unauthorized", http.StatusUnauthorized, false},
		{"bad request", http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			profileHandler(mux)
			mux.HandleFunc("POST /ugcPosts", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			c, _ := newTestClient(t, mux)
			_, err := c.PostText(context.Background(), "content")
			require.Error(t, err)
			assert.Equal(t, tt.transient, retry.IsTransient(err))

			var cerr ai.CategorizedError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.status, cerr.StatusCode())
		})
	}
}
