package hiscore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resolve109/solo-leveling/internal/skill"
)

func liteBody() string {
	var b strings.Builder
	b.WriteString("12345,1500,50000000\n")
	for i := range skill.Trainable() {
		fmt.Fprintf(&b, "%d,%d,%d\n", 1000+i, 60+i, 300000+i)
	}
	// Activity rows follow the skills and must be ignored.
	b.WriteString("-1,-1\n-1,-1\n")
	return b.String()
}

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(Config{
		BaseURL:        srv.URL,
		WikiURL:        srv.URL,
		HTTPClient:     srv.Client(),
		BaseRetryDelay: time.Millisecond,
		MaxRetryDelay:  5 * time.Millisecond,
	})
}

func TestLookupParsesLiteFormat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/index_lite.ws", r.URL.Path)
		assert.Equal(t, "Zezima Jr", r.URL.Query().Get("player"))
		assert.Contains(t, r.URL.RawQuery, "Zezima%20Jr")
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		fmt.Fprint(w, liteBody())
	}))
	defer srv.Close()

	stats, err := newTestClient(srv).Lookup(context.Background(), "Zezima Jr")
	require.NoError(t, err)
	assert.Equal(t, "Zezima Jr", stats.Player)
	assert.Equal(t, 1500, stats.Overall.Level)
	assert.Len(t, stats.Skills, 23)
	assert.Equal(t, SkillData{Rank: 1000, Level: 60, XP: 300000}, stats.Skills[skill.Attack])
	assert.Equal(t, 60+22, stats.Level(skill.Construction))
}

func TestParseHiscoresMalformedFallbacks(t *testing.T) {
	stats := ParseHiscores([]byte("x,y,z\nabc,7,zz\n"))
	assert.Equal(t, SkillData{Rank: -1, Level: 1, XP: 0}, stats.Overall)
	assert.Equal(t, SkillData{Rank: -1, Level: 7, XP: 0}, stats.Skills[skill.Attack])
	assert.Equal(t, 1, stats.Level(skill.Defence))
}

func TestLookupNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Lookup(context.Background(), "nobody")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPlayerNotFound))
}

func TestLookupRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, liteBody())
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Lookup(context.Background(), "retry")
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestLookupGivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Lookup(context.Background(), "busy")
	require.Error(t, err)
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusTooManyRequests, httpErr.StatusCode)
	assert.Equal(t, int32(4), calls.Load())
}

func TestBadRequestIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Lookup(context.Background(), "bad")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRetryDelayIsCapped(t *testing.T) {
	c := NewClient(Config{BaseRetryDelay: time.Second, MaxRetryDelay: 3 * time.Second})
	assert.Equal(t, time.Second, c.retryDelay(1))
	assert.Equal(t, 2*time.Second, c.retryDelay(2))
	assert.Equal(t, 3*time.Second, c.retryDelay(3))
	assert.Equal(t, 3*time.Second, c.retryDelay(8))
}

func TestLookupMany(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("player") == "ghost" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, liteBody())
	}))
	defer srv.Close()

	results, err := newTestClient(srv).LookupMany(context.Background(), []string{"a", "ghost", "b"}, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "a", results[0].Player)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, ErrPlayerNotFound)
	assert.NotNil(t, results[2].Stats)
}

func TestLookupManyCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, liteBody())
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestClient(srv).LookupMany(ctx, []string{"a", "b"}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
