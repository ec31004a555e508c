package suggest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"searchline/internal/domain"
)

func openSearchHandler(hits *atomic.Int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		q := r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `[%q,[%q,%q]]`, q, q+" one", q+" two")
	}
}

func testEngine(srv *httptest.Server) *domain.Engine {
	return &domain.Engine{
		Name:          "Test",
		SuggestionURL: srv.URL + "/complete?q=%s",
		SearchURL:     srv.URL + "/search?q=%s",
		SpaceBecomes:  "+",
	}
}

func TestFetchOpenSearch(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := httptest.NewServer(openSearchHandler(nil))
	defer srv.Close()

	f := NewFetcher(Options{Timeout: time.Second, Logger: zaptest.NewLogger(t)})
	defer f.Close()

	set, err := f.Fetch(context.Background(), testEngine(srv), "cute cats")
	require.NoError(t, err)
	assert.Equal(t, "cute cats", set.Term)
	if diff := cmp.Diff([]string{"cute cats one", "cute cats two"}, set.Candidates); diff != "" {
		t.Errorf("candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchUsesRequestedTerm(t *testing.T) {
	defer goleak.VerifyNone(t)

	// Server normalises the echoed term; the set must still carry what was asked for
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `["CATS",["cats"]]`)
	}))
	defer srv.Close()

	f := NewFetcher(Options{})
	defer f.Close()

	set, err := f.Fetch(context.Background(), testEngine(srv), "Cats ")
	require.NoError(t, err)
	assert.Equal(t, "Cats ", set.Term)
}

func TestFetchJSONPath(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ask", r.URL.Query().Get("query"))
		fmt.Fprint(w, `{"suggestions":["askscience","askreddit"]}`)
	}))
	defer srv.Close()

	eng := &domain.Engine{
		SuggestionURL: srv.URL + "/suggest?query=%s",
		Adapter:       domain.AdapterSpec{Kind: domain.AdapterJSONPath, Path: "suggestions"},
	}
	f := NewFetcher(Options{})
	defer f.Close()

	set, err := f.Fetch(context.Background(), eng, "ask")
	require.NoError(t, err)
	assert.Equal(t, []string{"askscience", "askreddit"}, set.Candidates)
}

func TestFetchWithoutSuggestionURL(t *testing.T) {
	f := NewFetcher(Options{})
	defer f.Close()

	set, err := f.Fetch(context.Background(), &domain.Engine{SearchURL: "https://x.test/%s"}, "cats")
	require.NoError(t, err)
	assert.Equal(t, "cats", set.Term)
	assert.Empty(t, set.Candidates)
}

func TestFetchErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	t.Run("non-2xx status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusServiceUnavailable)
		}))
		defer srv.Close()
		f := NewFetcher(Options{})
		defer f.Close()

		_, err := f.Fetch(context.Background(), testEngine(srv), "x")
		var ferr *FetchError
		require.ErrorAs(t, err, &ferr)
		assert.Equal(t, http.StatusServiceUnavailable, ferr.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"not":"opensearch"}`)
		}))
		defer srv.Close()
		f := NewFetcher(Options{})
		defer f.Close()

		_, err := f.Fetch(context.Background(), testEngine(srv), "x")
		var aerr *AdapterError
		require.ErrorAs(t, err, &aerr)
		assert.Contains(t, aerr.URL, srv.URL)
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)
		f := NewFetcher(Options{Timeout: 50 * time.Millisecond})
		defer f.Close()

		_, err := f.Fetch(context.Background(), testEngine(srv), "x")
		var ferr *FetchError
		require.ErrorAs(t, err, &ferr)
		assert.Zero(t, ferr.StatusCode)
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(openSearchHandler(nil))
		eng := testEngine(srv)
		srv.Close()
		f := NewFetcher(Options{})
		defer f.Close()

		_, err := f.Fetch(context.Background(), eng, "x")
		var ferr *FetchError
		assert.ErrorAs(t, err, &ferr)
	})
}

func TestFetchCache(t *testing.T) {
	// The expirable cache runs a janitor goroutine for its lifetime, so this
	// test does not check for leaks.
	var hits atomic.Int32
	srv := httptest.NewServer(openSearchHandler(&hits))
	defer srv.Close()

	f := NewFetcher(Options{CacheSize: 8, CacheTTL: time.Minute})
	defer f.Close()
	eng := testEngine(srv)

	first, err := f.Fetch(context.Background(), eng, "go")
	require.NoError(t, err)
	second, err := f.Fetch(context.Background(), eng, "go")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), hits.Load())

	second.Candidates[0] = "mutated"
	third, err := f.Fetch(context.Background(), eng, "go")
	require.NoError(t, err)
	assert.Equal(t, "go one", third.Candidates[0], "cached candidates must not be shared with callers")

	_, err = f.Fetch(context.Background(), eng, "gopher")
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestFetchSharesInFlightRequests(t *testing.T) {
	defer goleak.VerifyNone(t)

	var hits atomic.Int32
	gate := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-gate
		fmt.Fprint(w, `["a",["a1","a2"]]`)
	}))
	defer srv.Close()

	f := NewFetcher(Options{})
	defer f.Close()
	eng := testEngine(srv)

	const callers = 5
	var wg sync.WaitGroup
	results := make([]domain.SuggestionSet, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			set, err := f.Fetch(context.Background(), eng, "a")
			assert.NoError(t, err)
			results[i] = set
		}(i)
	}

	require.Eventually(t, func() bool { return hits.Load() == 1 }, time.Second, 5*time.Millisecond)
	// Give the remaining callers time to join the in-flight request
	time.Sleep(50 * time.Millisecond)
	close(gate)
	wg.Wait()

	assert.Equal(t, int32(1), hits.Load())
	for _, r := range results {
		assert.Equal(t, []string{"a1", "a2"}, r.Candidates)
	}
}
