package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comixed/comixed-client/internal/domain"
)

type recorded struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]any
}

type requestLog struct {
	mu   sync.Mutex
	reqs []recorded
}

func (l *requestLog) add(r recorded) {
	l.mu.Lock()
	l.reqs = append(l.reqs, r)
	l.mu.Unlock()
}

func (l *requestLog) all() []recorded {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]recorded(nil), l.reqs...)
}

// fakeServer answers every request with status and body and records what
// it received.
func fakeServer(t *testing.T, status int, body string) (*Client, *requestLog) {
	t.Helper()
	reqs := &requestLog{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization")}
		data, _ := io.ReadAll(r.Body)
		if len(data) > 0 {
			_ = json.Unmarshal(data, &rec.Body)
		}
		reqs.add(rec)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL+"/", srv.Client(), WithToken("secret"))
	require.NoError(t, err)
	return c, reqs
}

func TestNewClient_RejectsBadURL(t *testing.T) {
	_, err := NewClient("ftp://example.com", nil)
	assert.Error(t, err)
	_, err = NewClient("://", nil)
	assert.Error(t, err)
}

func TestClient_StatusError(t *testing.T) {
	c, _ := fakeServer(t, http.StatusServiceUnavailable, "maintenance\n")

	err := c.Get(context.Background(), "/api/user", nil)
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.StatusCode)
	assert.Equal(t, "maintenance", se.Body)
	assert.True(t, IsStatus(err, http.StatusServiceUnavailable))
	assert.False(t, IsStatus(err, http.StatusNotFound))
	assert.Equal(t, "GET /api/user: server returned 503: maintenance", err.Error())
}

func TestClient_EmptyBodyIsNotAnError(t *testing.T) {
	c, _ := fakeServer(t, http.StatusOK, "")
	var out []int64
	assert.NoError(t, c.Get(context.Background(), "/x", &out))
	assert.Nil(t, out)
}

func TestClient_DecodeError(t *testing.T) {
	c, _ := fakeServer(t, http.StatusOK, "{not json")
	var out []int64
	assert.Error(t, c.Get(context.Background(), "/x", &out))
}

func TestClient_RateLimit(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, srv.Client(), WithRateLimit(1, 1))
	require.NoError(t, err)

	require.NoError(t, c.Get(context.Background(), "/", nil))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err = c.Get(ctx, "/", nil)
	assert.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestSelectionService(t *testing.T) {
	c, reqs := fakeServer(t, http.StatusOK, "[1,2,3]")
	svc := NewSelectionService(c)
	ctx := context.Background()

	ids, err := svc.LoadSelections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)

	_, err = svc.AddSelection(ctx, 7)
	require.NoError(t, err)
	_, err = svc.RemoveSelection(ctx, 7)
	require.NoError(t, err)
	_, err = svc.ClearSelections(ctx)
	require.NoError(t, err)

	got := reqs.all()
	require.Len(t, got, 4)
	assert.Equal(t, "Bearer secret", got[0].Auth)
	assert.Equal(t, []string{"GET /api/comics/selections", "PUT /api/comics/selections/7",
		"DELETE /api/comics/selections/7", "DELETE /api/comics/selections"},
		[]string{
			got[0].Method + " " + got[0].Path,
			got[1].Method + " " + got[1].Path,
			got[2].Method + " " + got[2].Path,
			got[3].Method + " " + got[3].Path,
		})
}

func TestComicBookService(t *testing.T) {
	c, reqs := fakeServer(t, http.StatusOK, `{"comicBooks":[{"id":4,"series":"Saga"}],"lastId":4,"lastPayload":true}`)

	batch, err := NewComicBookService(c).LoadComicBooks(context.Background(), 10, 3)
	require.NoError(t, err)
	assert.Equal(t, domain.ComicBookBatch{
		ComicBooks:  []domain.ComicBook{{ID: 4, Series: "Saga"}},
		LastID:      4,
		LastPayload: true,
	}, batch)
	assert.Equal(t, map[string]any{"maxRecords": float64(10), "lastId": float64(3)}, reqs.all()[0].Body)
}

func TestBlockedHashService(t *testing.T) {
	c, reqs := fakeServer(t, http.StatusOK, `["abc"]`)

	removed, err := NewBlockedHashService(c).DeleteBlockedHashes(context.Background(), []string{"abc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"abc"}, removed)
	assert.Equal(t, "/api/library/pages/blocked/delete", reqs.all()[0].Path)
	assert.Equal(t, map[string]any{"hashes": []any{"abc"}}, reqs.all()[0].Body)
}

func TestReadingListService_SaveChoosesMethod(t *testing.T) {
	c, reqs := fakeServer(t, http.StatusOK, `{"id":5,"name":"Pulls"}`)
	svc := NewReadingListService(c)
	ctx := context.Background()

	saved, err := svc.SaveReadingList(ctx, domain.ReadingList{Name: "Pulls"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), saved.ID)

	_, err = svc.SaveReadingList(ctx, domain.ReadingList{ID: 5, Name: "Pulls"})
	require.NoError(t, err)

	assert.Equal(t, "POST /api/lists/reading", reqs.all()[0].Method+" "+reqs.all()[0].Path)
	assert.Equal(t, "PUT /api/lists/reading/5", reqs.all()[1].Method+" "+reqs.all()[1].Path)
}

func TestScrapingService_EscapesSource(t *testing.T) {
	c, reqs := fakeServer(t, http.StatusOK, `{"success":false}`)

	res, err := NewScrapingService(c).ScrapeComic(context.Background(), "comic vine", "1234", 9, true)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "/api/metadata/comic vine/issue/9", reqs.all()[0].Path)
	assert.Equal(t, map[string]any{"issueId": "1234", "skipCache": true}, reqs.all()[0].Body)
}

func TestComicFileService(t *testing.T) {
	c, reqs := fakeServer(t, http.StatusOK, `{"groups":[{"directory":"/in","files":[{"filename":"/in/a.cbz","baseFilename":"a.cbz","size":10}]}]}`)

	groups, err := NewComicFileService(c).LoadComicFiles(context.Background(), "/in", 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"/in/a.cbz"}, domain.Filenames(groups))
	assert.Equal(t, map[string]any{"directory": "/in", "maximum": float64(100)}, reqs.all()[0].Body)
}
