package scraping

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comixed/comixed-client/internal/domain"
	"github.com/comixed/comixed-client/pkg/alert"
	"github.com/comixed/comixed-client/pkg/effect"
	"github.com/comixed/comixed-client/pkg/store"
)

func comics(ids ...int64) []domain.ComicBook {
	out := make([]domain.ComicBook, len(ids))
	for i, id := range ids {
		out[i] = domain.ComicBook{ID: id}
	}
	return out
}

func ptr(c domain.ComicBook) *domain.ComicBook { return &c }

func TestReduce_MultiBookFlow(t *testing.T) {
	s := Feature.Initial()

	s = reduce(s, StartMultiBookScraping{PageSize: 3})
	assert.True(t, s.Busy)
	assert.Equal(t, 3, s.MultiBook.PageSize)

	s = reduce(s, MultiBookScrapingPageLoaded{Comics: comics(1, 2, 3), TotalComics: 5})
	want := MultiBookState{
		Running:     true,
		PageSize:    3,
		TotalComics: 5,
		Comics:      comics(1, 2, 3),
		Current:     ptr(domain.ComicBook{ID: 1}),
	}
	if diff := cmp.Diff(want, s.MultiBook); diff != "" {
		t.Fatalf("page loaded mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, s.Busy)

	s = reduce(s, MultiBookComicScraped{ComicBookID: 1})
	assert.Equal(t, comics(2, 3), s.MultiBook.Comics)
	assert.Equal(t, int64(2), s.MultiBook.Current.ID)
	assert.Equal(t, 4, s.MultiBook.TotalComics)

	s = reduce(s, SkipMultiBookComic{ComicBook: domain.ComicBook{ID: 3}})
	assert.Equal(t, comics(2), s.MultiBook.Comics)
	assert.Equal(t, int64(2), s.MultiBook.Current.ID, "skipping another comic keeps the current one")
	assert.Equal(t, 3, s.MultiBook.TotalComics)

	s = reduce(s, SkipMultiBookComic{ComicBook: domain.ComicBook{ID: 99}})
	assert.Equal(t, 3, s.MultiBook.TotalComics, "unknown comics do not change the total")

	s = reduce(s, MultiBookComicScraped{ComicBookID: 2})
	assert.Empty(t, s.MultiBook.Comics)
	assert.Nil(t, s.MultiBook.Current)
	assert.True(t, s.MultiBook.Running)
	assert.Equal(t, 2, s.MultiBook.TotalComics, "the rest of the queue waits on the server")

	s = reduce(s, StopMultiBookScraping{})
	assert.Equal(t, MultiBookState{}, s.MultiBook)
}

func TestReduce_Volumes(t *testing.T) {
	s := &State{Volumes: []domain.Volume{{ID: "old"}}}
	s = reduce(s, LoadScrapingVolumes{Series: "Saga"})
	assert.True(t, s.Busy)
	assert.Nil(t, s.Volumes)

	s = reduce(s, ScrapingVolumesLoaded{Volumes: []domain.Volume{{ID: "4050-1"}}})
	assert.False(t, s.Busy)
	assert.Equal(t, []domain.Volume{{ID: "4050-1"}}, SelectVolumes.Get(store.With(store.State{}, Feature, s)))
}

type fakeService struct {
	result domain.ScrapeResult
	err    error
}

func (f fakeService) LoadVolumes(context.Context, string, string, int, bool) ([]domain.Volume, error) {
	return nil, f.err
}

func (f fakeService) ScrapeComic(context.Context, string, string, int64, bool) (domain.ScrapeResult, error) {
	return f.result, f.err
}

func (f fakeService) StartMultiBookScraping(_ context.Context, pageSize int) (domain.MultiBookPage, error) {
	return domain.MultiBookPage{ComicBooks: comics(1), TotalComics: 1}, f.err
}

func (f fakeService) LoadMultiBookScrapingPage(_ context.Context, pageSize, pageNumber int) (domain.MultiBookPage, error) {
	return domain.MultiBookPage{PageNumber: pageNumber}, f.err
}

func TestScrapeComic_Outcomes(t *testing.T) {
	scraped := domain.ComicBook{ID: 7, Series: "Saga"}
	tests := []struct {
		name       string
		svc        fakeService
		intent     ScrapeComic
		wantAction store.Action
		wantKind   effect.Kind
		wantErrors []string
		wantInfos  []string
	}{
		{
			name:       "success",
			svc:        fakeService{result: domain.ScrapeResult{Success: true, ComicBook: &scraped}},
			intent:     ScrapeComic{ComicBookID: 7, MultiBook: true},
			wantAction: ComicScraped{ComicBook: scraped, MultiBook: true},
			wantKind:   effect.Succeeded,
			wantInfos:  []string{KeyScrapeComicSuccess},
		},
		{
			name:       "success flag cleared is silent",
			svc:        fakeService{result: domain.ScrapeResult{Success: false}},
			intent:     ScrapeComic{ComicBookID: 7},
			wantAction: ScrapeComicFailed{ComicBookID: 7, Err: domain.ErrNotSuccessful},
			wantKind:   effect.FailedLogical,
		},
		{
			name:       "service failure alerts",
			svc:        fakeService{err: errors.New("timeout")},
			intent:     ScrapeComic{ComicBookID: 7},
			wantKind:   effect.FailedService,
			wantErrors: []string{KeyScrapeComicFailed},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec alert.Recorder
			env := effect.Env{Alerter: alert.NewService(nil, rec.Sink())}

			out, kind := Effects(tt.svc)[1].Handle(context.Background(), tt.intent, env)
			assert.Equal(t, tt.wantKind, kind)
			if tt.wantAction != nil {
				assert.Equal(t, tt.wantAction, out)
			} else {
				assert.IsType(t, ScrapeComicFailed{}, out)
			}
			assert.Equal(t, tt.wantErrors, rec.Messages(alert.LevelError))
			assert.Equal(t, tt.wantInfos, rec.Messages(alert.LevelInfo))
		})
	}
}

func TestAdvanceQueueEffect(t *testing.T) {
	advance := Effects(fakeService{})[2]
	require.NoError(t, advance.Validate())

	out, _ := advance.Handle(context.Background(), ComicScraped{ComicBook: domain.ComicBook{ID: 4}, MultiBook: true}, effect.Env{})
	assert.Equal(t, MultiBookComicScraped{ComicBookID: 4}, out)

	out, _ = advance.Handle(context.Background(), ComicScraped{ComicBook: domain.ComicBook{ID: 4}}, effect.Env{})
	assert.Nil(t, out)
}

func TestStartMultiBook(t *testing.T) {
	out, kind := Effects(fakeService{})[5].Handle(context.Background(), StartMultiBookScraping{PageSize: 10}, effect.Env{})
	assert.Equal(t, effect.Succeeded, kind)
	assert.Equal(t, MultiBookScrapingPageLoaded{Comics: comics(1), TotalComics: 1}, out)
}

func TestPageQueueEffects(t *testing.T) {
	effects := Effects(fakeService{})
	afterScrape, afterSkip := effects[3], effects[4]
	require.NoError(t, afterScrape.Validate())
	require.NoError(t, afterSkip.Validate())

	state := func(m MultiBookState) effect.Env {
		return effect.Env{State: store.With(store.State{}, Feature, &State{MultiBook: m})}
	}
	drained := MultiBookState{Running: true, PageSize: 3, PageNumber: 1, TotalComics: 2}

	tests := []struct {
		name   string
		effect effect.Effect
		intent store.Action
		env    effect.Env
		want   store.Action
	}{
		{
			name:   "scrape drains page",
			effect: afterScrape,
			intent: MultiBookComicScraped{ComicBookID: 6},
			env:    state(drained),
			want:   LoadMultiBookScrapingPage{PageSize: 3, PageNumber: 2},
		},
		{
			name:   "skip drains page",
			effect: afterSkip,
			intent: SkipMultiBookComic{ComicBook: domain.ComicBook{ID: 6}},
			env:    state(drained),
			want:   LoadMultiBookScrapingPage{PageSize: 3, PageNumber: 2},
		},
		{
			name:   "page still has comics",
			effect: afterScrape,
			intent: MultiBookComicScraped{ComicBookID: 6},
			env:    state(MultiBookState{Running: true, PageSize: 3, TotalComics: 2, Comics: comics(7)}),
		},
		{
			name:   "queue finished",
			effect: afterSkip,
			intent: SkipMultiBookComic{ComicBook: domain.ComicBook{ID: 6}},
			env:    state(MultiBookState{Running: true, PageSize: 3}),
		},
		{
			name:   "stopped",
			effect: afterScrape,
			intent: MultiBookComicScraped{ComicBookID: 6},
			env:    effect.Env{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.True(t, tt.effect.Matches(tt.intent))
			out, kind := tt.effect.Handle(context.Background(), tt.intent, tt.env)
			assert.Equal(t, effect.Succeeded, kind)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestMultiBookQueueDrainRequestsNextPage(t *testing.T) {
	s := Feature.Initial()
	s = reduce(s, StartMultiBookScraping{PageSize: 2})
	s = reduce(s, MultiBookScrapingPageLoaded{Comics: comics(1, 2), PageNumber: 0, TotalComics: 5})

	page := Effects(fakeService{})[3]
	s = reduce(s, MultiBookComicScraped{ComicBookID: 1})
	out, _ := page.Handle(context.Background(), MultiBookComicScraped{ComicBookID: 1},
		effect.Env{State: store.With(store.State{}, Feature, s)})
	assert.Nil(t, out, "one comic left on the page")

	s = reduce(s, MultiBookComicScraped{ComicBookID: 2})
	out, _ = page.Handle(context.Background(), MultiBookComicScraped{ComicBookID: 2},
		effect.Env{State: store.With(store.State{}, Feature, s)})
	assert.Equal(t, LoadMultiBookScrapingPage{PageSize: 2, PageNumber: 1}, out)

	s = reduce(s, out)
	assert.True(t, s.Busy)
	assert.Equal(t, 1, s.MultiBook.PageNumber)
}
