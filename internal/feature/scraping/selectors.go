package scraping

import (
	"github.com/comixed/comixed-client/internal/domain"
	"github.com/comixed/comixed-client/pkg/store"
)

var (
	// SelectState returns the whole slice.
	SelectState = store.Select(Feature, func(s *State) *State { return s })

	// SelectVolumes returns the last volume search results.
	SelectVolumes = store.Select(Feature, func(s *State) []domain.Volume { return s.Volumes })

	// SelectMultiBook returns the multi-book queue.
	SelectMultiBook = store.Select(Feature, func(s *State) MultiBookState { return s.MultiBook })

	// SelectMultiBookCurrent returns the comic being scraped from the queue.
	SelectMultiBookCurrent = store.Derive(SelectMultiBook, func(m MultiBookState) *domain.ComicBook { return m.Current })
)
