package http

import (
	"context"
	"fmt"

	"github.com/comixed/comixed-client/internal/domain"
)

const (
	selectionsPath    = "/api/comics/selections"
	comicBatchPath    = "/api/comics/batch"
	blockedHashesPath = "/api/library/pages/blocked"
)

// SelectionService manages the user's comic book selections.
type SelectionService struct {
	client *Client
}

// NewSelectionService creates a SelectionService.
func NewSelectionService(client *Client) *SelectionService {
	return &SelectionService{client: client}
}

// LoadSelections returns the selected comic book ids.
func (s *SelectionService) LoadSelections(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := s.client.Get(ctx, selectionsPath, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// AddSelection selects one comic and returns the new selection set.
func (s *SelectionService) AddSelection(ctx context.Context, comicBookID int64) ([]int64, error) {
	var ids []int64
	if err := s.client.Put(ctx, fmt.Sprintf("%s/%d", selectionsPath, comicBookID), struct{}{}, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// RemoveSelection deselects one comic and returns the new selection set.
func (s *SelectionService) RemoveSelection(ctx context.Context, comicBookID int64) ([]int64, error) {
	var ids []int64
	if err := s.client.Delete(ctx, fmt.Sprintf("%s/%d", selectionsPath, comicBookID), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// ClearSelections deselects everything.
func (s *SelectionService) ClearSelections(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := s.client.Delete(ctx, selectionsPath, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// ComicBookService pages through the comic list.
type ComicBookService struct {
	client *Client
}

// NewComicBookService creates a ComicBookService.
func NewComicBookService(client *Client) *ComicBookService {
	return &ComicBookService{client: client}
}

type comicBatchRequest struct {
	MaxRecords int   `json:"maxRecords"`
	LastID     int64 `json:"lastId"`
}

// LoadComicBooks returns up to maxRecords comics with ids after lastID.
func (s *ComicBookService) LoadComicBooks(ctx context.Context, maxRecords int, lastID int64) (domain.ComicBookBatch, error) {
	var batch domain.ComicBookBatch
	err := s.client.Post(ctx, comicBatchPath, comicBatchRequest{MaxRecords: maxRecords, LastID: lastID}, &batch)
	return batch, err
}

// BlockedHashService manages blocked pages.
type BlockedHashService struct {
	client *Client
}

// NewBlockedHashService creates a BlockedHashService.
func NewBlockedHashService(client *Client) *BlockedHashService {
	return &BlockedHashService{client: client}
}

// LoadBlockedHashes returns every blocked page.
func (s *BlockedHashService) LoadBlockedHashes(ctx context.Context) ([]domain.BlockedHash, error) {
	var entries []domain.BlockedHash
	if err := s.client.Get(ctx, blockedHashesPath, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SaveBlockedHash creates or updates a blocked page.
func (s *BlockedHashService) SaveBlockedHash(ctx context.Context, entry domain.BlockedHash) (domain.BlockedHash, error) {
	var saved domain.BlockedHash
	err := s.client.Post(ctx, blockedHashesPath, entry, &saved)
	return saved, err
}

type deleteHashesRequest struct {
	Hashes []string `json:"hashes"`
}

// DeleteBlockedHashes removes blocked pages and returns the hashes removed.
func (s *BlockedHashService) DeleteBlockedHashes(ctx context.Context, hashes []string) ([]string, error) {
	var removed []string
	if err := s.client.Post(ctx, blockedHashesPath+"/delete", deleteHashesRequest{Hashes: hashes}, &removed); err != nil {
		return nil, err
	}
	return removed, nil
}
