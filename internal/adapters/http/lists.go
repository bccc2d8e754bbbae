package http

import (
	"context"
	"fmt"

	"github.com/comixed/comixed-client/internal/domain"
)

const readingListsPath = "/api/lists/reading"

// ReadingListService manages the user's reading lists.
type ReadingListService struct {
	client *Client
}

// NewReadingListService creates a ReadingListService.
func NewReadingListService(client *Client) *ReadingListService {
	return &ReadingListService{client: client}
}

// LoadReadingLists returns the user's reading lists.
func (s *ReadingListService) LoadReadingLists(ctx context.Context) ([]domain.ReadingList, error) {
	var lists []domain.ReadingList
	if err := s.client.Get(ctx, readingListsPath, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// SaveReadingList creates the list when it has no id and updates it
// otherwise.
func (s *ReadingListService) SaveReadingList(ctx context.Context, list domain.ReadingList) (domain.ReadingList, error) {
	var saved domain.ReadingList
	var err error
	if list.ID == 0 {
		err = s.client.Post(ctx, readingListsPath, list, &saved)
	} else {
		err = s.client.Put(ctx, fmt.Sprintf("%s/%d", readingListsPath, list.ID), list, &saved)
	}
	return saved, err
}

type deleteListsRequest struct {
	IDs []int64 `json:"ids"`
}

// DeleteReadingLists removes the given lists.
func (s *ReadingListService) DeleteReadingLists(ctx context.Context, ids []int64) error {
	return s.client.Post(ctx, readingListsPath+"/delete", deleteListsRequest{IDs: ids}, nil)
}
