package http

import (
	"context"
	"fmt"
	"net/url"

	"github.com/comixed/comixed-client/internal/domain"
)

const multiBookPath = "/api/scraping/multi-book"

// ScrapingService talks to the metadata endpoints.
type ScrapingService struct {
	client *Client
}

// NewScrapingService creates a ScrapingService.
func NewScrapingService(client *Client) *ScrapingService {
	return &ScrapingService{client: client}
}

type volumesRequest struct {
	Series     string `json:"series"`
	MaxRecords int    `json:"maxRecords"`
	SkipCache  bool   `json:"skipCache"`
}

// LoadVolumes returns the volumes source knows for series.
func (s *ScrapingService) LoadVolumes(ctx context.Context, source, series string, maxRecords int, skipCache bool) ([]domain.Volume, error) {
	var volumes []domain.Volume
	path := fmt.Sprintf("/api/metadata/%s/volumes", url.PathEscape(source))
	if err := s.client.Post(ctx, path, volumesRequest{Series: series, MaxRecords: maxRecords, SkipCache: skipCache}, &volumes); err != nil {
		return nil, err
	}
	return volumes, nil
}

type scrapeRequest struct {
	IssueID   string `json:"issueId"`
	SkipCache bool   `json:"skipCache"`
}

// ScrapeComic applies the metadata of issueID to a comic.
func (s *ScrapingService) ScrapeComic(ctx context.Context, source, issueID string, comicBookID int64, skipCache bool) (domain.ScrapeResult, error) {
	var res domain.ScrapeResult
	path := fmt.Sprintf("/api/metadata/%s/issue/%d", url.PathEscape(source), comicBookID)
	err := s.client.Post(ctx, path, scrapeRequest{IssueID: issueID, SkipCache: skipCache}, &res)
	return res, err
}

type multiBookRequest struct {
	PageSize   int `json:"pageSize"`
	PageNumber int `json:"pageNumber"`
}

// StartMultiBookScraping queues the selected comics and returns the first page.
func (s *ScrapingService) StartMultiBookScraping(ctx context.Context, pageSize int) (domain.MultiBookPage, error) {
	var page domain.MultiBookPage
	err := s.client.Post(ctx, multiBookPath+"/start", multiBookRequest{PageSize: pageSize}, &page)
	return page, err
}

// LoadMultiBookScrapingPage returns one page of the scraping queue.
func (s *ScrapingService) LoadMultiBookScrapingPage(ctx context.Context, pageSize, pageNumber int) (domain.MultiBookPage, error) {
	var page domain.MultiBookPage
	err := s.client.Post(ctx, multiBookPath+"/page", multiBookRequest{PageSize: pageSize, PageNumber: pageNumber}, &page)
	return page, err
}
