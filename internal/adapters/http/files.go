package http

import (
	"context"

	"github.com/comixed/comixed-client/internal/domain"
)

const (
	fileContentsPath = "/api/files/contents"
	fileImportPath   = "/api/files/import"
)

// ComicFileService lists and imports comic files on the server host.
type ComicFileService struct {
	client *Client
}

// NewComicFileService creates a ComicFileService.
func NewComicFileService(client *Client) *ComicFileService {
	return &ComicFileService{client: client}
}

type fileContentsRequest struct {
	Directory string `json:"directory"`
	MaxFiles  int    `json:"maximum"`
}

type fileContentsResponse struct {
	Groups []domain.ComicFileGroup `json:"groups"`
}

// LoadComicFiles lists up to maxFiles comic files under directory.
func (s *ComicFileService) LoadComicFiles(ctx context.Context, directory string, maxFiles int) ([]domain.ComicFileGroup, error) {
	var resp fileContentsResponse
	if err := s.client.Post(ctx, fileContentsPath, fileContentsRequest{Directory: directory, MaxFiles: maxFiles}, &resp); err != nil {
		return nil, err
	}
	return resp.Groups, nil
}

type importRequest struct {
	Filenames         []string `json:"filenames"`
	SkipMetadata      bool     `json:"skipMetadata"`
	SkipBlockingPages bool     `json:"skipBlockingPages"`
}

// ImportComicFiles asks the server to import filenames.
func (s *ComicFileService) ImportComicFiles(ctx context.Context, filenames []string, skipMetadata, skipBlockingPages bool) (domain.ImportResult, error) {
	var res domain.ImportResult
	err := s.client.Post(ctx, fileImportPath, importRequest{
		Filenames:         filenames,
		SkipMetadata:      skipMetadata,
		SkipBlockingPages: skipBlockingPages,
	}, &res)
	return res, err
}
