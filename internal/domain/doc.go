// Package domain contains the library entities exchanged with the ComiXed
// server and the pure helpers the feature reducers build on.
//
// This package has no dependencies on infrastructure concerns (HTTP,
// messaging, logging).
//
// # Entities
//
//   - [ComicBook]: a comic in the library
//   - [BlockedHash]: a page hash excluded from imports
//   - [ReadingList]: a user's ordered list of comics
//   - [User]: the authenticated account and its preferences
//   - [Volume]: a metadata source's series volume
//   - [ComicFile], [ComicFileGroup]: files found in an import directory
//   - [Cursor]: persisted sync position
package domain
