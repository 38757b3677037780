// Package repositories implements SQLite persistence for fetched roster payloads.
//
// Only what a source returned is stored, never edits made in the table.
//
// Key Implementations:
//   - [MemberCacheRepository] : last good payload per source, in source order
//   - [LoadHistoryRepository] : one row per fetch attempt, newest first
//
// The schema lives in the shared package's embedded migrations.
package repositories
