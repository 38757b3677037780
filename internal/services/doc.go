// Package services defines the [Source] interface for fetching the member roster and its implementations.
//
// # Sources
//
//   - [HTTPSource] : one GET against a URL returning a JSON array of members
//   - [FileSource] : the same payload read from a local file
//   - [CachedSource] : wraps another source, storing successful payloads and optionally serving them offline
//
// Sources never filter or paginate; the table engine does that in memory.
//
// # Throttling and Auth
//
// [HTTPSource] accepts an optional [rate.Limiter] so manual reloads cannot hammer the upstream.
// [NewHTTPClient] builds the client, using OAuth2 client credentials when configured.
//
// # Error Handling
//
// Sources return typed errors from the shared package:
//   - [shared.ErrAPIRequest] : transport failure or non-2xx status
//   - [shared.ErrInvalidPayload] : body is not a JSON array of members, or ids are empty/duplicated
//   - [shared.ErrCacheMiss] : offline mode with nothing cached
package services
