// Package api contains the HTTP handlers for the story generation API:
// profile management, story generation and retrieval, and favorite bookmarks.
// Handlers decode and validate requests, delegate to the service layer, and
// translate service errors to HTTP status codes through a single mapping
// point.
package api
