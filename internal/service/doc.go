// Package service contains the application's business logic: profile
// management with account limits, the story generation pipeline that
// orchestrates the text, image, and speech providers, and favorite bookmarks
// with thumbnail snapshots. Services sit between the HTTP handlers and the
// stores and generator adapters.
package service
