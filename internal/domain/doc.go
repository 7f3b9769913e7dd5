// Package domain defines the core business entities and errors: child
// profiles, generated stories and their pages, and favorite bookmarks.
// Entities are persistence-agnostic; stores and services operate on them
// without knowing how they are stored.
package domain
