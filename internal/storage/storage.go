// Package storage abstracts where uploaded assets live. The admin UI only
// ever sees opaque keys and public URLs.
package storage

import "context"

// Object locates a stored asset.
type Object struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// Storage is the blob store port.
type Storage interface {
	// Put writes data under key, replacing any previous content.
	Put(ctx context.Context, key string, data []byte, contentType string) (*Object, error)
	// Get resolves an existing key to its public URL.
	Get(ctx context.Context, key string) (*Object, error)
}
