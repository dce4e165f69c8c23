package service

import "context"

// PublisherInterface defines the contract for sharing rendered documents
type PublisherInterface interface {
	Publish(ctx context.Context, path string) (string, error)
}
