package gateways

import (
	"context"
	"fmt"
	"path"

	"github.com/ochairo/rsasxlsx/internal/domain/entities"
)

// Uploader stores a local file under an object key
type Uploader interface {
	Upload(ctx context.Context, localPath, key string) (string, error)
}

// objectStorePublisher publishes artifacts to S3-compatible storage
type objectStorePublisher struct {
	uploader Uploader
	prefix   string
}

// NewObjectStorePublisher creates a publisher that stores artifacts under prefix
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewObjectStorePublisher(uploader Uploader, prefix string) *objectStorePublisher {
	return &objectStorePublisher{uploader: uploader, prefix: prefix}
}

// Publish uploads the artifact and returns its URL
func (p *objectStorePublisher) Publish(ctx context.Context, artifact *entities.Artifact) (string, error) {
	key := path.Join(p.prefix, artifact.Name)
	url, err := p.uploader.Upload(ctx, artifact.Path, key)
	if err != nil {
		return "", fmt.Errorf("failed to publish %s: %w", artifact.Name, err)
	}
	return url, nil
}
