package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DrivePublisher uploads rendered PDFs to a Google Drive folder
type DrivePublisher struct {
	client   *drive.Service
	folderID string
}

// Ensure DrivePublisher implements PublisherInterface
var _ PublisherInterface = (*DrivePublisher)(nil)

// NewDrivePublisher creates a DrivePublisher authenticated with a Service
// Account JSON file. Extra client options are appended after the
// credentials.
func NewDrivePublisher(ctx context.Context, credentialsPath, folderID string, opts ...option.ClientOption) (*DrivePublisher, error) {
	if folderID == "" {
		return nil, fmt.Errorf("drive folder id is required")
	}

	clientOpts := opts
	if credentialsPath != "" {
		clientOpts = append([]option.ClientOption{option.WithCredentialsFile(credentialsPath)}, opts...)
	}

	driveService, err := drive.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DrivePublisher{
		client:   driveService,
		folderID: folderID,
	}, nil
}

// Publish uploads the file at path into the folder and returns its Drive id
func (p *DrivePublisher) Publish(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	file := &drive.File{
		Name:     filepath.Base(path),
		Parents:  []string{p.folderID},
		MimeType: mimeTypeFor(path),
	}

	created, err := p.client.Files.Create(file).
		Media(f).
		SupportsAllDrives(true).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", filepath.Base(path), err)
	}
	return created.Id, nil
}

func mimeTypeFor(path string) string {
	switch filepath.Ext(path) {
	case ".pdf":
		return "application/pdf"
	case ".svg":
		return "image/svg+xml"
	case ".png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}
