package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// Archiver stores a copy of an analyzed floor plan. Archival is best-effort:
// callers log failures and never let them affect the client response.
type Archiver interface {
	Archive(ctx context.Context, data []byte, mimeType string) error
}

type azureArchiver struct {
	client    *azblob.Client
	container string
}

// NewAzureArchiver builds an Archiver backed by Azure Blob Storage.
func NewAzureArchiver(accountName, accountKey, container string) (Archiver, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, err
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return &azureArchiver{client: client, container: container}, nil
}

func (a *azureArchiver) Archive(ctx context.Context, data []byte, mimeType string) error {
	name := blobName(mimeType)
	if _, err := a.client.UploadBuffer(ctx, a.container, name, data, nil); err != nil {
		return fmt.Errorf("archive upload failed: %w", err)
	}
	return nil
}

func blobName(mimeType string) string {
	ext := ".bin"
	switch strings.ToLower(strings.TrimSpace(mimeType)) {
	case "image/png":
		ext = ".png"
	case "image/jpeg", "image/jpg":
		ext = ".jpg"
	case "image/webp":
		ext = ".webp"
	}
	return fmt.Sprintf("floorplans/%s%s", time.Now().UTC().Format("2006/01/02/150405.000000000"), ext)
}

type noopArchiver struct{}

// NewNoopArchiver returns an Archiver that discards everything, for
// deployments without archival configured.
func NewNoopArchiver() Archiver { return noopArchiver{} }

func (noopArchiver) Archive(context.Context, []byte, string) error { return nil }
