package external

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Blob folders for uploaded images
const (
	FolderGifts  = "gifts"
	FolderHeader = "header"
)

// BlobClient uploads images to an S3-compatible blob store over HTTP and
// returns public URLs. Deletes are best-effort.
type BlobClient struct {
	baseURL    string
	publicURL  string
	token      string
	httpClient *http.Client
}

type BlobConfig struct {
	BaseURL   string
	PublicURL string
	Token     string
	Timeout   time.Duration
}

func NewBlobClient(cfg BlobConfig) *BlobClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.PublicURL == "" {
		cfg.PublicURL = cfg.BaseURL
	}

	return &BlobClient{
		baseURL:   cfg.BaseURL,
		publicURL: cfg.PublicURL,
		token:     cfg.Token,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Upload stores data under folder with a generated object name and returns
// the public URL
func (bc *BlobClient) Upload(ctx context.Context, folder, contentType string, data []byte) (string, error) {
	ext := extensionFor(contentType)
	objectKey := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, bc.baseURL+"/"+objectKey, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if bc.token != "" {
		req.Header.Set("Authorization", "Bearer "+bc.token)
	}

	resp, err := bc.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return bc.publicURL + "/" + objectKey, nil
}

// Delete removes an object by its public URL. Objects outside our store and
// already-deleted objects are ignored.
func (bc *BlobClient) Delete(ctx context.Context, objectURL string) error {
	if !strings.HasPrefix(objectURL, bc.publicURL+"/") {
		return nil
	}
	objectKey := strings.TrimPrefix(objectURL, bc.publicURL+"/")

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, bc.baseURL+"/"+objectKey, nil)
	if err != nil {
		return fmt.Errorf("failed to create delete request: %w", err)
	}
	if bc.token != "" {
		req.Header.Set("Authorization", "Bearer "+bc.token)
	}

	resp, err := bc.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent &&
		resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ""
	}
}
