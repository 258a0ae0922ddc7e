package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/storage/v1"
	htransport "google.golang.org/api/transport/http"
)

var ErrBlobNotFound = errors.New("blob not found")

// BlobSource reads the files an import is made of.
type BlobSource interface {
	Read(ctx context.Context, name string) ([]byte, error)
	String() string
}

type GCSSource struct {
	service *storage.Service
	bucket  string
}

// NewGCSSource reads from the bucket with the default service account credentials.
// Extra options (an endpoint, no auth) are for tests.
func NewGCSSource(ctx context.Context, bucket string, opts ...option.ClientOption) (*GCSSource, error) {
	if bucket == "" {
		return nil, errors.New("import bucket not configured")
	}

	if len(opts) == 0 {
		transport, err := htransport.NewTransport(
			ctx,
			otelhttp.NewTransport(http.DefaultTransport),
			option.WithScopes(storage.DevstorageReadOnlyScope),
		)
		if err != nil {
			return nil, fmt.Errorf("create storage transport: %w", err)
		}
		opts = append(opts, option.WithHTTPClient(&http.Client{Transport: transport}))
	}

	service, err := storage.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage service: %w", err)
	}

	return &GCSSource{
		service: service,
		bucket:  bucket,
	}, nil
}

func (s *GCSSource) Read(ctx context.Context, name string) ([]byte, error) {
	resp, err := s.service.Objects.Get(s.bucket, name).Context(ctx).Download()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
			return nil, fmt.Errorf("%s: %w", name, ErrBlobNotFound)
		}
		return nil, fmt.Errorf("download %s: %w", name, err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return content, nil
}

func (s *GCSSource) String() string {
	return "gs://" + s.bucket
}

// DiskSource reads from a local directory, mirroring the bucket layout.
type DiskSource struct {
	root string
}

func NewDiskSource(root string) *DiskSource {
	return &DiskSource{root: root}
}

func (s *DiskSource) Read(_ context.Context, name string) ([]byte, error) {
	content, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(name)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", name, ErrBlobNotFound)
		}
		return nil, err
	}
	return content, nil
}

func (s *DiskSource) String() string {
	return "file://" + s.root
}
