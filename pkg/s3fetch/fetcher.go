package s3fetch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Rinduprawa/project-ecommerce/internal/logctx"
)

// FetchConfig configures a dataset fetch operation.
type FetchConfig struct {
	// URIs are the s3://bucket/key dataset objects to download. A dataset
	// may be published as several shards.
	URIs []string
	// DownloadDir is the local directory to download dataset files to.
	DownloadDir string
	// Concurrency is the number of parallel downloads (default: 4).
	Concurrency int
}

// Fetcher downloads dataset files from S3.
type Fetcher struct {
	client *Client
	cfg    FetchConfig
}

// NewFetcher creates a dataset fetcher.
func NewFetcher(client *Client, cfg FetchConfig) *Fetcher {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	return &Fetcher{
		client: client,
		cfg:    cfg,
	}
}

// Fetch downloads all configured dataset objects concurrently and returns
// the local paths in the same order as the input URIs.
func (f *Fetcher) Fetch(ctx context.Context) ([]string, error) {
	if len(f.cfg.URIs) == 0 {
		return nil, errors.New("no dataset URIs configured")
	}

	if err := os.MkdirAll(f.cfg.DownloadDir, 0755); err != nil {
		return nil, fmt.Errorf("create download dir: %w", err)
	}

	localFiles := make([]string, len(f.cfg.URIs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.cfg.Concurrency)

	for i, uri := range f.cfg.URIs {
		i, uri := i, uri
		g.Go(func() error {
			bucket, key, err := ParseS3URI(uri)
			if err != nil {
				return fmt.Errorf("parse dataset URI: %w", err)
			}

			localPath := filepath.Join(f.cfg.DownloadDir, filepath.Base(key))
			log := logctx.FromContext(ctx).With().Str("key", key).Logger()

			start := time.Now()
			n, err := f.client.DownloadFile(ctx, bucket, key, localPath)
			if err != nil {
				return fmt.Errorf("download %s: %w", uri, err)
			}

			log.Info().
				Int64("bytes", n).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Str("local_path", localPath).
				Msg("dataset file downloaded")

			localFiles[i] = localPath
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("wait for downloads: %w", err)
	}

	return localFiles, nil
}

// ParseS3URI splits an s3://bucket/key URI into bucket and key.
func ParseS3URI(uri string) (bucket, key string, err error) {
	const scheme = "s3://"
	if !strings.HasPrefix(uri, scheme) {
		return "", "", fmt.Errorf("not an s3 URI: %q", uri)
	}

	rest := strings.TrimPrefix(uri, scheme)
	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", fmt.Errorf("malformed s3 URI (want s3://bucket/key): %q", uri)
	}
	return bucket, key, nil
}
