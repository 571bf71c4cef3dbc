// Package s3fetch downloads order dataset files from S3 so the pipeline
// can be pointed at a published dataset snapshot instead of a local file.
package s3fetch

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Client provides the S3 operations needed to fetch dataset files.
type Client struct {
	s3Client *s3.Client
}

// NewClient creates a new S3 client using default AWS configuration.
func NewClient(ctx context.Context) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &Client{
		s3Client: s3.NewFromConfig(cfg),
	}, nil
}

// NewClientWithConfig creates a new S3 client with a custom AWS config.
func NewClientWithConfig(cfg aws.Config) *Client {
	return &Client{
		s3Client: s3.NewFromConfig(cfg),
	}
}

// StreamObject returns a reader for an S3 object.
func (c *Client) StreamObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	resp, err := c.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get object s3://%s/%s: %w", bucket, key, err)
	}
	return resp.Body, nil
}

// DownloadFile downloads an S3 object to a local path, returning the
// number of bytes written. A partially written file is removed on error.
func (c *Client) DownloadFile(ctx context.Context, bucket, key, destPath string) (int64, error) {
	body, err := c.StreamObject(ctx, bucket, key)
	if err != nil {
		return 0, err
	}
	defer body.Close()

	f, err := os.Create(destPath)
	if err != nil {
		return 0, fmt.Errorf("create destination file: %w", err)
	}

	n, err := io.Copy(f, body)
	if err != nil {
		f.Close()
		os.Remove(destPath)
		return n, fmt.Errorf("download s3://%s/%s: %w", bucket, key, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(destPath)
		return n, fmt.Errorf("close destination file: %w", err)
	}
	return n, nil
}
