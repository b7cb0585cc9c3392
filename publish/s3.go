// Package publish is the downstream rendering boundary: completed batch
// results are handed off as JSON to S3 and/or a Kafka topic for the
// renderers that build newsletters from them.
package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"newsbrief/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config contains minimal configuration for creating an S3 client.
// Values are optional and fall back to the standard AWS config chain.
type S3Config struct {
	Region string
	// Profile selects a named shared config/credentials profile.
	Profile string
	// UsePathStyle forces path-style addressing for S3-compatible
	// providers.
	UsePathStyle bool
	Bucket       string
	Prefix       string
}

// S3Archiver writes batch results to an S3 bucket.
type S3Archiver struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Archiver creates an archiver using the default AWS configuration
// chain with optional overrides.
func NewS3Archiver(ctx context.Context, cfg S3Config) (*S3Archiver, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is required")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
	})

	prefix := cfg.Prefix
	if prefix != "" && prefix[len(prefix)-1] != '/' {
		prefix += "/"
	}
	return &S3Archiver{client: client, bucket: cfg.Bucket, prefix: prefix}, nil
}

// ArchiveBatch writes the full batch result as one JSON object keyed by
// run start time.
func (a *S3Archiver) ArchiveBatch(ctx context.Context, batch *types.BatchResult) error {
	b, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding batch: %w", err)
	}

	key := fmt.Sprintf("%sbatches/%s.json", a.prefix, batch.StartedAt.UTC().Format("20060102T150405Z"))
	return a.put(ctx, key, bytes.NewReader(b), "application/json")
}

func (a *S3Archiver) put(ctx context.Context, key string, body io.Reader, contentType string) error {
	in := &s3.PutObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	if _, err := a.client.PutObject(ctx, in); err != nil {
		return fmt.Errorf("uploading s3://%s/%s: %w", a.bucket, key, err)
	}
	return nil
}
