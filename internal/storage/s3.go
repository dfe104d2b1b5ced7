// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Config configures the S3 uploader. Archives go to PrivateBucket, or to
// the public bucket without a public ACL when no private bucket is set.
type S3Config struct {
	Endpoint      string
	Region        string
	AccessKey     string
	SecretKey     string
	PublicBucket  string
	PrivateBucket string
	PublicURL     string // optional CDN or custom domain for public files
}

// S3 stores objects in S3-compatible storage with path-style addressing
// (required by CEPH/Hetzner and MinIO).
type S3 struct {
	s3            *s3.Client
	publicBucket  string
	privateBucket string
	endpoint      string
	publicURL     string
}

// NewS3 creates an S3 uploader. Returns (nil, nil) if the endpoint or
// credentials are empty, so the caller can fall back to local storage.
func NewS3(cfg S3Config) (*S3, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, nil
	}
	if cfg.PublicBucket == "" {
		return nil, fmt.Errorf("s3: public bucket is required")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	client := s3.New(s3.Options{
		Region:       cfg.Region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	})

	private := cfg.PrivateBucket
	if private == "" {
		private = cfg.PublicBucket
	}
	return &S3{
		s3:            client,
		publicBucket:  cfg.PublicBucket,
		privateBucket: private,
		endpoint:      endpoint,
		publicURL:     strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

// Upload stores a public-read object and returns its URL. The body is
// buffered so the SDK can sign and checksum a seekable payload.
func (c *S3) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(body, MaxUploadSize+1))
	if err != nil {
		return "", fmt.Errorf("s3 upload %s: read body: %w", key, err)
	}
	if int64(len(data)) > MaxUploadSize {
		return "", fmt.Errorf("s3 upload %s: %w", key, ErrTooLarge)
	}

	_, err = c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.publicBucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
		ACL:           s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload %s/%s: %w", c.publicBucket, key, err)
	}
	return c.FileURL(key), nil
}

// Archive stores a private object.
func (c *S3) Archive(ctx context.Context, key string, data []byte) error {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.privateBucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/json"),
		ACL:           s3types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return fmt.Errorf("s3 archive %s/%s: %w", c.privateBucket, key, err)
	}
	return nil
}

// FileURL returns the public URL for a key in the public bucket, using
// the configured public URL if set and a path-style URL otherwise.
func (c *S3) FileURL(key string) string {
	if c.publicURL != "" {
		return c.publicURL + "/" + key
	}
	return c.endpoint + "/" + c.publicBucket + "/" + key
}
