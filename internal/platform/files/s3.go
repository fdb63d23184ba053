package files

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PutObjectAPI is the slice of the s3 client the bucket saver needs
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Bucket saves files as objects under Prefix in an S3 compatible bucket
type Bucket struct {
	Client PutObjectAPI
	Name   string
	Prefix string
}

// S3Options configures NewBucket
type S3Options struct {
	Region string
	// Endpoint switches to path style addressing, eg for MinIO
	Endpoint string
}

// NewBucket builds a Bucket from the default AWS credential chain
func NewBucket(ctx context.Context, name, prefix string, o S3Options) (*Bucket, error) {
	if name == "" {
		return nil, fmt.Errorf("files: empty bucket name")
	}
	var loadOpts []func(*awsconfig.LoadOptions) error
	if o.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(o.Region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("files: load aws config: %w", err)
	}
	var s3opts []func(*s3.Options)
	if o.Endpoint != "" {
		s3opts = append(s3opts, func(so *s3.Options) {
			so.BaseEndpoint = aws.String(o.Endpoint)
			so.UsePathStyle = true
		})
	}
	return &Bucket{Client: s3.NewFromConfig(cfg, s3opts...), Name: name, Prefix: prefix}, nil
}

// ParseS3URL splits s3://bucket/prefix, ok is false for anything else
func ParseS3URL(raw string) (bucket, prefix string, ok bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "s3" || u.Host == "" {
		return "", "", false
	}
	return u.Host, strings.Trim(u.Path, "/"), true
}

// Key returns the object key for fileName
func (b *Bucket) Key(fileName string) (string, error) {
	name, err := CleanName(fileName)
	if err != nil {
		return "", err
	}
	if b.Prefix == "" {
		return name, nil
	}
	return path.Join(b.Prefix, name), nil
}

// SaveTextFile uploads content as fileName
func (b *Bucket) SaveTextFile(ctx context.Context, content, fileName, mimeType string) error {
	return b.SaveFile(ctx, []byte(content), fileName, mimeType)
}

// SaveFile uploads data as fileName
func (b *Bucket) SaveFile(ctx context.Context, data []byte, fileName, mimeType string) error {
	key, err := b.Key(fileName)
	if err != nil {
		return err
	}
	in := &s3.PutObjectInput{
		Bucket: aws.String(b.Name),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if mimeType != "" {
		in.ContentType = aws.String(mimeType)
	}
	if _, err := b.Client.PutObject(ctx, in); err != nil {
		return fmt.Errorf("files: s3 put %s/%s: %w", b.Name, key, err)
	}
	return nil
}
