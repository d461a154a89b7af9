package publish

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const DefaultRegion = "us-east-1"

// Publisher stores a finished report and returns where it can be fetched from.
type Publisher interface {
	Publish(ctx context.Context, name string, data []byte, contentType string) (string, error)
}

// ObjectPutter is the subset of the S3 client used to upload reports.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Settings struct {
	Bucket  string
	Prefix  string
	Region  string
	Profile string
}

// Enabled reports whether a bucket is configured.
func (s Settings) Enabled() bool {
	return s.Bucket != ""
}

type s3Publisher struct {
	client ObjectPutter
	bucket string
	prefix string
}

// NewS3Publisher loads the AWS SDK config for the settings and returns a publisher
// writing into the configured bucket.
func NewS3Publisher(ctx context.Context, settings Settings) (Publisher, error) {
	if !settings.Enabled() {
		return nil, fmt.Errorf("publish bucket is not configured")
	}

	region := settings.Region
	if region == "" {
		region = DefaultRegion
	}
	opts := []func(*config.LoadOptions) error{config.WithDefaultRegion(region)}
	if settings.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(settings.Profile))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	return NewPublisher(s3.NewFromConfig(awsCfg), settings.Bucket, settings.Prefix), nil
}

func NewPublisher(client ObjectPutter, bucket, prefix string) Publisher {
	return &s3Publisher{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

func (p *s3Publisher) Publish(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	key := name
	if p.prefix != "" {
		key = path.Join(p.prefix, name)
	}

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        awssdk.String(p.bucket),
		Key:           awssdk.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   awssdk.String(contentType),
		ContentLength: awssdk.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to bucket %s: %w", key, p.bucket, err)
	}

	return fmt.Sprintf("s3://%s/%s", p.bucket, key), nil
}
