package archive

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const artifactContentType = "audio/opus"

// S3Config configures the artifact store. It targets any S3-compatible
// endpoint; for Cloudflare R2 the endpoint is
// https://{account-id}.r2.cloudflarestorage.com with region "auto".
type S3Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	Region          string
	Bucket          string
	// PublicHost is the host serving stored objects publicly, e.g. a CDN
	// or R2 public-bucket domain.
	PublicHost string
}

// S3Store implements ArtifactStore against an S3-compatible object store.
type S3Store struct {
	uploader   *manager.Uploader
	bucket     string
	publicHost string
}

// NewS3Store creates an artifact store from static credentials.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("archive: load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return &S3Store{
		uploader:   manager.NewUploader(client),
		bucket:     cfg.Bucket,
		publicHost: cfg.PublicHost,
	}, nil
}

// Put uploads data under key, overwriting any existing object. The manager
// handles multipart splitting for large artifacts.
func (s *S3Store) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(artifactContentType),
	})
	if err != nil {
		return &StoreError{Op: "put", Entity: "artifact", Key: key, Err: err}
	}
	return nil
}

// PublicURL returns the publicly resolvable URL for a stored key.
func (s *S3Store) PublicURL(key string) string {
	return "https://" + s.publicHost + "/" + key
}
