package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config" // Alias config to avoid clash
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/sirupsen/logrus"

	"mkostiv/fitjournal/internal/config"
	"mkostiv/fitjournal/internal/domain"
)

const bundleObjectKey = "fitjournal/bundle.json"

// s3Provider implements Provider against an S3-compatible backend.
type s3Provider struct {
	client     *s3.Client
	bucketName string
}

// endpointURL completes the configured endpoint with a scheme chosen
// by use_ssl. S3-compatible services are often configured as bare
// host:port; an endpoint that already carries a scheme wins.
func endpointURL(cfg config.SyncConfig) string {
	if cfg.Endpoint == "" || strings.Contains(cfg.Endpoint, "://") {
		return cfg.Endpoint
	}
	if cfg.UseSSL {
		return "https://" + cfg.Endpoint
	}
	return "http://" + cfg.Endpoint
}

// NewS3Provider creates a sync provider backed by an S3 bucket.
func NewS3Provider(cfg config.SyncConfig) (Provider, error) {
	// Custom resolver for S3-compatible endpoints (like MinIO)
	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if cfg.Endpoint != "" {
			return aws.Endpoint{
				PartitionID:   "aws",
				URL:           endpointURL(cfg),
				SigningRegion: cfg.Region,
			}, nil
		}
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	awsSDKConfig, err := awsCfg.LoadDefaultConfig(context.TODO(),
		awsCfg.WithRegion(cfg.Region),
		awsCfg.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		awsCfg.WithEndpointResolverWithOptions(customResolver),
	)
	if err != nil {
		logrus.WithError(err).Error("failed to load AWS SDK config for sync provider")
		return nil, err
	}

	// Path-style addressing is required by most S3-compatible services.
	client := s3.NewFromConfig(awsSDKConfig, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	logrus.WithFields(logrus.Fields{
		"endpoint": cfg.Endpoint,
		"bucket":   cfg.BucketName,
	}).Info("sync provider initialized")

	return &s3Provider{
		client:     client,
		bucketName: cfg.BucketName,
	}, nil
}

// Push uploads the bundle as one JSON object, replacing the previous
// upload.
func (p *s3Provider) Push(ctx context.Context, bundle *domain.Bundle) error {
	body, err := json.Marshal(bundle)
	if err != nil {
		return err
	}

	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucketName),
		Key:         aws.String(bundleObjectKey),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		logrus.WithError(err).WithField("bucket", p.bucketName).Error("bundle push failed")
		return err
	}
	return nil
}

// Pull downloads and decodes the last pushed bundle.
func (p *s3Provider) Pull(ctx context.Context) (*domain.Bundle, error) {
	out, err := p.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucketName),
		Key:    aws.String(bundleObjectKey),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ErrNoRemoteBundle
		}
		logrus.WithError(err).WithField("bucket", p.bucketName).Error("bundle pull failed")
		return nil, err
	}
	defer out.Body.Close()

	var bundle domain.Bundle
	if err := json.NewDecoder(out.Body).Decode(&bundle); err != nil {
		return nil, err
	}
	return &bundle, nil
}
