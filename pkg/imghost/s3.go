package imghost

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"pompa-press/pkg/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// S3Host stores images in an S3-compatible bucket (AWS or MinIO) for
// deployments that want real deletion support instead of ImgBB.
type S3Host struct {
	s3Client *s3.S3
	bucket   string
}

func NewS3Host(cfg *config.Config) (*S3Host, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.AWSRegion),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		),
	}

	// Support MinIO for local development
	if cfg.AWSEndpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.AWSEndpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		if cfg.S3UseSSL == "false" {
			awsConfig.DisableSSL = aws.Bool(true)
		}
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &S3Host{
		s3Client: s3.New(sess),
		bucket:   cfg.S3BucketName,
	}, nil
}

func (h *S3Host) Upload(ctx context.Context, data []byte, name string) (string, error) {
	key := fmt.Sprintf("contenidos/%s-%s", uuid.New().String(), sanitizeKey(name))

	_, err := h.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(h.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image to S3: %w", err)
	}

	return h.objectURL(key), nil
}

func (h *S3Host) Delete(ctx context.Context, assetURL string) (bool, error) {
	key, ok := h.keyFromURL(assetURL)
	if !ok {
		return false, fmt.Errorf("url does not belong to bucket %s: %s", h.bucket, assetURL)
	}

	_, err := h.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(h.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete image from S3: %w", err)
	}
	return true, nil
}

func (h *S3Host) objectURL(key string) string {
	endpoint := aws.StringValue(h.s3Client.Config.Endpoint)
	if endpoint != "" && !strings.Contains(endpoint, "amazonaws.com") {
		// MinIO URL format
		protocol := "https"
		if h.s3Client.Config.DisableSSL != nil && *h.s3Client.Config.DisableSSL {
			protocol = "http"
		}
		endpoint = strings.TrimPrefix(endpoint, "http://")
		endpoint = strings.TrimPrefix(endpoint, "https://")
		return fmt.Sprintf("%s://%s/%s/%s", protocol, endpoint, h.bucket, key)
	}

	region := aws.StringValue(h.s3Client.Config.Region)
	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", h.bucket, region, key)
}

func (h *S3Host) keyFromURL(assetURL string) (string, bool) {
	u, err := url.Parse(assetURL)
	if err != nil {
		return "", false
	}
	path := strings.TrimPrefix(u.Path, "/")
	// Path-style (MinIO): /<bucket>/<key>
	if strings.HasPrefix(path, h.bucket+"/") {
		return strings.TrimPrefix(path, h.bucket+"/"), true
	}
	// Virtual-hosted style: <bucket>.s3.<region>.amazonaws.com/<key>
	if strings.HasPrefix(u.Host, h.bucket+".") {
		return path, true
	}
	return "", false
}

func sanitizeKey(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '-'
	}, name)
	if name == "" || name == "-" {
		return "imagen"
	}
	return name
}
