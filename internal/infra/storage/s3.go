package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jr777pal/PetNest-India/internal/usecase"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const defaultPresignExpiry = 15 * time.Minute

type S3Options struct {
	Bucket        string
	Region        string
	PublicBaseURL string // CDNなど。空ならバケットのURL
	Endpoint      string // MinIOなど。指定時はパス形式
	Expires       time.Duration
}

// ペット画像の置き場（署名付きPUT URLを発行するだけ）
type S3ImageStorage struct {
	presign *s3.PresignClient
	opts    S3Options
}

// アクセスキーが空なら環境変数・共有設定・IAMロールの順で探す
func LoadAWSConfig(ctx context.Context, region, accessKey, secretKey string) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return cfg, nil
}

func NewS3ImageStorage(awsCfg aws.Config, opts S3Options) *S3ImageStorage {
	if opts.Expires <= 0 {
		opts.Expires = defaultPresignExpiry
	}
	if opts.Region == "" {
		opts.Region = awsCfg.Region
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3ImageStorage{
		presign: s3.NewPresignClient(client),
		opts:    opts,
	}
}

func (s *S3ImageStorage) PresignUpload(ctx context.Context, key, contentType string) (usecase.PresignedUpload, error) {
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.opts.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(s.opts.Expires))
	if err != nil {
		return usecase.PresignedUpload{}, fmt.Errorf("presign put %s: %w", key, err)
	}

	return usecase.PresignedUpload{
		UploadURL: req.URL,
		PublicURL: s.publicURL(key),
		Key:       key,
		ExpiresAt: time.Now().Add(s.opts.Expires),
	}, nil
}

func (s *S3ImageStorage) publicURL(key string) string {
	switch {
	case s.opts.PublicBaseURL != "":
		return strings.TrimRight(s.opts.PublicBaseURL, "/") + "/" + key
	case s.opts.Endpoint != "":
		return strings.TrimRight(s.opts.Endpoint, "/") + "/" + s.opts.Bucket + "/" + key
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.opts.Bucket, s.opts.Region, key)
	}
}
