package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/pedroriq/sissuporte/internal/config"
)

// Uploader sobe um blob e devolve a URL pública resultante.
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// S3Storage fala com qualquer backend compatível com S3 (Supabase
// Storage, MinIO, AWS). Endpoint path-style por compatibilidade.
type S3Storage struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewS3Storage(cfg *config.Config) *S3Storage {
	client := s3.New(s3.Options{
		Region:       cfg.StorageRegion,
		BaseEndpoint: aws.String(cfg.StorageEndpoint),
		UsePathStyle: true,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.StorageAccessKey,
			cfg.StorageSecretKey,
			"",
		),
	})

	publicURL := cfg.StoragePublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("%s/%s", strings.TrimSuffix(cfg.StorageEndpoint, "/"), cfg.StorageBucket)
	}

	return &S3Storage{
		client:    client,
		bucket:    cfg.StorageBucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

func (s *S3Storage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s", s.publicURL, key), nil
}

// PrintKey gera a chave do print: timestamp + sufixo aleatório, para
// nunca colidir dentro do prefixo fixo.
func PrintKey(now time.Time) string {
	return fmt.Sprintf("prints/%d-%s.png", now.UnixMilli(), uuid.NewString()[:8])
}
