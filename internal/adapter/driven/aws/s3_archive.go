package aws

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/diillson/aws-cost-chart/internal/domain/repository"
)

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3ArchiveRepository copia os gráficos gerados para um bucket S3.
type S3ArchiveRepository struct {
	client s3API
	bucket string
	prefix string
	now    func() time.Time
}

// NewS3ArchiveRepository cria o repositório de arquivamento.
func NewS3ArchiveRepository(cfg aws.Config, bucket, prefix string) repository.ArchiveRepository {
	return newS3ArchiveRepository(s3.NewFromConfig(cfg), bucket, prefix, time.Now)
}

func newS3ArchiveRepository(client s3API, bucket, prefix string, now func() time.Time) *S3ArchiveRepository {
	return &S3ArchiveRepository{client: client, bucket: bucket, prefix: prefix, now: now}
}

// Archive envia o arquivo para <prefix>/YYYY/MM/DD/<nome> e retorna a URI s3.
func (r *S3ArchiveRepository) Archive(ctx context.Context, filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("error opening %s: %w", filePath, err)
	}
	defer f.Close()

	key := path.Join(r.prefix, r.now().UTC().Format("2006/01/02"), filepath.Base(filePath))

	input := &s3.PutObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
		Body:   f,
	}
	if ct := mime.TypeByExtension(filepath.Ext(filePath)); ct != "" {
		input.ContentType = aws.String(ct)
	}

	if _, err := r.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("error uploading to s3://%s/%s: %w", r.bucket, key, err)
	}

	return fmt.Sprintf("s3://%s/%s", r.bucket, key), nil
}
