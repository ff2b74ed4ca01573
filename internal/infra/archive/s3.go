package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/BruksfildServices01/recruit-scheduler/internal/config"
	"github.com/BruksfildServices01/recruit-scheduler/internal/domain/interview"
)

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Archive writes each proposal as proposals/<id>.json.
type S3Archive struct {
	client objectPutter
	bucket string
}

func NewS3Archive(cfg *config.Config) *S3Archive {
	opts := s3.Options{
		Region: cfg.AWSRegion,
	}
	if cfg.AWSAccessKeyID != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)
	}
	// S3-compatible storage (minio, R2)
	if cfg.AWSEndpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.AWSEndpoint)
		opts.UsePathStyle = true
	}

	return &S3Archive{
		client: s3.New(opts),
		bucket: cfg.ArchiveBucket,
	}
}

func ObjectKey(rec interview.Record) string {
	return "proposals/" + rec.ID.String() + ".json"
}

func (a *S3Archive) Put(ctx context.Context, rec interview.Record) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(ObjectKey(rec)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("archive proposal %s: %w", rec.ID, err)
	}
	return nil
}

var _ interview.Archive = (*S3Archive)(nil)
