package persistent

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/itshivams/image-processing-system/pkg/s3client"
)

type ArtifactRepo struct {
	*s3client.S3Client
	bucket        string
	publicBaseURL string
}

func NewArtifactRepo(s3c *s3client.S3Client, bucket, publicBaseURL string) *ArtifactRepo {
	return &ArtifactRepo{s3c, bucket, strings.TrimRight(publicBaseURL, "/")}
}

// UploadBytes overwrites any existing object at key, so a retried job
// re-uploading the same artifact path is harmless.
func (r *ArtifactRepo) UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := r.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("ArtifactRepo - UploadBytes - r.Client.PutObject: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", r.publicBaseURL, r.bucket, key), nil
}
