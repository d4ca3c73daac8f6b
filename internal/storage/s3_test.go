package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation(t *testing.T) {
	assert.Equal(t, "s3://bucket/a/b.json", Location("bucket", "a/b.json"))
	assert.Equal(t, "s3://bucket/a/b.json", Location("bucket", "/a/b.json"))
}

func TestPutObjectValidatesOptions(t *testing.T) {
	client := s3.New(s3.Options{Region: "us-east-1", Credentials: aws.AnonymousCredentials{}})
	svc := NewS3Service(client)

	_, err := svc.PutObject(context.Background(), strings.NewReader("{}"), PutOptions{Key: "k"})
	require.Error(t, err)

	_, err = svc.PutObject(context.Background(), strings.NewReader("{}"), PutOptions{Bucket: "b", Key: "/"})
	require.Error(t, err)
}
