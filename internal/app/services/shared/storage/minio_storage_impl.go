package storage

import (
	"bytes"
	"context"
	"io"
	"photodoc-service/internal/app/contracts"
	"photodoc-service/internal/pkg/exceptions"

	"github.com/minio/minio-go/v7"
)

// minioStorage keeps attachment bytes in an object bucket. Locators are
// object names.
type minioStorage struct {
	minioClient *minio.Client
	bucketName  string
}

func NewMinioStorage(minioClient *minio.Client, bucketName string) contracts.AttachmentStorage {
	return &minioStorage{
		minioClient: minioClient,
		bucketName:  bucketName,
	}
}

func (m *minioStorage) Read(ctx context.Context, locator string) ([]byte, error) {
	object, err := m.minioClient.GetObject(ctx, m.bucketName, locator, minio.GetObjectOptions{})
	if err != nil {
		return nil, exceptions.ErrMinioGetObject(err, m.bucketName)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, exceptions.ErrMinioGetObject(err, m.bucketName)
	}
	return data, nil
}

func (m *minioStorage) Write(ctx context.Context, name string, contentType string, data []byte) (string, error) {
	_, err := m.minioClient.PutObject(
		ctx,
		m.bucketName,
		name,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{
			ContentType: contentType,
		},
	)
	if err != nil {
		return "", exceptions.ErrMinioCreateObject(err, m.bucketName)
	}

	return name, nil
}
