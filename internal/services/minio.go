package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// UploadImage stores the file under a unique object key and returns the
// public URL. The caller validates the content type beforehand.
func UploadImage(client *minio.Client, bucket string, file *multipart.FileHeader) (string, string, error) {
	if client == nil {
		return "", "", fmt.Errorf("object storage is not configured")
	}

	f, err := file.Open()
	if err != nil {
		return "", "", err
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	objectName := fmt.Sprintf("products/%s%s", uuid.NewString(), ext)

	_, err = client.PutObject(context.Background(), bucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", "", err
	}

	url := fmt.Sprintf("%s/%s/%s", client.EndpointURL(), bucket, objectName)
	return url, objectName, nil
}
