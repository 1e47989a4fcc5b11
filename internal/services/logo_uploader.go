package services

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
	"github.com/rgriss/aimanifesto/config"
)

// LogoUploader stores tool logos in object storage and returns their
// public URLs
type LogoUploader interface {
	UploadLogo(reader io.Reader, filename string) (string, error)
}

// OSSLogoUploader uploads logos to Aliyun OSS using short-lived STS
// credentials
type OSSLogoUploader struct {
	config *config.Config
}

func NewOSSLogoUploader(cfg *config.Config) *OSSLogoUploader {
	return &OSSLogoUploader{config: cfg}
}

// UploadLogo streams one logo to the bucket under a collision-free key
// (logos/<year>/<month>/<uuid>.<ext>) and returns the public URL.
// A failed put is retried once with fresh STS credentials, which covers
// token expiry mid-request.
func (u *OSSLogoUploader) UploadLogo(reader io.Reader, filename string) (string, error) {
	// Logos are small; buffering keeps the body replayable for the retry
	body, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}

	creds, err := GetOSSTSToken()
	if err != nil {
		return "", fmt.Errorf("failed to get STS token: %v", err)
	}

	bucket, err := u.bucket(creds)
	if err != nil {
		return "", err
	}

	ext := ""
	if idx := strings.LastIndex(filename, "."); idx != -1 {
		ext = filename[idx:]
	}
	now := time.Now()
	objectKey := fmt.Sprintf("logos/%d/%02d/%s%s", now.Year(), now.Month(), uuid.New().String(), ext)

	if err := bucket.PutObject(objectKey, bytes.NewReader(body)); err != nil {
		// Retry once with a fresh token
		creds, tokenErr := GetOSSTSToken()
		if tokenErr != nil {
			return "", fmt.Errorf("upload failed: %v", err)
		}
		bucket, bucketErr := u.bucket(creds)
		if bucketErr != nil {
			return "", fmt.Errorf("upload failed: %v", err)
		}
		if err := bucket.PutObject(objectKey, bytes.NewReader(body)); err != nil {
			return "", fmt.Errorf("upload failed after retry: %v", err)
		}
	}

	return u.publicURL(objectKey), nil
}

func (u *OSSLogoUploader) bucket(creds *STSCredentials) (*oss.Bucket, error) {
	client, err := oss.New(
		u.config.OSSEndpoint,
		creds.AccessKeyId,
		creds.AccessKeySecret,
		oss.SecurityToken(creds.SecurityToken),
		oss.Timeout(60, 120),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OSS client: %v", err)
	}

	bucket, err := client.Bucket(u.config.OSSBucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket: %v", err)
	}
	return bucket, nil
}

func (u *OSSLogoUploader) publicURL(objectKey string) string {
	endpoint := u.config.OSSEndpoint
	scheme := "https"
	if idx := strings.Index(endpoint, "://"); idx != -1 {
		scheme = endpoint[:idx]
		endpoint = endpoint[idx+3:]
	}
	return fmt.Sprintf("%s://%s.%s/%s", scheme, u.config.OSSBucketName, endpoint, objectKey)
}
