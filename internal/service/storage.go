package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/yumcart/backend/config"
)

var unsafePathChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// StorageService handles recipe image objects in S3: temporary uploads under
// recipeDrafts/, the move to permanent storage under recipeImages/, and
// deletion.
type StorageService struct {
	s3Config *config.S3Config
}

func NewStorageService(s3Config *config.S3Config) *StorageService {
	return &StorageService{s3Config: s3Config}
}

// UploadDraftImage stores an uploaded image under the per-user, per-draft
// temporary path and returns the object key plus a time-limited URL.
func (s *StorageService) UploadDraftImage(ctx context.Context, userID, draftID, fileName, contentType string, data []byte, urlTTL time.Duration) (string, string, error) {
	key := fmt.Sprintf("recipeDrafts/%s/%s-%s", userID, draftID, fileName)

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload draft image: %w", err)
	}

	url, err := s.s3Config.GeneratePresignedURL(ctx, key, urlTTL)
	if err != nil {
		return "", "", fmt.Errorf("failed to presign draft image: %w", err)
	}

	log.Printf("[StorageService] Uploaded draft image %s", key)
	return key, url, nil
}

// PromoteImage copies a draft image to its permanent location and returns
// the new object key and public URL. The draft object is left in place for
// the caller's best-effort cleanup.
func (s *StorageService) PromoteImage(ctx context.Context, draftKey, userID, recipeName string) (string, string, error) {
	finalKey := fmt.Sprintf("recipeImages/%s/%s-%s",
		userID, uuid.New().String(), unsafePathChars.ReplaceAllString(recipeName, "_"))

	_, err := s.s3Config.Client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(s.s3Config.BucketName),
		CopySource: aws.String(s.s3Config.BucketName + "/" + draftKey),
		Key:        aws.String(finalKey),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to copy image to permanent storage: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, finalKey)
	log.Printf("[StorageService] Promoted image %s to %s", draftKey, finalKey)

	return finalKey, publicURL, nil
}

// DeleteImage removes an object by key.
func (s *StorageService) DeleteImage(ctx context.Context, key string) error {
	_, err := s.s3Config.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.s3Config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete image %s: %w", key, err)
	}
	return nil
}
