package utils

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var s3Client *s3.Client

func InitS3() {
	s3Region := os.Getenv("S3_REGION")
	if s3Region == "" {
		s3Region = os.Getenv("AWS_REGION") // fallback
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(s3Region))
	if err != nil {
		log.Printf("Unable to load AWS config for S3, capture archive disabled: %v", err)
		return
	}

	s3Client = s3.NewFromConfig(cfg)
}

// ArchiveCaptureImage stores a captured JPEG under captures/ and returns the
// object key. It is a no-op when S3_BUCKET is not configured.
func ArchiveCaptureImage(userID uint, jpeg []byte) (string, error) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" || s3Client == nil {
		return "", nil
	}

	key := fmt.Sprintf("captures/%d-%d.jpg", userID, time.Now().UnixNano())

	_, err := s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(jpeg),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload capture to S3: %v", err)
	}
	return key, nil
}
