package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// FoodDetector turns a captured JPEG into a list of food names. The capture
// pipeline treats a detector error exactly like an empty list, so
// implementations do not need to soften failures themselves.
type FoodDetector interface {
	DetectFoods(ctx context.Context, jpeg []byte) ([]string, error)
}

// NewDetectorFromEnv picks the detector implementation: the YOLO
// microservice when DETECTOR_URL is set, AWS Rekognition otherwise.
func NewDetectorFromEnv() (FoodDetector, error) {
	if u := os.Getenv("DETECTOR_URL"); u != "" {
		return NewYOLODetector(u), nil
	}
	return NewRekognitionDetector()
}

// YOLODetector posts the image to the food detection microservice
// (multipart "image" field, {"foods": [...]} response).
type YOLODetector struct {
	baseURL string
	client  *http.Client
}

func NewYOLODetector(baseURL string) *YOLODetector {
	return &YOLODetector{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 20 * time.Second},
	}
}

func (d *YOLODetector) DetectFoods(ctx context.Context, jpeg []byte) ([]string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "photo.jpg")
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(jpeg); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/detect", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call food detector: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read detector response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("detector error %d: %s", resp.StatusCode, string(body))
	}

	var out struct {
		Foods []string `json:"foods"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to parse detector JSON: %w", err)
	}
	return out.Foods, nil
}

// RekognitionDetector labels the image with AWS Rekognition.
type RekognitionDetector struct {
	client *rekognition.Client
}

func NewRekognitionDetector() (*RekognitionDetector, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &RekognitionDetector{client: rekognition.NewFromConfig(cfg)}, nil
}

func (d *RekognitionDetector) DetectFoods(ctx context.Context, jpeg []byte) ([]string, error) {
	out, err := d.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: jpeg},
		MaxLabels:     aws.Int32(5),
		MinConfidence: aws.Float32(75),
	})
	if err != nil {
		return nil, err
	}

	var labels []string
	for _, l := range out.Labels {
		labels = append(labels, *l.Name)
	}
	return labels, nil
}
