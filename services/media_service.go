package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	fig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/nfnt/resize"

	"github.com/dresslink/dresslink/config"
	apiError "github.com/dresslink/dresslink/errors"
	"github.com/dresslink/dresslink/models"
)

const MaxImageFileSize = 10 * 1024 * 1024 // 10 MB

type MediaService interface {
	UploadImage(userID uint, fileHeader *multipart.FileHeader) (*models.UploadResult, *apiError.Error)
}

type mediaService struct {
	Config *config.Config
}

func NewMediaService(conf *config.Config) MediaService {
	return &mediaService{Config: conf}
}

// UploadImage stores the original image plus a feed crop and a thumbnail on S3
// and returns their public URLs.
func (m *mediaService) UploadImage(userID uint, fileHeader *multipart.FileHeader) (*models.UploadResult, *apiError.Error) {
	if fileHeader.Size > MaxImageFileSize {
		return nil, apiError.New("image file size exceeds the maximum allowed size", http.StatusBadRequest)
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("UploadImage open error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		log.Printf("UploadImage read error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	contentType := http.DetectContentType(fileBytes)
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png":
	default:
		return nil, apiError.New(fmt.Sprintf("unsupported file type: %s", contentType), http.StatusBadRequest)
	}

	img, _, err := image.Decode(bytes.NewReader(fileBytes))
	if err != nil {
		return nil, apiError.New("unable to decode image", http.StatusBadRequest)
	}

	feedImg := imaging.Fill(img, 1080, 1080, imaging.Center, imaging.Lanczos)
	thumbnailImg := resize.Resize(200, 0, img, resize.Lanczos3)

	client, apiErr := m.s3Client()
	if apiErr != nil {
		return nil, apiErr
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	ext := filepath.Ext(fileHeader.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	base := fmt.Sprintf("%d_%s", userID, uuid.New())

	originalURL, err := m.putObject(ctx, client, "media/fullsize/"+base+ext, fileBytes, contentType)
	if err != nil {
		log.Printf("UploadImage original put error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	feedURL, err := m.putJPEG(ctx, client, "media/feed/"+base+".jpg", feedImg)
	if err != nil {
		log.Printf("UploadImage feed put error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	thumbnailURL, err := m.putJPEG(ctx, client, "media/thumbnail/"+base+".jpg", thumbnailImg)
	if err != nil {
		log.Printf("UploadImage thumbnail put error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return &models.UploadResult{
		URL:          originalURL,
		FeedURL:      feedURL,
		ThumbnailURL: thumbnailURL,
	}, nil
}

func (m *mediaService) s3Client() (*s3.Client, *apiError.Error) {
	if m.Config.AwsBucket == "" {
		return nil, apiError.New("media storage is not configured", http.StatusServiceUnavailable)
	}
	cfg, err := fig.LoadDefaultConfig(context.TODO(),
		fig.WithRegion(m.Config.AwsRegion),
		fig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(m.Config.AwsAccessKeyID, m.Config.AwsSecretAccessKey, ""),
		),
	)
	if err != nil {
		log.Printf("unable to load AWS config: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return s3.NewFromConfig(cfg), nil
}

func (m *mediaService) putJPEG(ctx context.Context, client *s3.Client, key string, img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return m.putObject(ctx, client, key, buf.Bytes(), "image/jpeg")
}

func (m *mediaService) putObject(ctx context.Context, client *s3.Client, key string, body []byte, contentType string) (string, error) {
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.Config.AwsBucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ACL:         "public-read",
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.Config.AwsBucket, m.Config.AwsRegion, key), nil
}
