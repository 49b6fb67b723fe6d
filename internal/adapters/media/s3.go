package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	MaxImageBytes  = 10 << 20
	MaxImageWidth  = 1080
	MaxImageHeight = 1350
	jpegQuality    = 85
	postsFolder    = "posts"
	cacheControl   = "public, max-age=31536000, immutable"
	contentTypeJPG = "image/jpeg"
)

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

type Config struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	PublicURL       string
}

func (c Config) Enabled() bool {
	return c.Bucket != "" && c.AccessKeyID != "" && c.SecretAccessKey != "" && c.PublicURL != ""
}

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var _ domain.ImageUploader = (*S3Uploader)(nil)

// S3Uploader normalises post images to JPEG and stores them in an
// S3-compatible bucket.
type S3Uploader struct {
	client    objectPutter
	bucket    string
	publicURL string
}

func NewS3Uploader(ctx context.Context, cfg Config) (*S3Uploader, error) {
	if !cfg.Enabled() {
		return nil, errors.New("media: missing S3 configuration")
	}
	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("media: failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3Uploader(client, cfg.Bucket, cfg.PublicURL), nil
}

func newS3Uploader(client objectPutter, bucket, publicURL string) *S3Uploader {
	return &S3Uploader{client: client, bucket: bucket, publicURL: strings.TrimSuffix(publicURL, "/")}
}

func (u *S3Uploader) Upload(ctx context.Context, data []byte) (string, error) {
	if err := validateImage(data); err != nil {
		return "", err
	}

	jpegBytes, err := normalizeJPEG(data, MaxImageWidth, MaxImageHeight, jpegQuality)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s/%s.jpg", postsFolder, uuid.NewString())
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(u.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(jpegBytes),
		ContentType:  aws.String(contentTypeJPG),
		CacheControl: aws.String(cacheControl),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return fmt.Sprintf("%s/%s", u.publicURL, key), nil
}

func validateImage(data []byte) error {
	if len(data) == 0 {
		return domain.NewError(domain.KindValidation, "image is empty")
	}
	if len(data) > MaxImageBytes {
		return domain.Errorf(domain.KindValidation, "image exceeds %d MB", MaxImageBytes>>20)
	}
	if ct := http.DetectContentType(data[:min(len(data), 512)]); !allowedTypes[ct] {
		return domain.Errorf(domain.KindValidation, "unsupported image type %s", ct)
	}
	return nil
}

// normalizeJPEG shrinks the image to fit within width x height, keeping its
// aspect ratio, and re-encodes it as JPEG. Smaller images are not enlarged.
func normalizeJPEG(data []byte, width, height, quality int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, domain.WrapError(domain.KindValidation, fmt.Errorf("failed to decode image: %w", err))
	}

	resized := imaging.Fit(img, width, height, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// DisabledUploader rejects uploads when no bucket is configured.
type DisabledUploader struct{}

func (DisabledUploader) Upload(context.Context, []byte) (string, error) {
	return "", domain.NewError(domain.KindRemote, "image upload is not configured")
}
