package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"plantstore/internal/config"
	"plantstore/internal/domain"
)

// ImageRepository wraps the remote object store holding plant images.
// Upload is fail-fast; Delete is advisory and its errors must be
// treated as non-fatal by callers.
type ImageRepository interface {
	Upload(ctx context.Context, localPath, folder string) (string, error)
	Delete(ctx context.Context, key string) error
}

// keyPattern extracts the object key from a durable image URL. The
// stored key includes the file extension, so the extracted segment
// must keep it for the two to round-trip. URLs that do not match
// carry nothing to delete.
var keyPattern = regexp.MustCompile(`plants/([^/?]+)`)

// KeyFromURL derives the object key from a previously returned URL.
// Returns "" when the URL does not reference the plants folder.
func KeyFromURL(rawURL string) string {
	m := keyPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return ""
	}
	return "plants/" + m[1]
}

type imageRepository struct {
	client *s3.Client
	cfg    *config.S3Config
	log    *zap.Logger
}

func NewImageRepository(cfg *config.S3Config, log *zap.Logger) (ImageRepository, error) {
	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if cfg.Endpoint != "" {
			return aws.Endpoint{
				URL:               cfg.Endpoint,
				HostnameImmutable: true,
				Source:            aws.EndpointSourceCustom,
			}, nil
		}
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithEndpointResolverWithOptions(customResolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	repo := &imageRepository{
		client: client,
		cfg:    cfg,
		log:    log,
	}

	if err := repo.ensureBucketExists(context.Background()); err != nil {
		log.Warn("Failed to ensure bucket exists", zap.Error(err))
	}

	return repo, nil
}

func (r *imageRepository) ensureBucketExists(ctx context.Context) error {
	_, err := r.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(r.cfg.BucketName),
	})
	if err == nil {
		return nil
	}

	r.log.Info("Creating bucket", zap.String("bucket", r.cfg.BucketName))

	_, err = r.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(r.cfg.BucketName),
		CreateBucketConfiguration: &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(r.cfg.Region),
		},
	})
	if err != nil {
		return err
	}

	// Give the store a moment to register the bucket.
	time.Sleep(1 * time.Second)

	return nil
}

// Upload transfers a local temp file to the given logical folder and
// returns its durable URL. The temp file is removed after a successful
// transfer, so the bytes never exist in two durable places.
func (r *imageRepository) Upload(ctx context.Context, localPath, folder string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %v", domain.ErrUpload, localPath, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("%w: stat %s: %v", domain.ErrUpload, localPath, err)
	}

	ext := strings.ToLower(filepath.Ext(localPath))
	key := folder + "/" + uuid.New().String() + ext

	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.cfg.BucketName),
		Key:           aws.String(key),
		Body:          file,
		ContentType:   aws.String(contentTypeForExt(ext)),
		ContentLength: aws.Int64(info.Size()),
	})
	if err != nil {
		r.log.Error("Failed to upload image",
			zap.String("key", key),
			zap.Error(err))
		return "", fmt.Errorf("%w: %v", domain.ErrUpload, err)
	}

	if err := os.Remove(localPath); err != nil {
		r.log.Warn("Failed to remove temp file",
			zap.String("path", localPath),
			zap.Error(err))
	}

	r.log.Info("Image uploaded",
		zap.String("key", key),
		zap.Int64("size", info.Size()))

	return r.objectURL(key), nil
}

// Delete removes an object by key. Callers treat failures as advisory.
func (r *imageRepository) Delete(ctx context.Context, key string) error {
	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.cfg.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		r.log.Error("Failed to delete image",
			zap.String("key", key),
			zap.Error(err))
		return err
	}

	r.log.Info("Image deleted", zap.String("key", key))
	return nil
}

func (r *imageRepository) objectURL(key string) string {
	if r.cfg.Endpoint != "" {
		return strings.TrimSuffix(r.cfg.Endpoint, "/") + "/" + r.cfg.BucketName + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", r.cfg.BucketName, r.cfg.Region, key)
}

func contentTypeForExt(ext string) string {
	switch ext {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
