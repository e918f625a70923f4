package assets

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"order-desk/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
)

// s3KeyPrefix mirrors the /upload/ marker so public URLs map onto object keys.
const s3KeyPrefix = "upload/"

// s3API is the subset of the S3 client used by the store.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

// S3Config holds the settings for the S3 image store.
type S3Config struct {
	Bucket string
	Region string
	// Endpoint overrides the AWS endpoint for S3-compatible services.
	Endpoint string
	// PublicURL is the base URL under which the bucket is served.
	PublicURL string
	Folder    string
}

// s3Store implements Store on top of an S3 bucket.
type s3Store struct {
	client    s3API
	bucket    string
	publicURL string
	folder    string
	logger    zerolog.Logger
}

// NewS3Store creates a new S3-backed image store.
func NewS3Store(ctx context.Context, cfg S3Config, logger zerolog.Logger) (Store, error) {
	logger = logger.With().Str("component", "s3-asset-store").Logger()

	// Load AWS configuration
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	logger.Info().
		Str("bucket", cfg.Bucket).
		Str("region", cfg.Region).
		Str("public_url", publicURL).
		Msg("S3 asset store initialised")

	return newS3Store(client, cfg.Bucket, publicURL, cfg.Folder, logger), nil
}

func newS3Store(client s3API, bucket, publicURL, folder string, logger zerolog.Logger) *s3Store {
	return &s3Store{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		folder:    folder,
		logger:    logger,
	}
}

// Upload puts the image under upload/<folder>/<uuid><ext> and returns its public URL.
func (s *s3Store) Upload(ctx context.Context, img *model.ImageUpload) (string, error) {
	ext, err := imageExtension(img)
	if err != nil {
		return "", err
	}

	id := newAssetID(s.folder)
	key := s3KeyPrefix + id + ext

	contentType := img.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(img.Data),
		ContentLength: aws.Int64(int64(len(img.Data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", key).
			Msg("failed to put object to S3")
		return "", fmt.Errorf("failed to put object to S3 (bucket=%s, key=%s): %w", s.bucket, key, err)
	}

	s.logger.Info().
		Str("bucket", s.bucket).
		Str("key", key).
		Int("bytes", len(img.Data)).
		Msg("image uploaded to S3")

	return s.publicURL + "/" + key, nil
}

// Delete removes every object stored for assetID, whatever its extension.
func (s *s3Store) Delete(ctx context.Context, assetID string) error {
	if err := checkAssetID(assetID); err != nil {
		return err
	}

	prefix := s3KeyPrefix + assetID + "."
	listed, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	if err != nil {
		return fmt.Errorf("failed to list objects in S3 (bucket=%s, prefix=%s): %w", s.bucket, prefix, err)
	}

	objects := make([]types.ObjectIdentifier, 0, len(listed.Contents))
	for _, obj := range listed.Contents {
		key := aws.ToString(obj.Key)
		// Guard against ids that are a prefix of a longer name containing a dot.
		if strings.Contains(strings.TrimPrefix(key, prefix), "/") {
			continue
		}
		objects = append(objects, types.ObjectIdentifier{Key: obj.Key})
	}

	if len(objects) == 0 {
		return fmt.Errorf("no S3 object found for asset %s", assetID)
	}

	out, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s.bucket),
		Delete: &types.Delete{Objects: objects, Quiet: aws.Bool(true)},
	})
	if err != nil {
		return fmt.Errorf("failed to delete objects from S3 (bucket=%s, asset=%s): %w", s.bucket, assetID, err)
	}
	if len(out.Errors) > 0 {
		return fmt.Errorf("failed to delete %d object(s) for asset %s: %s",
			len(out.Errors), assetID, aws.ToString(out.Errors[0].Message))
	}

	s.logger.Info().
		Str("bucket", s.bucket).
		Str("asset_id", assetID).
		Int("objects", len(objects)).
		Msg("image deleted from S3")

	return nil
}
