package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"lessoncast/config"
)

// StoreConfig configures the S3-backed media store. Values fall back to the
// standard AWS config/credential chain.
type StoreConfig struct {
	Region string
	// Bucket holds narration audio and alignment documents.
	Bucket string
	// Prefix namespaces this deployment's objects, e.g. "narration".
	Prefix string
	// PublicBaseURL is the URL prefix handed to players, e.g. a CDN origin.
	// Empty derives the standard S3 URL.
	PublicBaseURL string
	// UsePathStyle forces path-style addressing for S3-compatible providers.
	UsePathStyle bool
}

// Store uploads narration artifacts and produces the URLs the playback side
// consumes. It wraps the AWS SDK v2 client behind a narrow surface.
type Store struct {
	client *s3.Client
	cfg    StoreConfig
}

// NewStoreFromEnv builds a Store from MEDIA_BUCKET, MEDIA_PREFIX,
// MEDIA_PUBLIC_URL and AWS_REGION.
func NewStoreFromEnv(ctx context.Context) (*Store, error) {
	bucket := os.Getenv("MEDIA_BUCKET")
	if bucket == "" {
		return nil, errors.New("MEDIA_BUCKET is not set")
	}
	return NewStore(ctx, StoreConfig{
		Region:        os.Getenv("AWS_REGION"),
		Bucket:        bucket,
		Prefix:        os.Getenv("MEDIA_PREFIX"),
		PublicBaseURL: os.Getenv("MEDIA_PUBLIC_URL"),
	})
}

// NewStore creates a Store using the default AWS configuration chain.
func NewStore(ctx context.Context, cfg StoreConfig) (*Store, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
	})
	return &Store{client: client, cfg: cfg}, nil
}

// AudioKey is the object key for a clip's narration audio.
func (s *Store) AudioKey(clipID string) string {
	return s.withPrefix(clipID + ".mp3")
}

// TimestampsKey is the object key for a clip's alignment document.
func (s *Store) TimestampsKey(clipID string) string {
	return s.withPrefix(clipID + ".timestamps.json")
}

func (s *Store) withPrefix(name string) string {
	if s.cfg.Prefix == "" {
		return name
	}
	return strings.TrimSuffix(s.cfg.Prefix, "/") + "/" + name
}

// PublicURL is the player-facing URL for an object key.
func (s *Store) PublicURL(key string) string {
	if s.cfg.PublicBaseURL != "" {
		return strings.TrimSuffix(s.cfg.PublicBaseURL, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.cfg.Bucket, key)
}

// PutAudio uploads narration audio and returns its public URL.
func (s *Store) PutAudio(ctx context.Context, clipID string, audio []byte) (string, error) {
	key := s.AudioKey(clipID)
	if err := s.put(ctx, key, audio, config.AudioContentType); err != nil {
		return "", fmt.Errorf("failed to upload audio for %s: %w", clipID, err)
	}
	return s.PublicURL(key), nil
}

// PutTimestamps uploads an alignment document and returns its public URL.
func (s *Store) PutTimestamps(ctx context.Context, clipID string, doc []byte) (string, error) {
	key := s.TimestampsKey(clipID)
	if err := s.put(ctx, key, doc, config.TimestampsContentType); err != nil {
		return "", fmt.Errorf("failed to upload timestamps for %s: %w", clipID, err)
	}
	return s.PublicURL(key), nil
}

func (s *Store) put(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.cfg.Bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
		ACL:          s3types.ObjectCannedACLPublicRead,
	})
	return err
}

// Get fetches an object's streaming body. Caller must Close it.
func (s *Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

// Delete removes a clip's artifacts; missing objects are not an error.
func (s *Store) Delete(ctx context.Context, clipID string) error {
	for _, key := range []string{s.AudioKey(clipID), s.TimestampsKey(clipID)} {
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.cfg.Bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Exists reports whether an object exists (false on 404/NotFound).
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == 404 {
		return false, nil
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound" {
		return false, nil
	}
	return false, err
}
