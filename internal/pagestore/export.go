package pagestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ExportConfig configures the S3-compatible publish target.
type ExportConfig struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// ExportStore publishes finished pages to an S3-compatible bucket so
// they can be served or downloaded without touching the primary store.
// Each page occupies a <pageID>/ prefix holding page.json and index.html.
type ExportStore struct {
	client     *minio.Client
	bucketName string
	region     string
	initOnce   sync.Once
	initErr    error
}

func NewExportStore(cfg ExportConfig) (*ExportStore, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("export endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("export access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("export bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init export client: %w", err)
	}

	return &ExportStore{
		client:     client,
		bucketName: bucket,
		region:     region,
	}, nil
}

func (s *ExportStore) ensureBucket(ctx context.Context) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("export store is nil")
	}
	s.initOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucketName)
		if err != nil {
			s.initErr = err
			return
		}
		if exists {
			return
		}
		s.initErr = s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{Region: s.region})
	})
	return s.initErr
}

// Publish uploads the page JSON and a rendered HTML document for one
// record. Re-publishing the same page overwrites both objects.
func (s *ExportStore) Publish(ctx context.Context, rec Record) error {
	if s == nil {
		return fmt.Errorf("export store is nil")
	}
	rec = normalizeRecord(rec)
	if rec.PageID == "" {
		return fmt.Errorf("page id is required")
	}
	if err := s.ensureBucket(ctx); err != nil {
		return fmt.Errorf("ensure bucket: %w", err)
	}

	pageJSON, err := json.MarshalIndent(rec.Page, "", "  ")
	if err != nil {
		return err
	}
	if err := s.putObject(ctx, exportKey(rec.PageID, "page.json"), pageJSON, "application/json"); err != nil {
		return err
	}

	html, err := RenderHTML(rec)
	if err != nil {
		return err
	}
	return s.putObject(ctx, exportKey(rec.PageID, "index.html"), html, "text/html; charset=utf-8")
}

// Get fetches one published object, e.g. "index.html".
func (s *ExportStore) Get(ctx context.Context, pageID, name string) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("export store is nil")
	}
	if strings.TrimSpace(pageID) == "" || strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("page id and object name are required")
	}
	if err := s.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("ensure bucket: %w", err)
	}

	obj, err := s.client.GetObject(ctx, s.bucketName, exportKey(pageID, name), minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.Code == "NoSuchBucket" {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// List returns the object names published under one page.
func (s *ExportStore) List(ctx context.Context, pageID string) ([]string, error) {
	if s == nil {
		return nil, fmt.Errorf("export store is nil")
	}
	id := strings.TrimSpace(pageID)
	if id == "" {
		return nil, fmt.Errorf("page id is required")
	}
	if err := s.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("ensure bucket: %w", err)
	}

	prefix := id + "/"
	names := make([]string, 0, 8)
	for obj := range s.client.ListObjects(ctx, s.bucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		if obj.Key == "" {
			continue
		}
		names = append(names, strings.TrimPrefix(obj.Key, prefix))
	}
	sort.Strings(names)
	return names, nil
}

// PublishURL returns a presigned link to the published HTML, valid for
// one hour.
func (s *ExportStore) PublishURL(ctx context.Context, pageID string) (string, error) {
	if s == nil || s.client == nil {
		return "", fmt.Errorf("export store is nil")
	}
	u, err := s.client.PresignedGetObject(ctx, s.bucketName, exportKey(pageID, "index.html"), time.Hour, nil)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func (s *ExportStore) putObject(ctx context.Context, key string, content []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucketName, key, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func exportKey(pageID, name string) string {
	return strings.TrimSpace(pageID) + "/" + strings.TrimLeft(strings.TrimSpace(name), "/")
}
