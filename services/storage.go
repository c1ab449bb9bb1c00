package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"techforge_app_go/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// LeadExportPrefix is where lead workbooks are stored
const LeadExportPrefix = "exports/leads/"

// ErrExportNotFound is returned for a key with no stored object
var ErrExportNotFound = errors.New("export not found")

// ExportStore keeps generated lead workbooks
type ExportStore interface {
	// Put stores size bytes from body under key
	Put(ctx context.Context, key string, body io.Reader, size int64) (*StorageResult, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// List returns the objects under prefix, newest first
	List(ctx context.Context, prefix string) ([]ExportObject, error)
	Remove(ctx context.Context, key string) error
	// Link returns a download URL for key, or "" when the store has none
	Link(ctx context.Context, key string) string
	Name() string
}

// StorageResult describes a stored workbook
type StorageResult struct {
	Key      string
	FileName string
	FileSize int64
	MimeType string
	// URL is empty when the object is only reachable through the admin API
	URL string
}

// ExportObject is one listed workbook
type ExportObject struct {
	Key      string    `json:"key"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// Storage is the global export store
var Storage ExportStore

// InitializeStorage picks R2 when it is fully configured and reachable, the
// local export directory otherwise
func InitializeStorage(cfg *config.Config) {
	local := func(reason string) {
		Storage = NewLocalStorage(cfg.UploadDir)
		log.Printf("Export storage: local filesystem (%s, %s)", cfg.UploadDir, reason)
	}

	if cfg.R2AccountID == "" || cfg.R2AccessKeyID == "" || cfg.R2SecretAccessKey == "" || cfg.R2BucketName == "" {
		local("R2 not configured")
		return
	}

	r2, err := NewR2Storage(cfg)
	if err != nil {
		log.Printf("[WARNING] Failed to initialize R2 storage: %v", err)
		local("R2 fallback")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := r2.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(r2.bucket)}); err != nil {
		log.Printf("[WARNING] R2 bucket check failed: %v", err)
		local("R2 fallback")
		return
	}

	Storage = r2
	log.Printf("Export storage: Cloudflare R2 (bucket %s)", cfg.R2BucketName)
}

func contentTypeFor(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".xlsx":
		return XLSXContentType
	case ".csv":
		return "text/csv"
	case ".json":
		return "application/json"
	}
	return "application/octet-stream"
}

// R2Storage stores exports in a Cloudflare R2 bucket through the S3 API
type R2Storage struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	publicURL string
}

// NewR2Storage creates the R2 client for cfg's account
func NewR2Storage(cfg *config.Config) (*R2Storage, error) {
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID)
	creds := credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, "")

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(creds),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &R2Storage{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.R2BucketName,
		publicURL: strings.TrimSuffix(cfg.R2PublicURL, "/"),
	}, nil
}

func (r *R2Storage) Name() string { return "r2:" + r.bucket }

func (r *R2Storage) Put(ctx context.Context, key string, body io.Reader, size int64) (*StorageResult, error) {
	contentType := contentTypeFor(key)
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to R2: %w", err)
	}

	return &StorageResult{
		Key:      key,
		FileName: path.Base(key),
		FileSize: size,
		MimeType: contentType,
		URL:      r.Link(ctx, key),
	}, nil
}

func (r *R2Storage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var apiErr interface{ ErrorCode() string }
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey" {
			return nil, ErrExportNotFound
		}
		return nil, fmt.Errorf("failed to get object from R2: %w", err)
	}
	return out.Body, nil
}

func (r *R2Storage) List(ctx context.Context, prefix string) ([]ExportObject, error) {
	var objects []ExportObject
	paginator := s3.NewListObjectsV2Paginator(r.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(r.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list R2 objects: %w", err)
		}
		for _, obj := range page.Contents {
			objects = append(objects, ExportObject{
				Key:      aws.ToString(obj.Key),
				Size:     aws.ToInt64(obj.Size),
				Modified: aws.ToTime(obj.LastModified),
			})
		}
	}
	sortNewestFirst(objects)
	return objects, nil
}

func (r *R2Storage) Remove(ctx context.Context, key string) error {
	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from R2: %w", err)
	}
	return nil
}

// Link returns the public URL when the bucket has one, a day-long presigned
// URL otherwise
func (r *R2Storage) Link(ctx context.Context, key string) string {
	if r.publicURL != "" {
		return r.publicURL + "/" + key
	}
	req, err := r.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(24*time.Hour))
	if err != nil {
		log.Printf("[WARNING] Failed to presign %s: %v", key, err)
		return ""
	}
	return req.URL
}

// LocalStorage stores exports under a directory that is not served
// publicly; they are downloaded through the admin API
type LocalStorage struct {
	baseDir string
}

func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir}
}

func (l *LocalStorage) Name() string { return "local:" + l.baseDir }

// resolve maps a key to a path inside baseDir, rejecting keys that escape it
func (l *LocalStorage) resolve(key string) (string, error) {
	clean := path.Clean("/" + key)
	if clean == "/" || strings.Contains(key, "\\") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(l.baseDir, filepath.FromSlash(clean)), nil
}

func (l *LocalStorage) Put(ctx context.Context, key string, body io.Reader, size int64) (*StorageResult, error) {
	fullPath, err := l.resolve(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// Write next to the target and rename so readers never see a partial file
	tmp, err := os.CreateTemp(filepath.Dir(fullPath), ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	written, copyErr := io.Copy(tmp, body)
	closeErr := tmp.Close()
	if copyErr != nil || closeErr != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to save file: %w", errors.Join(copyErr, closeErr))
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &StorageResult{
		Key:      key,
		FileName: path.Base(key),
		FileSize: written,
		MimeType: contentTypeFor(key),
	}, nil
}

func (l *LocalStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	fullPath, err := l.resolve(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(fullPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrExportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

func (l *LocalStorage) List(ctx context.Context, prefix string) ([]ExportObject, error) {
	var objects []ExportObject
	err := filepath.WalkDir(l.baseDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".upload-") {
			return nil
		}
		rel, err := filepath.Rel(l.baseDir, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		objects = append(objects, ExportObject{Key: key, Size: info.Size(), Modified: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	sortNewestFirst(objects)
	return objects, nil
}

func (l *LocalStorage) Remove(ctx context.Context, key string) error {
	fullPath, err := l.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Link is empty: local exports are only reachable through the admin API
func (l *LocalStorage) Link(ctx context.Context, key string) string {
	return ""
}

func sortNewestFirst(objects []ExportObject) {
	sort.Slice(objects, func(i, j int) bool {
		if objects[i].Modified.Equal(objects[j].Modified) {
			return objects[i].Key > objects[j].Key
		}
		return objects[i].Modified.After(objects[j].Modified)
	})
}

// PruneExports removes lead exports last modified before cutoff and returns
// how many were removed
func PruneExports(ctx context.Context, store ExportStore, cutoff time.Time) (int, error) {
	objects, err := store.List(ctx, LeadExportPrefix)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, obj := range objects {
		if !obj.Modified.Before(cutoff) {
			continue
		}
		if err := store.Remove(ctx, obj.Key); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// GenerateStorageKey creates a unique key under prefix keeping the
// extension of filename
func GenerateStorageKey(prefix string, filename string) string {
	name := fmt.Sprintf("%s_%d%s", uuid.New().String(), time.Now().Unix(), path.Ext(filename))
	return path.Join(prefix, name)
}

// GenerateLeadExportKey creates the storage key for a lead export covering
// the day that starts at from
func GenerateLeadExportKey(from time.Time) string {
	return fmt.Sprintf("%s%s/leads_%s.xlsx", LeadExportPrefix, from.Format("2006/01"), from.Format("2006-01-02"))
}
