// Package publish uploads committed output tables to S3 and fetches them back.
// The AWS library uses environment variables to configure itself.
package publish

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/dustin/go-humanize"
	"github.com/rotblauer/trajd/catz"
	"github.com/rotblauer/trajd/params"
)

var ErrNotConfigured = errors.New("s3 not configured")

const urlScheme = "s3://"

// Key is the object key for a committed file of a run.
func Key(cfg *params.S3Config, runID, filePath string) string {
	return path.Join(cfg.Prefix, runID, filepath.Base(filePath))
}

// ParseURL splits s3://bucket/key. It reports false for anything else.
func ParseURL(s string) (bucket, key string, ok bool) {
	if !strings.HasPrefix(s, urlScheme) {
		return "", "", false
	}
	bucket, key, ok = strings.Cut(strings.TrimPrefix(s, urlScheme), "/")
	if !ok || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

func contentType(p string) string {
	if catz.IsGZ(p) {
		return "application/gzip"
	}
	return "text/csv"
}

// Upload puts each file under Key(cfg, runID, file), each with its own timeout.
// It stops at the first failure; local files are never touched.
func Upload(ctx context.Context, cfg *params.S3Config, runID string, files ...string) ([]string, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}

	// All clients require a Session. The Session provides the client with
	// shared configuration such as region, endpoint, and credentials.
	sess := session.Must(session.NewSession())
	svc := s3.New(sess)

	keys := make([]string, 0, len(files))
	for _, f := range files {
		key := Key(cfg, runID, f)
		if err := putFile(ctx, svc, cfg, key, f); err != nil {
			return keys, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func putFile(ctx context.Context, svc *s3.S3, cfg *params.S3Config, key, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return err
	}

	// Abort the upload if it takes more than the configured timeout.
	var cancelFn func()
	if cfg.Timeout > 0 {
		ctx, cancelFn = context.WithTimeout(ctx, cfg.Timeout)
		defer cancelFn()
	}

	_, err = svc.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(cfg.Bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentType:   aws.String(contentType(name)),
		ContentLength: aws.Int64(fi.Size()),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == request.CanceledErrorCode {
			// The SDK returns CanceledErrorCode when the request or retry delay was canceled by the context.
			slog.Error("AWS S3 upload canceled", "key", key, "error", err)
		} else {
			slog.Error("Failed to upload object", "key", key, "error", err)
		}
		return fmt.Errorf("upload %s: %w", name, err)
	}
	slog.Info("Uploaded to AWS S3", "bucket", cfg.Bucket, "key", key, "size", humanize.Bytes(uint64(fi.Size())))
	return nil
}

// Download writes the object at bucket/key to w.
func Download(ctx context.Context, w io.WriterAt, bucket, key string) (int64, error) {
	sess := session.Must(session.NewSession())
	downloader := s3manager.NewDownloader(sess)

	slog.Info("Downloading from S3", "bucket", bucket, "key", key)
	n, err := downloader.DownloadWithContext(ctx, w, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return n, fmt.Errorf("failed to download S3 file, %w", err)
	}
	return n, nil
}
