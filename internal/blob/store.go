package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/billmate/billmate/internal/config"
	"github.com/billmate/billmate/internal/entity"
)

var blobTracer = otel.Tracer("github.com/billmate/billmate/blob")

// ErrUnsupportedMediaType is returned when the declared content type is not
// on the allow-list.
var ErrUnsupportedMediaType = errors.New("unsupported media type")

// ErrPayloadTooLarge is returned when the upload exceeds the size ceiling.
var ErrPayloadTooLarge = errors.New("payload too large")

// Store persists uploaded bill images on the local filesystem and hands back
// reference metadata. At most one file is accepted per submission.
type Store struct {
	dir      string
	maxBytes int64
	allowed  map[string]struct{}
	logger   *zap.Logger
}

// Module provides the blob store to Fx.
var Module = fx.Provide(NewStore)

// NewStore builds a Store rooted at the configured upload directory,
// creating the directory if it is absent.
func NewStore(cfg config.Config, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	allowed := make(map[string]struct{}, len(cfg.Upload.AllowedTypes))
	for _, t := range cfg.Upload.AllowedTypes {
		allowed[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}

	return &Store{
		dir:      cfg.Upload.Dir,
		maxBytes: cfg.Upload.MaxBytes,
		allowed:  allowed,
		logger:   logger,
	}, nil
}

// Save validates and writes the uploaded file, returning attachment metadata.
// The generated name keeps the original extension and combines a millisecond
// timestamp with a random suffix so concurrent writers cannot collide.
func (s *Store) Save(ctx context.Context, file *multipart.FileHeader) (*entity.Attachment, error) {
	if file == nil {
		return nil, errors.New("nil file header")
	}

	_, span := blobTracer.Start(ctx, "BlobStore.Save", trace.WithAttributes(
		attribute.String("blob.filename", file.Filename),
		attribute.Int64("blob.size", file.Size),
	))
	defer span.End()

	mimetype := strings.ToLower(strings.TrimSpace(file.Header.Get("Content-Type")))
	if _, ok := s.allowed[mimetype]; !ok {
		span.SetStatus(codes.Error, "unsupported media type")
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mimetype)
	}

	if file.Size > s.maxBytes {
		span.SetStatus(codes.Error, "payload too large")
		return nil, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, file.Size)
	}

	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), filepath.Ext(file.Filename))
	dst := filepath.Join(s.dir, name)

	src, err := file.Open()
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("create blob: %w", err)
	}
	defer out.Close()

	written, err := io.Copy(out, src)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("write blob: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("bill upload stored",
			zap.String("filename", name),
			zap.Int64("size", written),
			zap.String("mimetype", mimetype),
		)
	}

	return &entity.Attachment{
		Filename: name,
		Path:     dst,
		Size:     written,
		Mimetype: mimetype,
	}, nil
}
