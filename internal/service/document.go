package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"docrepo/internal/model"
	"docrepo/internal/storage"
)

var (
	ErrFileRequired    = errors.New("file is required")
	ErrInvalidFilename = errors.New("invalid filename")
	ErrNotFound        = errors.New("document not found")
)

// DocumentService defines the use cases for the document repository.
// Every operation validates section and type before touching storage and returns
// model.ErrInvalidFolder when they are outside the fixed sets.
type DocumentService interface {
	// Bootstrap creates the folder for every section/type pair. Failures are logged and
	// returned joined; the caller decides whether to continue.
	Bootstrap(ctx context.Context) error

	// Upload stores r as "<epoch-millis>-<originalFilename>" in the section/type folder.
	Upload(ctx context.Context, section, docType string, r io.Reader, originalFilename, contentType string, size int64) (*model.StoredFile, error)

	// List re-scans the folder. A folder that does not exist yet is reported as empty.
	List(ctx context.Context, section, docType string) ([]model.FileInfo, error)

	// Download opens a stored file by the exact name returned from List.
	// The caller must close the reader.
	Download(ctx context.Context, section, docType, filename string) (io.ReadCloser, *model.FileInfo, error)
}

// Option customizes a documentService.
type Option func(*documentService)

// WithClock overrides the ingestion clock used for stored names.
func WithClock(now func() time.Time) Option {
	return func(s *documentService) { s.now = now }
}

// WithMetrics records accepted uploads.
func WithMetrics(m *Metrics) Option {
	return func(s *documentService) { s.metrics = m }
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store   storage.Storage
	log     logrus.FieldLogger
	tracer  trace.Tracer
	metrics *Metrics
	now     func() time.Time
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, log logrus.FieldLogger, opts ...Option) DocumentService {
	s := &documentService{
		store:  store,
		log:    log,
		tracer: otel.Tracer("docrepo/internal/service"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *documentService) Bootstrap(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "DocumentService.Bootstrap")
	defer span.End()

	var errs []error
	for _, f := range model.Folders() {
		if err := s.store.EnsureDir(ctx, f.Key()); err != nil {
			s.log.WithFields(logrus.Fields{
				"section": f.Category,
				"type":    f.Type,
				"error":   err.Error(),
			}).Warn("storage_folder_unavailable")
			errs = append(errs, fmt.Errorf("ensure %s: %w", f.Key(), err))
			continue
		}
		s.log.WithFields(logrus.Fields{"section": f.Category, "type": f.Type}).Debug("storage_folder_ready")
	}
	if err := errors.Join(errs...); err != nil {
		span.SetStatus(codes.Error, "bootstrap incomplete")
		return err
	}
	return nil
}

func (s *documentService) Upload(ctx context.Context, section, docType string, r io.Reader, originalFilename, contentType string, size int64) (*model.StoredFile, error) {
	folder, err := model.ParseFolder(section, docType)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrFileRequired
	}
	name, err := cleanOriginalName(originalFilename)
	if err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "DocumentService.Upload", trace.WithAttributes(
		attribute.String("docrepo.section", string(folder.Category)),
		attribute.String("docrepo.type", string(folder.Type)),
	))
	defer span.End()

	// The sandbox may have wiped the tree since start-up.
	if err := s.store.EnsureDir(ctx, folder.Key()); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("prepare folder: %w", err)
	}

	ingested := s.now()
	stored := strconv.FormatInt(ingested.UnixMilli(), 10) + "-" + name
	key := folder.ObjectKey(stored)

	info, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	createdAt := info.CreatedAt
	if createdAt.IsZero() {
		createdAt = ingested.UTC()
	}
	s.metrics.observeUpload(folder, info.Size)
	s.log.WithFields(logrus.Fields{
		"section": folder.Category,
		"type":    folder.Type,
		"name":    stored,
		"size":    info.Size,
	}).Info("document_uploaded")

	return &model.StoredFile{
		Name:         stored,
		OriginalName: name,
		Section:      folder.Category,
		Type:         folder.Type,
		Size:         info.Size,
		MimeType:     contentType,
		Path:         key,
		CreatedAt:    createdAt,
	}, nil
}

func (s *documentService) List(ctx context.Context, section, docType string) ([]model.FileInfo, error) {
	folder, err := model.ParseFolder(section, docType)
	if err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "DocumentService.List", trace.WithAttributes(
		attribute.String("docrepo.section", string(folder.Category)),
		attribute.String("docrepo.type", string(folder.Type)),
	))
	defer span.End()

	objs, err := s.store.List(ctx, folder.Key())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.log.WithFields(logrus.Fields{
				"section": folder.Category,
				"type":    folder.Type,
			}).Warn("storage_folder_missing_listed_empty")
			return []model.FileInfo{}, nil
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("list storage: %w", err)
	}

	out := make([]model.FileInfo, 0, len(objs))
	for _, o := range objs {
		out = append(out, model.FileInfo{
			Name:      o.Name(),
			Size:      o.Size,
			CreatedAt: o.CreatedAt,
		})
	}
	span.SetAttributes(attribute.Int("docrepo.files", len(out)))
	return out, nil
}

func (s *documentService) Download(ctx context.Context, section, docType, filename string) (io.ReadCloser, *model.FileInfo, error) {
	folder, err := model.ParseFolder(section, docType)
	if err != nil {
		return nil, nil, err
	}
	if err := validateStoredName(filename); err != nil {
		return nil, nil, err
	}

	ctx, span := s.tracer.Start(ctx, "DocumentService.Download", trace.WithAttributes(
		attribute.String("docrepo.section", string(folder.Category)),
		attribute.String("docrepo.type", string(folder.Type)),
	))
	defer span.End()

	rc, info, err := s.store.Get(ctx, folder.ObjectKey(filename))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, fmt.Errorf("open from storage: %w", err)
	}
	return rc, &model.FileInfo{
		Name:      filename,
		Size:      info.Size,
		CreatedAt: info.CreatedAt,
	}, nil
}

// cleanOriginalName keeps only the base name a client sent; browsers on Windows may
// include the full path.
func cleanOriginalName(name string) (string, error) {
	name = strings.ReplaceAll(name, `\`, "/")
	name = path.Base(strings.TrimSpace(name))
	if err := validateStoredName(name); err != nil {
		return "", err
	}
	return name, nil
}

// validateStoredName rejects anything that could leave the folder: separators,
// parent segments and NUL bytes.
func validateStoredName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, "/\\\x00") {
		return ErrInvalidFilename
	}
	return nil
}
