// Package service validates evidence uploads, stores their content and
// attaches the metadata to the owning person.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	em "legalcheck/internal/eligibility/models"
	pm "legalcheck/internal/person/models"
	"legalcheck/internal/platform/metrics"
	"legalcheck/internal/platform/tracer"
	id "legalcheck/pkg/domain"
	dErrors "legalcheck/pkg/domain-errors"
)

const (
	// MaxSizeBytes is the largest accepted upload.
	MaxSizeBytes = 10 << 20

	ContentTypePDF = "application/pdf"
	pdfExtension   = ".pdf"
)

type BlobStore interface {
	Put(ctx context.Context, key string, content []byte) error
	Delete(ctx context.Context, key string) error
}

// Persons checks ownership and records the document on the person.
type Persons interface {
	Get(ctx context.Context, owner id.UserID, personID id.PersonID) (*pm.Person, error)
	AttachDocument(ctx context.Context, owner id.UserID, personID id.PersonID, doc em.EvidenceDocument) (*pm.Person, error)
}

type Service struct {
	blobs   BlobStore
	persons Persons
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  tracer.Tracer
	clock   func() time.Time
	newID   func() id.DocumentID
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// WithIDGenerator fixes document IDs in tests.
func WithIDGenerator(gen func() id.DocumentID) Option {
	return func(s *Service) {
		s.newID = gen
	}
}

func New(blobs BlobStore, persons Persons, opts ...Option) *Service {
	if blobs == nil || persons == nil {
		panic("document service: blob store and persons are required")
	}
	s := &Service{
		blobs:   blobs,
		persons: persons,
		logger:  slog.Default(),
		tracer:  tracer.NewNoop(),
		clock:   time.Now,
		newID:   id.NewDocumentID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UploadCommand is one file plus its evidence metadata.
type UploadCommand struct {
	FileName string
	Content  []byte
	Type     em.EvidenceType
	IssuedAt *em.Date
	Notes    string
}

// Validate checks the file name and size before anything is stored.
func (c UploadCommand) Validate() error {
	if !strings.HasSuffix(strings.ToLower(strings.TrimSpace(c.FileName)), pdfExtension) {
		return dErrors.New(dErrors.CodeBadRequest, "only PDF documents are accepted")
	}
	if len(c.Content) == 0 || len(c.Content) > MaxSizeBytes {
		return dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("document size must be between 1 byte and %d bytes", MaxSizeBytes))
	}
	return nil
}

// StorageKey is the flat blob key of a person's document.
func StorageKey(personID id.PersonID, docID id.DocumentID) string {
	return fmt.Sprintf("persons_%s_docs_%s%s", personID, docID, pdfExtension)
}

// Upload stores the content and attaches its metadata. If attaching fails
// the stored blob is removed again.
func (s *Service) Upload(ctx context.Context, owner id.UserID, personID id.PersonID, cmd UploadCommand) (doc em.EvidenceDocument, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanUpload,
		tracer.String(tracer.AttrPersonID, personID.String()),
		tracer.String(tracer.AttrDocType, string(cmd.Type)),
		tracer.Int(tracer.AttrDocSize, len(cmd.Content)),
	)
	defer func() { span.End(err) }()

	if err := cmd.Validate(); err != nil {
		return em.EvidenceDocument{}, err
	}
	if _, err := s.persons.Get(ctx, owner, personID); err != nil {
		return em.EvidenceDocument{}, err
	}
	if cmd.Type == "" {
		cmd.Type = em.EvidenceUnknown
	}

	sum := sha256.Sum256(cmd.Content)
	docID := s.newID()
	doc = em.EvidenceDocument{
		ID:               docID,
		Type:             cmd.Type,
		OriginalFileName: filepath.Base(strings.TrimSpace(cmd.FileName)),
		ContentType:      ContentTypePDF,
		SizeBytes:        int64(len(cmd.Content)),
		StorageKey:       StorageKey(personID, docID),
		SHA256:           hex.EncodeToString(sum[:]),
		UploadedAt:       s.clock().UTC(),
		DocumentIssuedAt: cmd.IssuedAt,
		Notes:            strings.TrimSpace(cmd.Notes),
	}

	if err := s.blobs.Put(ctx, doc.StorageKey, cmd.Content); err != nil {
		s.logger.ErrorContext(ctx, "failed to store document", "error", err, "person_id", personID)
		return em.EvidenceDocument{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store document")
	}
	if _, err := s.persons.AttachDocument(ctx, owner, personID, doc); err != nil {
		if delErr := s.blobs.Delete(ctx, doc.StorageKey); delErr != nil {
			s.logger.WarnContext(ctx, "failed to remove orphaned document", "error", delErr, "storage_key", doc.StorageKey)
		}
		return em.EvidenceDocument{}, err
	}

	s.metrics.ObserveDocumentUploaded(string(doc.Type), doc.SizeBytes)
	s.logger.InfoContext(ctx, "document uploaded",
		"person_id", personID,
		"document_id", docID,
		"type", doc.Type,
		"size_bytes", doc.SizeBytes,
	)
	return doc, nil
}
