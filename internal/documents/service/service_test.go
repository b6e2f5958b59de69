package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	em "legalcheck/internal/eligibility/models"
	pm "legalcheck/internal/person/models"
	personsvc "legalcheck/internal/person/service"
	"legalcheck/internal/person/store"
	"legalcheck/internal/platform/metrics"
	id "legalcheck/pkg/domain"
	dErrors "legalcheck/pkg/domain-errors"
)

type memoryBlobs struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func (b *memoryBlobs) Put(_ context.Context, key string, content []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.putErr != nil {
		return b.putErr
	}
	b.objects[key] = append([]byte(nil), content...)
	return nil
}

func (b *memoryBlobs) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, key)
	return nil
}

// failingAttach passes reads through and rejects every attach.
type failingAttach struct {
	Persons
}

func (failingAttach) AttachDocument(context.Context, id.UserID, id.PersonID, em.EvidenceDocument) (*pm.Person, error) {
	return nil, dErrors.New(dErrors.CodeInternal, "attach failed")
}

type ServiceSuite struct {
	suite.Suite
	blobs   *memoryBlobs
	persons *personsvc.Service
	metrics *metrics.Metrics
	service *Service
	owner   id.UserID
	person  *pm.Person
	docID   id.DocumentID
	now     time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.now = time.Date(2024, time.May, 2, 8, 0, 0, 0, time.UTC)
	s.blobs = &memoryBlobs{objects: map[string][]byte{}}
	s.persons = personsvc.New(store.NewInMemory())
	s.metrics = metrics.NewWithRegisterer(prometheus.NewRegistry())
	s.owner = id.NewUserID()
	s.docID = id.NewDocumentID()

	var err error
	s.person, err = s.persons.Create(context.Background(), s.owner, personsvc.CreateCommand{Name: "Amina", NationalityISO2: "SY"})
	s.Require().NoError(err)

	s.service = s.newService(s.persons)
}

func (s *ServiceSuite) newService(persons Persons) *Service {
	return New(s.blobs, persons,
		WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
		WithMetrics(s.metrics),
		WithClock(func() time.Time { return s.now }),
		WithIDGenerator(func() id.DocumentID { return s.docID }),
	)
}

func (s *ServiceSuite) TestUpload() {
	ctx := context.Background()
	doc, err := s.service.Upload(ctx, s.owner, s.person.ID, UploadCommand{
		FileName: "uploads/Immatrikulation.PDF",
		Content:  []byte("hello"),
		Type:     em.EvidenceMatriculationCertificate,
		Notes:    " winter term ",
	})
	s.Require().NoError(err)

	wantKey := "persons_" + s.person.ID.String() + "_docs_" + s.docID.String() + ".pdf"
	s.Equal(wantKey, doc.StorageKey)
	s.Equal(wantKey, StorageKey(s.person.ID, s.docID))
	s.Equal("2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", doc.SHA256)
	s.Equal("Immatrikulation.PDF", doc.OriginalFileName)
	s.Equal(ContentTypePDF, doc.ContentType)
	s.Equal(int64(5), doc.SizeBytes)
	s.Equal(s.now, doc.UploadedAt)
	s.Equal("winter term", doc.Notes)
	s.Equal([]byte("hello"), s.blobs.objects[wantKey])

	stored, err := s.persons.Get(ctx, s.owner, s.person.ID)
	s.Require().NoError(err)
	s.Require().Len(stored.Documents, 1)
	s.Equal(doc.ID, stored.Documents[0].ID)

	s.Equal(1.0, testutil.ToFloat64(s.metrics.DocumentsUploaded.WithLabelValues(string(em.EvidenceMatriculationCertificate))))
}

func (s *ServiceSuite) TestUploadDefaultsType() {
	doc, err := s.service.Upload(context.Background(), s.owner, s.person.ID, UploadCommand{FileName: "a.pdf", Content: []byte("x")})
	s.Require().NoError(err)
	s.Equal(em.EvidenceUnknown, doc.Type)
}

func (s *ServiceSuite) TestValidation() {
	cases := []struct {
		name string
		cmd  UploadCommand
	}{
		{"not a pdf", UploadCommand{FileName: "scan.png", Content: []byte("x")}},
		{"pdf in the middle", UploadCommand{FileName: "scan.pdf.exe", Content: []byte("x")}},
		{"empty", UploadCommand{FileName: "scan.pdf"}},
		{"too large", UploadCommand{FileName: "scan.pdf", Content: bytes.Repeat([]byte("x"), MaxSizeBytes+1)}},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.service.Upload(context.Background(), s.owner, s.person.ID, tc.cmd)
			s.True(dErrors.HasCode(err, dErrors.CodeBadRequest), "got %v", err)
			s.Empty(s.blobs.objects)
		})
	}

	s.Run("exactly the limit is accepted", func() {
		cmd := UploadCommand{FileName: "scan.pdf", Content: []byte(strings.Repeat("x", MaxSizeBytes))}
		s.NoError(cmd.Validate())
	})
}

func (s *ServiceSuite) TestOwnership() {
	_, err := s.service.Upload(context.Background(), id.NewUserID(), s.person.ID, UploadCommand{FileName: "a.pdf", Content: []byte("x")})
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	s.Empty(s.blobs.objects)

	_, err = s.service.Upload(context.Background(), s.owner, id.NewPersonID(), UploadCommand{FileName: "a.pdf", Content: []byte("x")})
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestStorageFailure() {
	s.blobs.putErr = errors.New("disk full")
	_, err := s.service.Upload(context.Background(), s.owner, s.person.ID, UploadCommand{FileName: "a.pdf", Content: []byte("x")})
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))

	stored, err := s.persons.Get(context.Background(), s.owner, s.person.ID)
	s.Require().NoError(err)
	s.Empty(stored.Documents)
}

func (s *ServiceSuite) TestAttachFailureRemovesBlob() {
	svc := s.newService(failingAttach{Persons: s.persons})
	_, err := svc.Upload(context.Background(), s.owner, s.person.ID, UploadCommand{FileName: "a.pdf", Content: []byte("x")})
	s.Error(err)
	s.Empty(s.blobs.objects)
	s.Equal(0.0, testutil.ToFloat64(s.metrics.DocumentsUploaded.WithLabelValues(string(em.EvidenceUnknown))))
}
