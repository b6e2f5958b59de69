package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"legalcheck/internal/sentinel"
)

type FilesystemSuite struct {
	suite.Suite
	root  string
	store *Filesystem
}

func TestFilesystemSuite(t *testing.T) {
	suite.Run(t, new(FilesystemSuite))
}

func (s *FilesystemSuite) SetupTest() {
	s.root = filepath.Join(s.T().TempDir(), "docs")
	var err error
	s.store, err = NewFilesystem(s.root)
	s.Require().NoError(err)
}

func (s *FilesystemSuite) TestPutGetDelete() {
	ctx := context.Background()
	s.Require().NoError(s.store.Put(ctx, "a.pdf", []byte("%PDF-1.7")))

	got, err := s.store.Get(ctx, "a.pdf")
	s.Require().NoError(err)
	s.Equal([]byte("%PDF-1.7"), got)

	s.Require().NoError(s.store.Put(ctx, "a.pdf", []byte("replaced")))
	got, err = s.store.Get(ctx, "a.pdf")
	s.Require().NoError(err)
	s.Equal([]byte("replaced"), got)

	s.Require().NoError(s.store.Delete(ctx, "a.pdf"))
	s.Require().NoError(s.store.Delete(ctx, "a.pdf"))
	_, err = s.store.Get(ctx, "a.pdf")
	s.ErrorIs(err, sentinel.ErrNotFound)

	entries, err := os.ReadDir(s.root)
	s.Require().NoError(err)
	s.Empty(entries, "no temp files left behind")
}

func (s *FilesystemSuite) TestRejectsKeysOutsideRoot() {
	ctx := context.Background()
	for _, key := range []string{"", "../escape.pdf", "nested/a.pdf", ".hidden"} {
		s.ErrorIs(s.store.Put(ctx, key, []byte("x")), sentinel.ErrInvalidInput, key)
	}
}

func (s *FilesystemSuite) TestPing() {
	s.NoError(s.store.Ping(context.Background()))
	s.Require().NoError(os.RemoveAll(s.root))
	s.Error(s.store.Ping(context.Background()))
}

func (s *FilesystemSuite) TestNewRequiresRoot() {
	_, err := NewFilesystem(" ")
	s.Error(err)
}
