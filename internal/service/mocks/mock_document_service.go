package mocks

import (
	"context"
	"io"

	"docrepo/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Bootstrap(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDocumentService) Upload(ctx context.Context, section, docType string, r io.Reader, originalFilename, contentType string, size int64) (*model.StoredFile, error) {
	args := m.Called(ctx, section, docType, r, originalFilename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StoredFile), args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context, section, docType string) ([]model.FileInfo, error) {
	args := m.Called(ctx, section, docType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FileInfo), args.Error(1)
}

func (m *MockDocumentService) Download(ctx context.Context, section, docType, filename string) (io.ReadCloser, *model.FileInfo, error) {
	args := m.Called(ctx, section, docType, filename)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(*model.FileInfo), args.Error(2)
}
