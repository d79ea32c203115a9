package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/edupath-ng/edupath-go-api/internal/models"
)

type storageStub struct {
	uploaded bytes.Buffer
	lastName string
}

func (s *storageStub) Upload(_ context.Context, name string, reader io.Reader) (string, error) {
	s.uploaded.Reset()
	s.lastName = name
	if _, err := s.uploaded.ReadFrom(reader); err != nil {
		return "", err
	}
	return "https://cdn.example.com/" + name, nil
}

type mediaRepoStub struct {
	asset models.MediaAsset
}

func (m *mediaRepoStub) Create(_ context.Context, asset *models.MediaAsset) error {
	asset.ID = 1
	m.asset = *asset
	return nil
}

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func TestUploadServiceRejectsOversizedFile(t *testing.T) {
	svc := NewUploadService(&storageStub{}, &mediaRepoStub{}, 1, testLogger())

	file := buildFileHeader(t, "big.png", bytes.Repeat([]byte("a"), 2*1024*1024))
	_, err := svc.Upload(context.Background(), file, nil)
	require.ErrorIs(t, err, ErrUploadTooLarge)
}

func TestUploadServiceRejectsNonImage(t *testing.T) {
	svc := NewUploadService(&storageStub{}, &mediaRepoStub{}, 5, testLogger())

	file := buildFileHeader(t, "notes.txt", []byte("plain text"))
	_, err := svc.Upload(context.Background(), file, nil)
	require.ErrorIs(t, err, ErrUploadTypeNotAllowed)
}

func TestUploadServiceIgnoresClientClaimedType(t *testing.T) {
	svc := NewUploadService(&storageStub{}, &mediaRepoStub{}, 5, testLogger())

	// The extension claims an image but the payload is a script.
	file := buildFileHeader(t, "sneaky.png", []byte("#!/bin/sh\nrm -rf /\n"))
	_, err := svc.Upload(context.Background(), file, nil)
	require.ErrorIs(t, err, ErrUploadTypeNotAllowed)
}

func TestUploadServiceMissingFile(t *testing.T) {
	svc := NewUploadService(&storageStub{}, &mediaRepoStub{}, 5, testLogger())

	_, err := svc.Upload(context.Background(), nil, nil)
	require.ErrorIs(t, err, ErrUploadMissing)
}

func TestUploadServiceStoresImage(t *testing.T) {
	storage := &storageStub{}
	repo := &mediaRepoStub{}
	svc := NewUploadService(storage, repo, 5, testLogger())

	uploadedBy := uint(3)
	file := buildFileHeader(t, "My Photo!.png", pngHeader)
	resp, err := svc.Upload(context.Background(), file, &uploadedBy)
	require.NoError(t, err)

	require.Equal(t, "my-photo.png", resp.FileName, "file name is sanitized")
	require.Contains(t, resp.URL, "my-photo.png")
	require.Equal(t, "image/png", resp.ContentType)
	require.Equal(t, int64(len(pngHeader)), resp.SizeBytes)

	require.NotEmpty(t, repo.asset.Checksum)
	require.Equal(t, &uploadedBy, repo.asset.UploadedBy)
	require.Equal(t, pngHeader, storage.uploaded.Bytes())
}

func buildFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {"form-data; name=\"file\"; filename=\"" + filename + "\""},
		"Content-Type":        {"application/octet-stream"},
	})
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(int64(len(content) + 1024))
	require.NoError(t, err)
	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}
