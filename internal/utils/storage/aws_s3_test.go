package storage

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reserve-backend/domain"
)

type fakeS3 struct {
	put     []string
	deleted []string
	types   []string
	err     error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.put = append(f.put, *in.Key)
	f.types = append(f.types, *in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

// pngHeader is the 8-byte PNG signature followed by an IHDR chunk prefix.
var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	return form.File["file"][0]
}

func TestUploadFile_StoresUnderFolder(t *testing.T) {
	client := &fakeS3{}
	s := NewAwsS3WithClient(client, "reserve", "ap-south-1")

	key, err := s.UploadFile("profile-1", fileHeader(t, "Me.PNG", pngHeader), "profiles", AllowImage...)
	require.NoError(t, err)

	assert.Equal(t, "profiles/profile-1.png", key)
	assert.Equal(t, []string{"image/png"}, client.types)
	assert.Equal(t, "https://reserve.s3.ap-south-1.amazonaws.com/profiles/profile-1.png", s.GetPublicLinkKey(key))
}

func TestUploadFile_RejectsDisallowedType(t *testing.T) {
	client := &fakeS3{}
	s := NewAwsS3WithClient(client, "reserve", "ap-south-1")

	_, err := s.UploadFile("doc", fileHeader(t, "notes.txt", []byte("plain text")), "documents", AllowImage...)
	assert.ErrorIs(t, err, domain.ErrInvalidFileType)
	assert.Empty(t, client.put)
}

func TestUploadFile_ClientErrorIsExternal(t *testing.T) {
	s := NewAwsS3WithClient(&fakeS3{err: errors.New("boom")}, "reserve", "ap-south-1")

	_, err := s.UploadFile("p", fileHeader(t, "a.png", pngHeader), "profiles", AllowImage...)
	assert.ErrorIs(t, err, domain.ErrExternalService)
}

func TestGetObjectKeyFromLink(t *testing.T) {
	s := NewAwsS3WithClient(&fakeS3{}, "reserve", "ap-south-1")

	assert.Equal(t, "food/x.jpg", s.GetObjectKeyFromLink("https://reserve.s3.ap-south-1.amazonaws.com/food/x.jpg"))
	assert.Equal(t, "", s.GetObjectKeyFromLink("https://elsewhere.example.com/food/x.jpg"))
}
