package vcard

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG
var pngPixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func TestAddLogoAndPhoto(t *testing.T) {
	const remote = "https://cdn.example.com/logo.jpg"
	const local = "/srv/images/photo.png"
	data := []byte("image-bytes")
	encoded := base64.StdEncoding.EncodeToString(data)

	tests := []struct {
		name       string
		setupMocks func(m *MockResolver)
		add        func(b *Builder) error
		want       Property
	}{
		{
			name: "remote linked",
			setupMocks: func(m *MockResolver) {
				m.On("RemoteContentType", remote).Return("image/jpeg; charset=binary", nil)
			},
			add:  func(b *Builder) error { return b.AddLogo(context.Background(), remote, false) },
			want: Property{Key: "LOGO;VALUE=URL;TYPE=JPEG", Value: remote},
		},
		{
			name: "remote included",
			setupMocks: func(m *MockResolver) {
				m.On("RemoteContentType", remote).Return("image/jpeg", nil)
				m.On("FetchRemote", remote).Return(data, nil)
			},
			add:  func(b *Builder) error { return b.AddPhoto(context.Background(), remote, true) },
			want: Property{Key: "PHOTO;ENCODING=b;TYPE=JPEG", Value: encoded},
		},
		{
			name: "local linked",
			setupMocks: func(m *MockResolver) {
				m.On("LocalContentType", local).Return("image/png", nil)
			},
			add:  func(b *Builder) error { return b.AddPhoto(context.Background(), local, false) },
			want: Property{Key: "PHOTO", Value: local},
		},
		{
			name: "local included",
			setupMocks: func(m *MockResolver) {
				m.On("LocalContentType", local).Return("image/png", nil)
				m.On("ReadLocal", local).Return(data, nil)
			},
			add:  func(b *Builder) error { return b.AddLogo(context.Background(), local, true) },
			want: Property{Key: "LOGO;ENCODING=b;TYPE=PNG", Value: encoded},
		},
		{
			name: "raw content",
			setupMocks: func(m *MockResolver) {
				m.On("DetectContent", data).Return("image/gif", nil)
			},
			add:  func(b *Builder) error { return b.AddLogoContent(data) },
			want: Property{Key: "LOGO;ENCODING=b;TYPE=GIF", Value: encoded},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &MockResolver{}
			tt.setupMocks(m)
			b := New(WithMediaResolver(m))

			require.NoError(t, tt.add(b))
			assert.Equal(t, []Property{tt.want}, b.Properties())
			m.AssertExpectations(t)
		})
	}
}

func TestAddMediaErrors(t *testing.T) {
	const remote = "https://cdn.example.com/logo.jpg"

	tests := []struct {
		name       string
		setupMocks func(m *MockResolver)
		add        func(b *Builder) error
		wantErr    error
	}{
		{
			name: "not an image",
			setupMocks: func(m *MockResolver) {
				m.On("RemoteContentType", remote).Return("text/html; charset=utf-8", nil)
			},
			add:     func(b *Builder) error { return b.AddLogo(context.Background(), remote, true) },
			wantErr: ErrInvalidImage,
		},
		{
			name: "unknown content type",
			setupMocks: func(m *MockResolver) {
				m.On("RemoteContentType", remote).Return("", nil)
			},
			add:     func(b *Builder) error { return b.AddLogo(context.Background(), remote, false) },
			wantErr: ErrInvalidImage,
		},
		{
			name: "lookup failure",
			setupMocks: func(m *MockResolver) {
				m.On("RemoteContentType", remote).Return("", errors.New("connection refused"))
			},
			add:     func(b *Builder) error { return b.AddPhoto(context.Background(), remote, false) },
			wantErr: ErrInvalidImage,
		},
		{
			name: "fetch failure",
			setupMocks: func(m *MockResolver) {
				m.On("RemoteContentType", remote).Return("image/png", nil)
				m.On("FetchRemote", remote).Return(nil, errors.New("timeout"))
			},
			add:     func(b *Builder) error { return b.AddPhoto(context.Background(), remote, true) },
			wantErr: ErrEmptyResource,
		},
		{
			name: "empty body",
			setupMocks: func(m *MockResolver) {
				m.On("RemoteContentType", remote).Return("image/png", nil)
				m.On("FetchRemote", remote).Return([]byte{}, nil)
			},
			add:     func(b *Builder) error { return b.AddPhoto(context.Background(), remote, true) },
			wantErr: ErrEmptyResource,
		},
		{
			name: "raw content not an image",
			setupMocks: func(m *MockResolver) {
				m.On("DetectContent", mock.Anything).Return("text/plain; charset=utf-8", nil)
			},
			add:     func(b *Builder) error { return b.AddPhotoContent([]byte("hello")) },
			wantErr: ErrInvalidImage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &MockResolver{}
			tt.setupMocks(m)
			b := New(WithMediaResolver(m))

			err := tt.add(b)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, b.Properties())
			assert.False(t, b.Defined(ElementLogo))
			assert.False(t, b.Defined(ElementPhoto))
			m.AssertExpectations(t)
		})
	}
}

func TestAddMediaNotAnImageSkipsFetch(t *testing.T) {
	const remote = "https://cdn.example.com/page"
	m := &MockResolver{}
	m.On("RemoteContentType", remote).Return("text/html", nil)

	b := New(WithMediaResolver(m))
	assert.ErrorIs(t, b.AddLogo(context.Background(), remote, true), ErrInvalidImage)
	m.AssertNotCalled(t, "FetchRemote", mock.Anything)
}

func TestAddMediaDuplicate(t *testing.T) {
	const remote = "https://cdn.example.com/logo.png"
	m := &MockResolver{}
	m.On("RemoteContentType", remote).Return("image/png", nil)

	b := New(WithMediaResolver(m))
	require.NoError(t, b.AddLogo(context.Background(), remote, false))

	err := b.AddLogo(context.Background(), remote, false)
	assert.ErrorIs(t, err, ErrDuplicateElement)
	assert.ErrorIs(t, b.AddLogoContent(pngPixel), ErrDuplicateElement)
	m.AssertNumberOfCalls(t, "RemoteContentType", 1)
	m.AssertNotCalled(t, "DetectContent", mock.Anything)
	assert.Len(t, b.Properties(), 1)
}

func TestAddPhotoWithDefaultResolver(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(pngPixel)
	}))
	defer srv.Close()

	b := New(WithHTTPClient(srv.Client()))
	require.NoError(t, b.AddPhoto(context.Background(), srv.URL+"/me.png", true))
	require.NoError(t, b.AddLogoContent(pngPixel))

	encoded := base64.StdEncoding.EncodeToString(pngPixel)
	assert.Equal(t, []Property{
		{Key: "PHOTO;ENCODING=b;TYPE=PNG", Value: encoded},
		{Key: "LOGO;ENCODING=b;TYPE=PNG", Value: encoded},
	}, b.Properties())
}

func TestImageTag(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
		wantErr     bool
	}{
		{contentType: "image/jpeg", want: "JPEG"},
		{contentType: "IMAGE/PNG; charset=binary", want: "PNG"},
		{contentType: "image/svg+xml", want: "SVG+XML"},
		{contentType: "text/html", wantErr: true},
		{contentType: "image/", wantErr: true},
		{contentType: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			got, err := imageTag(tt.contentType)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyMedia(t *testing.T) {
	assert.Equal(t, mediaRemote, classifyMedia("https://example.com/a.png", false).location)
	assert.Equal(t, mediaLocal, classifyMedia("/tmp/a.png", false).location)
	assert.Equal(t, mediaLocal, classifyMedia(`C:\images\a.png`, false).location)
	assert.Equal(t, mediaInline, classifyMedia("/tmp/a.png", true).disposition)
	assert.Equal(t, mediaLinked, classifyMedia("/tmp/a.png", false).disposition)
}
