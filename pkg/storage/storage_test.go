package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicy_Prepare(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name         string
		in           *UploadInput
		wantErr      error
		wantCompress bool
	}{
		{"missing file", nil, ErrNoFile, false},
		{"exactly 20MB", &UploadInput{Filename: "a.pdf", Size: 20 * MB, Body: strings.NewReader("")}, nil, false},
		{"over 20MB", &UploadInput{Filename: "a.pdf", Size: 20*MB + 1, Body: strings.NewReader("")}, ErrTooLarge, false},
		{"large png compresses", &UploadInput{Filename: "card.PNG", Size: 3 * MB, Body: strings.NewReader("")}, nil, true},
		{"small jpg untouched", &UploadInput{Filename: "card.jpg", Size: 2 * MB, Body: strings.NewReader("")}, nil, false},
		{"large pdf untouched", &UploadInput{Filename: "license.pdf", Size: 5 * MB, Body: strings.NewReader("")}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.Prepare(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCompress, tt.in.Compress)
		})
	}
}

func TestPolicy_CustomLimit(t *testing.T) {
	p := Policy{MaxSize: 5 * MB}
	err := p.Prepare(&UploadInput{Filename: "a.pdf", Size: 5*MB + 1, Body: strings.NewReader("")})
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Equal(t, "File size exceeds 5MB", err.Error())

	assert.Equal(t, "File size exceeds 512KB", (&SizeError{Max: 512 << 10}).Error())
	assert.Equal(t, "File size exceeds 1000 bytes", (&SizeError{Max: 1000}).Error())

	assert.Equal(t, int64(DefaultMaxUploadSize), Policy{}.Limit())
	assert.Greater(t, p.BodyLimit(), p.Limit())
}

func TestTransferUploader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		assert.Equal(t, "xylem", r.URL.Query().Get("path"))
		assert.Equal(t, "50", r.URL.Query().Get("compression_level"))

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		data, _ := io.ReadAll(f)
		assert.Equal(t, "photo.jpg", hdr.Filename)
		assert.Equal(t, "jpeg-bytes", string(data))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"url":"https://cdn.example/photo.jpg","size":10}`)
	}))
	defer srv.Close()

	up := NewTransferUploader(srv.URL+"/upload/", "secret", "xylem")
	res, err := up.Upload(context.Background(), UploadInput{
		Filename: "photo.jpg", Size: 10, Body: strings.NewReader("jpeg-bytes"), Compress: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/photo.jpg", res.URL)
	assert.Equal(t, "transfer", res.Provider)
	assert.EqualValues(t, 10, res.Extra["size"])
}

func TestTransferUploader_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("compression_level"))
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewTransferUploader(srv.URL, "k", "p").Upload(context.Background(), UploadInput{
		Filename: "a.txt", Body: strings.NewReader("x"),
	})
	assert.Error(t, err)
}

func TestObjectKey(t *testing.T) {
	at := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
	key := ObjectKey("/uploads/", `C:\tmp\trade license.png`, at)

	assert.True(t, strings.HasPrefix(key, "uploads/2024/03/09/"), key)
	assert.True(t, strings.HasSuffix(key, "-trade_license.png"), key)
}
