package internal

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	return newTestRouterWith(t, DefaultConfig())
}

func newTestRouterWith(t *testing.T, cfg Config) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	root := t.TempDir()
	r := gin.New()
	RegisterRoutes(r, root, cfg)
	return r, root
}

func uploadRequest(t *testing.T, data []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if data != nil {
		part, err := w.CreateFormFile("image", "cat.png")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/split", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		img.SetNRGBA(i%w, i/w, color.NRGBA{uint8(i), 100, 50, 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSplitHandler(t *testing.T) {
	t.Run("splits and serves the pieces", func(t *testing.T) {
		r, _ := newTestRouter(t)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, uploadRequest(t, pngBytes(t, 12, 10), map[string]string{
			"pieces":     "3",
			"fragments":  "10",
			"background": "transparent",
			"seed":       "7",
		}))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var resp SplitResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Job)
		require.Len(t, resp.Pieces, 3)

		total := 0
		for i, piece := range resp.Pieces {
			total += piece.FragmentCount
			assert.Len(t, piece.FragmentIDs, piece.FragmentCount)
			assert.Contains(t, piece.URL, "/v1/fragments/"+resp.Job+"/cat_fragment")
			assert.Contains(t, piece.URL, ".png")

			get := httptest.NewRecorder()
			r.ServeHTTP(get, httptest.NewRequest(http.MethodGet, piece.URL, nil))
			assert.Equal(t, http.StatusOK, get.Code, "piece %d", i+1)
		}
		assert.Equal(t, 10, total)
	})

	t.Run("uploads are shrunk to the max size", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MaxSize = 8
		r, root := newTestRouterWith(t, cfg)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, uploadRequest(t, pngBytes(t, 64, 32), map[string]string{
			"pieces":     "2",
			"fragments":  "4",
			"background": "transparent",
		}))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var resp SplitResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Pieces, 2)
		for _, piece := range resp.Pieces {
			f, err := os.Open(filepath.Join(root, resp.Job, path.Base(piece.URL)))
			require.NoError(t, err)
			dim, err := png.DecodeConfig(f)
			require.NoError(t, f.Close())
			require.NoError(t, err)
			assert.Equal(t, 8, dim.Width)
			assert.Equal(t, 4, dim.Height)
		}
	})

	t.Run("invalid configuration", func(t *testing.T) {
		r, _ := newTestRouter(t)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, uploadRequest(t, pngBytes(t, 4, 4), map[string]string{
			"pieces":    "5",
			"fragments": "4",
		}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid configuration")
	})

	t.Run("bad field", func(t *testing.T) {
		r, _ := newTestRouter(t)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, uploadRequest(t, pngBytes(t, 4, 4), map[string]string{"invert": "maybe"}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing image", func(t *testing.T) {
		r, _ := newTestRouter(t)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, uploadRequest(t, nil, map[string]string{"pieces": "2"}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "missing image upload")
	})

	t.Run("undecodable image", func(t *testing.T) {
		r, root := newTestRouter(t)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, uploadRequest(t, []byte("definitely not a png"), nil))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		entries, err := os.ReadDir(root)
		require.NoError(t, err)
		assert.Empty(t, entries, "nothing is written for a failed split")
	})
}
