package rpc

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumacart/storefront/internal/rpc"
	"github.com/lumacart/storefront/internal/storage"
	"github.com/lumacart/storefront/pkg/metrics"
)

type memoryStorage struct {
	objects map[string][]byte
}

func (s *memoryStorage) Put(ctx context.Context, key string, data []byte, contentType string) (*storage.Object, error) {
	if s.objects == nil {
		s.objects = map[string][]byte{}
	}
	s.objects[key] = data
	return &storage.Object{Key: key, URL: "https://cdn.example.com/" + key}, nil
}

func (s *memoryStorage) Get(ctx context.Context, key string) (*storage.Object, error) {
	if _, ok := s.objects[key]; !ok {
		return nil, assertionError("missing key")
	}
	return &storage.Object{Key: key, URL: "https://cdn.example.com/" + key}, nil
}

type assertionError string

func (e assertionError) Error() string { return string(e) }

func newStorageEngine(store storage.Storage, id *rpc.Identity) *gin.Engine {
	return newStorageEngineWithMetrics(store, id, nil)
}

func newStorageEngineWithMetrics(store storage.Storage, id *rpc.Identity, m *metrics.Metrics) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := rpc.NewRouter()
	Register(r, store, m)

	e := gin.New()
	e.Use(func(c *gin.Context) {
		rpc.SetIdentity(c, id)
		c.Next()
	})
	r.Mount(e)
	return e
}

func TestUploadBuildsUserScopedKey(t *testing.T) {
	store := &memoryStorage{}
	e := newStorageEngine(store, &rpc.Identity{ID: 42, Role: rpc.RoleUser})

	body := map[string]string{
		"fileName": "banner.png",
		"fileData": base64.StdEncoding.EncodeToString([]byte("png-bytes")),
		"folder":   "banners",
	}
	raw, _ := json.Marshal(body)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/rpc/storage.upload", strings.NewReader(string(raw)))
	req.Header.Set("Content-Type", "application/json")
	e.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Data struct {
			Key      string `json:"key"`
			URL      string `json:"url"`
			FileName string `json:"fileName"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))

	assert.Regexp(t, regexp.MustCompile(`^banners/42-[0-9a-f-]+\.png$`), payload.Data.Key)
	assert.Equal(t, "banner.png", payload.Data.FileName)
	assert.Equal(t, []byte("png-bytes"), store.objects[payload.Data.Key])
}

func TestUploadIncrementsCounter(t *testing.T) {
	m := metrics.New("test")
	e := newStorageEngineWithMetrics(&memoryStorage{}, &rpc.Identity{ID: 1, Role: rpc.RoleUser}, m)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/rpc/storage.upload",
		strings.NewReader(`{"fileName":"a.png","fileData":"aGk="}`))
	req.Header.Set("Content-Type", "application/json")
	e.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.UploadsTotal))
}

func TestUploadRejectsInvalidBase64(t *testing.T) {
	e := newStorageEngine(&memoryStorage{}, &rpc.Identity{ID: 1, Role: rpc.RoleUser})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/rpc/storage.upload",
		strings.NewReader(`{"fileName":"a.png","fileData":"not base64!!!"}`))
	req.Header.Set("Content-Type", "application/json")
	e.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadRequiresAuthentication(t *testing.T) {
	e := newStorageEngine(&memoryStorage{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/rpc/storage.upload",
		strings.NewReader(`{"fileName":"a.png","fileData":"aGk="}`))
	req.Header.Set("Content-Type", "application/json")
	e.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetURLMissingKeyIsNotFound(t *testing.T) {
	e := newStorageEngine(&memoryStorage{}, &rpc.Identity{ID: 1, Role: rpc.RoleUser})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/rpc/storage.getUrl?input="+`{"fileKey":"nope.png"}`, nil)
	e.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
