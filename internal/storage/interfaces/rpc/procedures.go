package rpc

import (
	"context"
	"encoding/base64"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/lumacart/storefront/internal/rpc"
	"github.com/lumacart/storefront/internal/storage"
	"github.com/lumacart/storefront/pkg/metrics"
)

type uploadInput struct {
	FileName    string `json:"fileName" validate:"required"`
	FileData    string `json:"fileData" validate:"required"`
	ContentType string `json:"contentType"`
	Folder      string `json:"folder"`
}

type uploadOutput struct {
	Key      string `json:"key"`
	URL      string `json:"url"`
	FileName string `json:"fileName"`
}

type getURLInput struct {
	FileKey string `json:"fileKey" validate:"required"`
}

// Register mounts the storage namespace. Upload keys embed the uploader id so
// collisions across users are impossible. m may be nil.
func Register(r *rpc.Router, store storage.Storage, m *metrics.Metrics) {
	r.Namespace("storage",
		rpc.Mutation("upload", rpc.Protected, func(ctx context.Context, call *rpc.Call, in uploadInput) (*uploadOutput, error) {
			data, err := base64.StdEncoding.DecodeString(in.FileData)
			if err != nil {
				return nil, rpc.BadRequest("fileData is not valid base64", nil)
			}

			contentType := in.ContentType
			if contentType == "" {
				contentType = "application/octet-stream"
			}
			folder := in.Folder
			if folder == "" {
				folder = "uploads"
			}

			ext := strings.TrimPrefix(path.Ext(in.FileName), ".")
			key := fmt.Sprintf("%s/%d-%s", folder, call.Identity.ID, uuid.NewString())
			if ext != "" {
				key += "." + ext
			}

			obj, err := store.Put(ctx, key, data, contentType)
			if err != nil {
				return nil, rpc.Internal(err)
			}
			if m != nil {
				m.UploadsTotal.Inc()
			}
			return &uploadOutput{Key: obj.Key, URL: obj.URL, FileName: in.FileName}, nil
		}),
		rpc.Query("getUrl", rpc.Protected, func(ctx context.Context, call *rpc.Call, in getURLInput) (*storage.Object, error) {
			obj, err := store.Get(ctx, in.FileKey)
			if err != nil {
				return nil, rpc.NotFound("file not found")
			}
			return obj, nil
		}),
	)
}
