package helpers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const PreCheckinFolder = "precheckin"

// UploadImages uploads every non-blank source (file path, URL or data URI)
// into folder. If any upload fails the ones already stored are removed.
func UploadImages(ctx context.Context, cld *cloudinary.Cloudinary, sources []string, folder string) ([]string, []string, error) {
	if cld == nil {
		return nil, nil, fmt.Errorf("cloudinary client is not initialized")
	}

	var urls, publicIDs []string
	for i, src := range sources {
		if strings.TrimSpace(src) == "" {
			slog.Debug("skipping empty image source", "index", i)
			continue
		}
		res, err := cld.Upload.Upload(ctx, src, uploader.UploadParams{
			Folder: folder,
			Tags:   []string{"staydesk", folder},
		})
		if err == nil && res.Error.Message != "" {
			err = fmt.Errorf("%s", res.Error.Message)
		}
		if err != nil {
			DeleteImages(ctx, cld, folder, publicIDs)
			return nil, nil, fmt.Errorf("failed to upload image %d: %w", i, err)
		}
		urls = append(urls, res.SecureURL)
		publicIDs = append(publicIDs, res.PublicID)
	}
	return urls, publicIDs, nil
}

// DeleteImages is best effort; failures are logged and skipped.
func DeleteImages(ctx context.Context, cld *cloudinary.Cloudinary, folder string, publicIDs []string) {
	if cld == nil {
		return
	}
	for _, id := range publicIDs {
		if _, err := cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: id}); err != nil {
			slog.Warn("failed to delete image", "folder", folder, "public_id", id, "error", err)
		}
	}
}

// CloudinaryStore stores guest identity documents.
type CloudinaryStore struct {
	Cld    *cloudinary.Cloudinary
	Folder string
}

func NewCloudinaryStore(cld *cloudinary.Cloudinary) *CloudinaryStore {
	return &CloudinaryStore{Cld: cld, Folder: PreCheckinFolder}
}

func (s *CloudinaryStore) Upload(ctx context.Context, sources []string) ([]string, []string, error) {
	return UploadImages(ctx, s.Cld, sources, s.Folder)
}

func (s *CloudinaryStore) Delete(ctx context.Context, publicIDs []string) {
	DeleteImages(ctx, s.Cld, s.Folder, publicIDs)
}
