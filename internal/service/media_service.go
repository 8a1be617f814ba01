package service

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"team-dashboard/internal/model"
	"team-dashboard/internal/repository"
	"team-dashboard/pkg/apierror"
)

type MediaStore interface {
	FindByID(ctx context.Context, id string) (repository.MediaRecord, error)
	List(ctx context.Context) ([]model.MediaItem, error)
	Create(ctx context.Context, m repository.MediaRecord) error
	Delete(ctx context.Context, id string) error
}

// MediaService stores uploaded images on disk with their metadata in the
// media store, and serves cached thumbnails.
type MediaService struct {
	media         MediaStore
	mediaRoot     string
	thumbnailRoot string
	now           func() time.Time
}

func NewMediaService(media MediaStore, mediaRoot string, thumbnailRoot string) (*MediaService, error) {
	if err := os.MkdirAll(mediaRoot, 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	if err := os.MkdirAll(thumbnailRoot, 0o755); err != nil {
		return nil, fmt.Errorf("create thumbnail root: %w", err)
	}

	return &MediaService{
		media:         media,
		mediaRoot:     mediaRoot,
		thumbnailRoot: thumbnailRoot,
		now:           time.Now,
	}, nil
}

func (s *MediaService) List(ctx context.Context) ([]model.MediaItem, error) {
	return s.media.List(ctx)
}

func (s *MediaService) Upload(ctx context.Context, actorID string, fileName string, body io.Reader) (model.MediaItem, error) {
	fileName = filepath.Base(strings.TrimSpace(fileName))
	if fileName == "" || fileName == "." {
		return model.MediaItem{}, apierror.New("BAD_REQUEST", "file name is required", "file", http.StatusBadRequest)
	}

	id := uuid.NewString()
	storedPath := filepath.Join(s.mediaRoot, id+filepath.Ext(fileName))

	out, err := os.OpenFile(storedPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
	if err != nil {
		return model.MediaItem{}, fmt.Errorf("create media file: %w", err)
	}

	size, err := io.Copy(out, body)
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(storedPath)
		return model.MediaItem{}, fmt.Errorf("write media file: %w", err)
	}

	contentType, err := sniffContentType(storedPath)
	if err != nil {
		_ = os.Remove(storedPath)
		return model.MediaItem{}, err
	}
	if !strings.HasPrefix(contentType, "image/") {
		_ = os.Remove(storedPath)
		return model.MediaItem{}, apierror.New("BAD_REQUEST", "only image uploads are supported", contentType, http.StatusBadRequest)
	}

	record := repository.MediaRecord{
		MediaItem: model.MediaItem{
			ID:           id,
			FileName:     fileName,
			ContentType:  contentType,
			SizeBytes:    size,
			UploadedByID: actorID,
			CreatedAt:    s.now().UTC(),
		},
		StoredPath: storedPath,
	}

	if err := s.media.Create(ctx, record); err != nil {
		_ = os.Remove(storedPath)
		return model.MediaItem{}, err
	}

	return record.MediaItem, nil
}

// Open returns the original file for streaming.
func (s *MediaService) Open(ctx context.Context, id string) (*os.File, repository.MediaRecord, error) {
	record, err := s.media.FindByID(ctx, id)
	if err != nil {
		return nil, repository.MediaRecord{}, err
	}

	file, err := os.Open(record.StoredPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, repository.MediaRecord{}, model.ErrMediaNotFound
		}
		return nil, repository.MediaRecord{}, fmt.Errorf("open media file: %w", err)
	}

	return file, record, nil
}

// Thumbnail returns a scaled JPEG for the item, generating and caching it on
// first use.
func (s *MediaService) Thumbnail(ctx context.Context, id string, size int) (*os.File, error) {
	if size <= 0 || size > 1024 {
		size = 256
	}

	record, err := s.media.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	thumbPath := filepath.Join(s.thumbnailRoot, fmt.Sprintf("%s_%d.jpg", record.ID, size))
	if cached, err := os.Open(thumbPath); err == nil {
		return cached, nil
	}

	source, err := os.Open(record.StoredPath)
	if err != nil {
		return nil, fmt.Errorf("open media file: %w", err)
	}
	defer source.Close()

	src, _, err := image.Decode(source)
	if err != nil {
		return nil, apierror.New("UNSUPPORTED", "cannot decode image", record.FileName, http.StatusUnsupportedMediaType)
	}

	bounds := src.Bounds()
	width, height := fitWithin(bounds.Dx(), bounds.Dy(), size)
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	out, err := os.OpenFile(thumbPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create thumbnail: %w", err)
	}

	if err := jpeg.Encode(out, dst, &jpeg.Options{Quality: 85}); err != nil {
		_ = out.Close()
		_ = os.Remove(thumbPath)
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("close thumbnail: %w", err)
	}

	return os.Open(thumbPath)
}

func (s *MediaService) Delete(ctx context.Context, id string) error {
	record, err := s.media.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.media.Delete(ctx, id); err != nil {
		return err
	}

	_ = os.Remove(record.StoredPath)

	// Drop any cached thumbnails for the item.
	matches, _ := filepath.Glob(filepath.Join(s.thumbnailRoot, record.ID+"_*.jpg"))
	for _, match := range matches {
		_ = os.Remove(match)
	}

	return nil
}

func fitWithin(width int, height int, max int) (int, int) {
	if width <= max && height <= max {
		return width, height
	}

	if width >= height {
		scaled := height * max / width
		if scaled < 1 {
			scaled = 1
		}
		return max, scaled
	}

	scaled := width * max / height
	if scaled < 1 {
		scaled = 1
	}
	return scaled, max
}

func sniffContentType(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open for sniff: %w", err)
	}
	defer file.Close()

	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read for sniff: %w", err)
	}

	return http.DetectContentType(buf[:n]), nil
}
