package service

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/rs/zerolog"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/apiclient"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/ids"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/media/sniffer"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/media/svg"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/models"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/queue"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/store"
)

type HotelAPI interface {
	ListHotels(ctx context.Context) ([]models.Hotel, error)
	CreateHotel(ctx context.Context, in apiclient.CreateHotelInput) (models.Hotel, error)
}

type ImageUploader interface {
	PutImage(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type TaskQueue interface {
	Enqueue(ctx context.Context, task queue.Task) (string, error)
}

// HotelCatalog is the hotel store backend. It uploads the staged image
// before creating the hotel and schedules removal of the object when the
// backend rejects the hotel.
type HotelCatalog struct {
	api    HotelAPI
	images ImageUploader
	tasks  TaskQueue
	log    zerolog.Logger
	now    func() time.Time
}

func NewHotelCatalog(api HotelAPI, images ImageUploader, tasks TaskQueue, log zerolog.Logger) *HotelCatalog {
	return &HotelCatalog{
		api:    api,
		images: images,
		tasks:  tasks,
		log:    log,
		now:    time.Now,
	}
}

func (h *HotelCatalog) List(ctx context.Context) ([]models.Hotel, error) {
	return h.api.ListHotels(ctx)
}

func (h *HotelCatalog) Create(ctx context.Context, d store.HotelDraft) (models.Hotel, error) {
	input := apiclient.CreateHotelInput{
		Name:        d.Name,
		Address:     d.Address,
		City:        d.City,
		Phone:       d.Phone,
		Email:       d.Email,
		Description: d.Description,
	}

	var objectKey string
	if d.Image != nil {
		key, url, err := h.uploadImage(ctx, d.Image)
		if err != nil {
			return models.Hotel{}, err
		}
		objectKey = key
		input.ImageURL = url
	}

	hotel, err := h.api.CreateHotel(ctx, input)
	if err != nil {
		if objectKey != "" {
			h.discardImage(objectKey)
		}
		return models.Hotel{}, err
	}
	return hotel, nil
}

func (h *HotelCatalog) uploadImage(ctx context.Context, img *store.Image) (string, string, error) {
	if h.images == nil {
		return "", "", fmt.Errorf("image storage is not configured")
	}

	result, err := sniffer.DetectHead(img.Data)
	if err != nil {
		return "", "", fmt.Errorf("detect image type: %w", err)
	}

	data := img.Data
	if result.Type == sniffer.TypeSVG {
		clean, err := svg.Sanitize(data)
		if err != nil {
			return "", "", fmt.Errorf("sanitize svg: %w", err)
		}
		data = clean
	}

	key := h.objectKey(result.Extension())
	url, err := h.images.PutImage(ctx, key, data, result.MIME)
	if err != nil {
		return "", "", err
	}
	return key, url, nil
}

func (h *HotelCatalog) objectKey(ext string) string {
	datePrefix := h.now().UTC().Format("2006/01/02")
	return path.Join("hotels", datePrefix, fmt.Sprintf("%s.%s", ids.New(), ext))
}

// discardImage runs detached from the request context, which may already be
// cancelled when the backend call failed.
func (h *HotelCatalog) discardImage(key string) {
	if h.tasks == nil {
		h.log.Warn().Str("object_key", key).Msg("orphaned hotel image left in storage")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if _, err := h.tasks.Enqueue(ctx, queue.Task{Type: queue.TaskImageDelete, ObjectKey: key}); err != nil {
		h.log.Error().Err(err).Str("object_key", key).Msg("enqueue image delete failed")
	}
}
