package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/apiclient"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/models"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/queue"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/store"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

type fakeHotelAPI struct {
	created []apiclient.CreateHotelInput
	err     error
}

func (f *fakeHotelAPI) ListHotels(context.Context) ([]models.Hotel, error) {
	return []models.Hotel{{ID: "h1"}}, nil
}

func (f *fakeHotelAPI) CreateHotel(_ context.Context, in apiclient.CreateHotelInput) (models.Hotel, error) {
	f.created = append(f.created, in)
	if f.err != nil {
		return models.Hotel{}, f.err
	}
	return models.Hotel{ID: "h-new", Name: in.Name, ImageURL: in.ImageURL}, nil
}

type putCall struct {
	key         string
	data        []byte
	contentType string
}

type fakeUploader struct {
	puts []putCall
	err  error
}

func (f *fakeUploader) PutImage(_ context.Context, key string, data []byte, contentType string) (string, error) {
	f.puts = append(f.puts, putCall{key, data, contentType})
	if f.err != nil {
		return "", f.err
	}
	return "https://cdn.example/hotel-images/" + key, nil
}

type fakeTaskQueue struct {
	mu    sync.Mutex
	tasks []queue.Task
}

func (f *fakeTaskQueue) Enqueue(_ context.Context, task queue.Task) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, task)
	return "1-0", nil
}

func newCatalog(api HotelAPI, images ImageUploader, tasks TaskQueue) *HotelCatalog {
	c := NewHotelCatalog(api, images, tasks, zerolog.Nop())
	c.now = func() time.Time { return time.Date(2026, 5, 6, 23, 0, 0, 0, time.UTC) }
	return c
}

func TestCreateHotelWithoutImage(t *testing.T) {
	api := &fakeHotelAPI{}
	uploader := &fakeUploader{}
	c := newCatalog(api, uploader, nil)

	h, err := c.Create(context.Background(), store.HotelDraft{Name: "Riverside", City: "Hue"})
	require.NoError(t, err)
	assert.Equal(t, "h-new", h.ID)
	assert.Empty(t, uploader.puts)
	require.Len(t, api.created, 1)
	assert.Empty(t, api.created[0].ImageURL)
}

func TestCreateHotelUploadsImage(t *testing.T) {
	api := &fakeHotelAPI{}
	uploader := &fakeUploader{}
	c := newCatalog(api, uploader, nil)

	h, err := c.Create(context.Background(), store.HotelDraft{
		Name:  "Riverside",
		Image: &store.Image{Filename: "front.png", Data: pngBytes},
	})
	require.NoError(t, err)

	require.Len(t, uploader.puts, 1)
	put := uploader.puts[0]
	assert.True(t, strings.HasPrefix(put.key, "hotels/2026/05/06/"))
	assert.True(t, strings.HasSuffix(put.key, ".png"))
	assert.Equal(t, "image/png", put.contentType)
	assert.Equal(t, "https://cdn.example/hotel-images/"+put.key, h.ImageURL)
}

func TestCreateHotelSanitizesSVG(t *testing.T) {
	uploader := &fakeUploader{}
	c := newCatalog(&fakeHotelAPI{}, uploader, nil)

	_, err := c.Create(context.Background(), store.HotelDraft{
		Name:  "Riverside",
		Image: &store.Image{Data: []byte(`<svg onload="x()"><script>alert(1)</script></svg>`)},
	})
	require.NoError(t, err)
	require.Len(t, uploader.puts, 1)
	assert.Equal(t, "image/svg+xml", uploader.puts[0].contentType)
	assert.Equal(t, "<svg></svg>", string(uploader.puts[0].data))
}

func TestCreateHotelFailureEnqueuesImageDelete(t *testing.T) {
	api := &fakeHotelAPI{err: errors.New("backend rejected hotel")}
	uploader := &fakeUploader{}
	tasks := &fakeTaskQueue{}
	c := newCatalog(api, uploader, tasks)

	_, err := c.Create(context.Background(), store.HotelDraft{Name: "Riverside", Image: &store.Image{Data: pngBytes}})
	require.Error(t, err)

	require.Len(t, tasks.tasks, 1)
	assert.Equal(t, queue.TaskImageDelete, tasks.tasks[0].Type)
	assert.Equal(t, uploader.puts[0].key, tasks.tasks[0].ObjectKey)
}

func TestCreateHotelUploadFailureSkipsBackend(t *testing.T) {
	api := &fakeHotelAPI{}
	c := newCatalog(api, &fakeUploader{err: errors.New("bucket offline")}, &fakeTaskQueue{})

	_, err := c.Create(context.Background(), store.HotelDraft{Name: "Riverside", Image: &store.Image{Data: pngBytes}})
	require.Error(t, err)
	assert.Empty(t, api.created)
}

func TestCreateHotelWithoutStorage(t *testing.T) {
	c := newCatalog(&fakeHotelAPI{}, nil, nil)

	_, err := c.Create(context.Background(), store.HotelDraft{Name: "Riverside", Image: &store.Image{Data: pngBytes}})
	assert.Error(t, err)
}

func TestHotelStoreOverCatalog(t *testing.T) {
	c := newCatalog(&fakeHotelAPI{}, &fakeUploader{}, nil)
	s := store.NewHotelStore(c, nil)

	require.NoError(t, s.Fetch(context.Background()))
	require.NoError(t, s.SetField(store.HotelName, "Riverside"))
	require.NoError(t, s.SetField(store.HotelAddress, "1 Quay St"))
	require.NoError(t, s.SetField(store.HotelCity, "Hue"))
	require.NoError(t, s.SetField(store.HotelImage, &store.Image{Data: pngBytes, ContentType: "image/png"}))

	_, err := s.Create(context.Background())
	require.NoError(t, err)
	assert.Len(t, s.Items(), 2)
}
