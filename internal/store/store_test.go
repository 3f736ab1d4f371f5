package store

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/models"
)

type statusErr struct {
	code int
	msg  string
}

func (e statusErr) Error() string       { return e.msg }
func (e statusErr) StatusCode() int     { return e.code }
func (e statusErr) UserMessage() string { return e.msg }

type fakeHotels struct {
	mu        sync.Mutex
	items     []models.Hotel
	listErr   error
	createErr error
	lists     int
	creates   []HotelDraft
}

func (f *fakeHotels) List(context.Context) ([]models.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Hotel(nil), f.items...), nil
}

func (f *fakeHotels) Create(_ context.Context, d HotelDraft) (models.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, d)
	if f.createErr != nil {
		return models.Hotel{}, f.createErr
	}
	h := models.Hotel{ID: "h-new", Name: d.Name, Address: d.Address, City: d.City}
	f.items = append(f.items, h)
	return h, nil
}

func fillValidHotel(t *testing.T, s *HotelStore) {
	t.Helper()
	require.NoError(t, s.SetField(HotelName, "Riverside"))
	require.NoError(t, s.SetField(HotelAddress, "1 Quay St"))
	require.NoError(t, s.SetField(HotelCity, "Hanoi"))
}

func TestFetchIsIdempotent(t *testing.T) {
	backend := &fakeHotels{items: []models.Hotel{{ID: "h1", City: "Hanoi"}, {ID: "h2", City: "Hue"}}}
	s := NewHotelStore(backend, nil)

	require.NoError(t, s.Fetch(context.Background()))
	first := s.Snapshot()
	require.NoError(t, s.Fetch(context.Background()))
	second := s.Snapshot()

	assert.Equal(t, first.Items, second.Items)
	assert.Len(t, second.Items, 2)
	assert.True(t, second.IsInitialized)
	assert.False(t, second.IsLoading)
	assert.Equal(t, 2, backend.lists)
}

func TestFetchEmptyBackendInitializes(t *testing.T) {
	s := NewHotelStore(&fakeHotels{}, nil)

	require.NoError(t, s.Fetch(context.Background()))
	snap := s.Snapshot()
	assert.NotNil(t, snap.Items)
	assert.Empty(t, snap.Items)
	assert.True(t, snap.IsInitialized)
}

func TestFetchFailureKeepsPreviousList(t *testing.T) {
	backend := &fakeHotels{items: []models.Hotel{{ID: "h1"}}}
	s := NewHotelStore(backend, nil)
	require.NoError(t, s.Fetch(context.Background()))

	backend.listErr = &net.OpError{Op: "dial", Err: errors.New("connection refused")}
	err := s.Fetch(context.Background())
	require.Error(t, err)

	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindNetwork, se.Kind)

	snap := s.Snapshot()
	assert.Len(t, snap.Items, 1)
	require.NotNil(t, snap.Error)
	assert.Equal(t, fallbackMessages[KindNetwork], snap.Error.Message)
	assert.False(t, snap.IsLoading)
	assert.True(t, snap.IsInitialized)
}

func TestFetchRecoversPanickingBackend(t *testing.T) {
	s := New[models.Hotel, HotelDraft](panicBackend{}, HotelSchema, Options[models.Hotel, HotelDraft]{})

	err := s.Fetch(context.Background())
	require.Error(t, err)
	assert.False(t, s.Snapshot().IsLoading)
}

type panicBackend struct{}

func (panicBackend) List(context.Context) ([]models.Hotel, error) { panic("boom") }
func (panicBackend) Create(context.Context, HotelDraft) (models.Hotel, error) {
	panic("boom")
}

type gatedHotels struct {
	release chan struct{}
	calls   chan int
	mu      sync.Mutex
	n       int
}

func (g *gatedHotels) List(context.Context) ([]models.Hotel, error) {
	g.mu.Lock()
	g.n++
	n := g.n
	g.mu.Unlock()
	g.calls <- n
	if n == 1 {
		<-g.release
		return []models.Hotel{{ID: "stale"}}, nil
	}
	return []models.Hotel{{ID: "fresh"}}, nil
}

func (g *gatedHotels) Create(context.Context, HotelDraft) (models.Hotel, error) {
	return models.Hotel{}, nil
}

func TestStaleFetchIsDropped(t *testing.T) {
	backend := &gatedHotels{release: make(chan struct{}), calls: make(chan int, 2)}
	s := NewHotelStore(backend, nil)

	firstDone := make(chan error, 1)
	go func() { firstDone <- s.Fetch(context.Background()) }()
	require.Equal(t, 1, <-backend.calls)

	go func() { <-backend.calls }()
	require.NoError(t, s.Fetch(context.Background()))

	close(backend.release)
	assert.ErrorIs(t, <-firstDone, ErrSuperseded)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "fresh", items[0].ID)
}

// slowHotels blocks List until release is closed, serving the list it held
// when the call started.
type slowHotels struct {
	fakeHotels
	release chan struct{}
	started chan struct{}
}

func (s *slowHotels) List(ctx context.Context) ([]models.Hotel, error) {
	items, err := s.fakeHotels.List(ctx)
	s.started <- struct{}{}
	<-s.release
	return items, err
}

func TestFetchStartedBeforeCreateKeepsCreatedItem(t *testing.T) {
	backend := &slowHotels{
		fakeHotels: fakeHotels{items: []models.Hotel{{ID: "h1"}}},
		release:    make(chan struct{}),
		started:    make(chan struct{}, 1),
	}
	s := NewHotelStore(backend, nil)

	fetched := make(chan error, 1)
	go func() { fetched <- s.Fetch(context.Background()) }()
	<-backend.started

	fillValidHotel(t, s)
	_, err := s.Create(context.Background())
	require.NoError(t, err)
	assert.True(t, s.Snapshot().IsLoading, "fetch still in flight")

	close(backend.release)
	assert.ErrorIs(t, <-fetched, ErrSuperseded)

	snap := s.Snapshot()
	assert.False(t, snap.IsLoading)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "h-new", snap.Items[0].ID)
}

func TestResetDiscardsInFlightFetch(t *testing.T) {
	backend := &slowHotels{
		fakeHotels: fakeHotels{items: []models.Hotel{{ID: "h1"}}},
		release:    make(chan struct{}),
		started:    make(chan struct{}, 1),
	}
	s := NewHotelStore(backend, nil)

	fetched := make(chan error, 1)
	go func() { fetched <- s.Fetch(context.Background()) }()
	<-backend.started

	s.Reset()
	close(backend.release)
	assert.ErrorIs(t, <-fetched, ErrSuperseded)

	snap := s.Snapshot()
	assert.False(t, snap.IsLoading)
	assert.False(t, snap.IsInitialized)
	assert.Empty(t, snap.Items)
}

func TestValidateAllErrorMapIsExact(t *testing.T) {
	s := NewHotelStore(&fakeHotels{}, nil)
	require.NoError(t, s.SetField(HotelName, "Riverside"))
	require.NoError(t, s.SetField(HotelEmail, "not-an-email"))

	assert.False(t, s.ValidateAll())
	errs := s.Snapshot().Errors
	assert.Len(t, errs, 3)
	assert.Contains(t, errs, HotelAddress)
	assert.Contains(t, errs, HotelCity)
	assert.Contains(t, errs, HotelEmail)
	assert.NotContains(t, errs, HotelName)

	fillValidHotel(t, s)
	require.NoError(t, s.SetField(HotelEmail, ""))
	assert.True(t, s.ValidateAll())
	assert.Empty(t, s.Snapshot().Errors)
}

func TestValidateFieldClearsEntry(t *testing.T) {
	s := NewHotelStore(&fakeHotels{}, nil)

	assert.False(t, s.ValidateField(HotelName))
	assert.Equal(t, "Hotel name is required", s.Snapshot().Errors[HotelName])

	require.NoError(t, s.SetField(HotelName, "Riverside"))
	assert.True(t, s.ValidateField(HotelName))
	assert.NotContains(t, s.Snapshot().Errors, HotelName)

	assert.False(t, s.ValidateField("nope"))
}

func TestSetFieldUnknown(t *testing.T) {
	s := NewHotelStore(&fakeHotels{}, nil)
	assert.ErrorIs(t, s.SetField("stars", 5), ErrUnknownField)
}

func TestSetFieldDoesNotValidate(t *testing.T) {
	s := NewHotelStore(&fakeHotels{}, nil)
	require.NoError(t, s.SetField(HotelEmail, "bad"))
	assert.Empty(t, s.Snapshot().Errors)
}

func TestCreateInvalidDoesNotCallBackend(t *testing.T) {
	backend := &fakeHotels{}
	s := NewHotelStore(backend, nil)
	require.NoError(t, s.SetField(HotelName, "Riverside"))

	_, err := s.Create(context.Background())
	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindValidation, se.Kind)
	assert.Empty(t, backend.creates)

	snap := s.Snapshot()
	assert.Nil(t, snap.Error)
	assert.Equal(t, "Riverside", snap.Form.Name)
	assert.NotEmpty(t, snap.Errors)
}

func TestCreateSuccessAppendsAndClearsDraft(t *testing.T) {
	backend := &fakeHotels{}
	s := NewHotelStore(backend, []models.Hotel{{ID: "h1"}})
	fillValidHotel(t, s)

	created, err := s.Create(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Riverside", created.Name)

	snap := s.Snapshot()
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "h-new", snap.Items[1].ID)
	assert.Equal(t, HotelDraft{}, snap.Form)
	assert.Equal(t, "Hotel created successfully", snap.Success)
	assert.Nil(t, snap.Error)
	require.Len(t, backend.creates, 1)
	assert.Equal(t, "1 Quay St", backend.creates[0].Address)
}

func TestCreateFailurePreservesDraft(t *testing.T) {
	backend := &fakeHotels{createErr: statusErr{code: 409, msg: "Hotel name already taken"}}
	s := NewHotelStore(backend, nil)
	fillValidHotel(t, s)

	_, err := s.Create(context.Background())
	require.Error(t, err)

	snap := s.Snapshot()
	assert.Empty(t, snap.Items)
	assert.Equal(t, "Riverside", snap.Form.Name)
	require.NotNil(t, snap.Error)
	assert.Equal(t, KindValidation, snap.Error.Kind)
	assert.Equal(t, "Hotel name already taken", snap.Error.Message)
	assert.Empty(t, snap.Success)
}

func TestCreateUnauthorizedIsTagged(t *testing.T) {
	s := NewHotelStore(&fakeHotels{createErr: statusErr{code: 401, msg: "jwt expired"}}, nil)
	fillValidHotel(t, s)

	_, err := s.Create(context.Background())
	assert.Equal(t, KindUnauthorized, Classify(err))
}

func TestResetRestoresInitialState(t *testing.T) {
	initial := []models.Hotel{{ID: "seed"}}
	s := NewHotelStore(&fakeHotels{items: []models.Hotel{{ID: "a"}, {ID: "b"}}}, initial)
	require.NoError(t, s.Fetch(context.Background()))
	require.NoError(t, s.SetField(HotelName, "Draft"))
	s.ValidateAll()

	s.Reset()
	snap := s.Snapshot()
	assert.Equal(t, initial, snap.Items)
	assert.False(t, snap.IsInitialized)
	assert.Equal(t, HotelDraft{}, snap.Form)
	assert.Empty(t, snap.Errors)
}

func TestResetFormAndMessages(t *testing.T) {
	s := NewHotelStore(&fakeHotels{listErr: errors.New("boom")}, nil)
	_ = s.Fetch(context.Background())
	require.NoError(t, s.SetField(HotelName, "Draft"))
	s.ValidateAll()

	s.ResetForm()
	snap := s.Snapshot()
	assert.Equal(t, HotelDraft{}, snap.Form)
	assert.Empty(t, snap.Errors)
	assert.NotNil(t, snap.Error)

	s.ResetMessages()
	assert.Nil(t, s.Snapshot().Error)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewHotelStore(&fakeHotels{}, []models.Hotel{{ID: "h1"}})
	snap := s.Snapshot()
	snap.Items[0].ID = "changed"
	snap.Errors["x"] = "y"

	again := s.Snapshot()
	assert.Equal(t, "h1", again.Items[0].ID)
	assert.Empty(t, again.Errors)
}

func TestHotelsByCity(t *testing.T) {
	s := NewHotelStore(&fakeHotels{}, []models.Hotel{
		{ID: "1", City: "Hanoi"},
		{ID: "2", City: " hanoi "},
		{ID: "3", City: "Da Nang"},
	})
	got := s.HotelsByCity("HANOI")
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "2", got[1].ID)
	assert.Empty(t, s.HotelsByCity("Hue"))
}

func TestNewSchemaPanicsOnDuplicate(t *testing.T) {
	assert.Panics(t, func() {
		NewSchema(
			StringField("a", func(d *HotelDraft) *string { return &d.Name }),
			StringField("a", func(d *HotelDraft) *string { return &d.City }),
		)
	})
	assert.Equal(t, []Field{HotelName, HotelAddress, HotelCity, HotelPhone, HotelEmail, HotelDescription, HotelImage}, HotelSchema.Fields())
	assert.True(t, HotelSchema.Has(HotelImage))
}
