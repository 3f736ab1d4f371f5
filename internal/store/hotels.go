package store

import (
	"strings"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/models"
)

type HotelDraft struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Description string `json:"description"`
	Image       *Image `json:"image,omitempty"`
}

const (
	HotelName        Field = "name"
	HotelAddress     Field = "address"
	HotelCity        Field = "city"
	HotelPhone       Field = "phone"
	HotelEmail       Field = "email"
	HotelDescription Field = "description"
	HotelImage       Field = "image"
)

var HotelSchema = NewSchema(
	StringField(HotelName, func(d *HotelDraft) *string { return &d.Name }, Required("Hotel name"), MaxLen("Hotel name", 120)),
	StringField(HotelAddress, func(d *HotelDraft) *string { return &d.Address }, Required("Address")),
	StringField(HotelCity, func(d *HotelDraft) *string { return &d.City }, Required("City")),
	StringField(HotelPhone, func(d *HotelDraft) *string { return &d.Phone }, Phone("Phone")),
	StringField(HotelEmail, func(d *HotelDraft) *string { return &d.Email }, Email("Email")),
	StringField(HotelDescription, func(d *HotelDraft) *string { return &d.Description }, MaxLen("Description", 2000)),
	ImageField(HotelImage, func(d *HotelDraft) **Image { return &d.Image }, ImageRule("Hotel image", MaxImageBytes)),
)

type HotelStore struct {
	*Store[models.Hotel, HotelDraft]
}

func NewHotelStore(backend Backend[models.Hotel, HotelDraft], initial []models.Hotel) *HotelStore {
	return &HotelStore{
		Store: New(backend, HotelSchema, Options[models.Hotel, HotelDraft]{
			Entity:  "Hotel",
			Initial: initial,
		}),
	}
}

// HotelsByCity matches the city case-insensitively.
func (s *HotelStore) HotelsByCity(city string) []models.Hotel {
	city = strings.TrimSpace(city)
	return s.Filter(func(h models.Hotel) bool {
		return strings.EqualFold(strings.TrimSpace(h.City), city)
	})
}
