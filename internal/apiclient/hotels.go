package apiclient

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/models"
)

type CreateHotelInput struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

func (c *Client) ListHotels(ctx context.Context) ([]models.Hotel, error) {
	var out []models.Hotel
	err := c.do(ctx, "hotels.list", http.MethodGet, "/hotels", nil, &out)
	return out, err
}

func (c *Client) GetHotel(ctx context.Context, id string) (models.Hotel, error) {
	var out models.Hotel
	err := c.do(ctx, "hotels.get", http.MethodGet, "/hotels/"+escape(id), nil, &out)
	return out, err
}

func (c *Client) CreateHotel(ctx context.Context, in CreateHotelInput) (models.Hotel, error) {
	var out models.Hotel
	err := c.do(ctx, "hotels.create", http.MethodPost, "/hotels", in, &out)
	return out, err
}

type CreateRoomCategoryInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	BasePrice   decimal.Decimal `json:"basePrice"`
	HourlyPrice decimal.Decimal `json:"hourlyPrice"`
	Capacity    int             `json:"capacity"`
}

func (c *Client) ListRoomCategories(ctx context.Context, hotelID string) ([]models.RoomCategory, error) {
	var out []models.RoomCategory
	err := c.do(ctx, "room_categories.list", http.MethodGet, hotelPath(hotelID, "room-categories"), nil, &out)
	return out, err
}

func (c *Client) CreateRoomCategory(ctx context.Context, hotelID string, in CreateRoomCategoryInput) (models.RoomCategory, error) {
	var out models.RoomCategory
	err := c.do(ctx, "room_categories.create", http.MethodPost, hotelPath(hotelID, "room-categories"), in, &out)
	return out, err
}

type CreateRoomInput struct {
	RoomNumber string `json:"roomNumber"`
	CategoryID string `json:"roomCategoryId"`
	Floor      int    `json:"floor"`
	Note       string `json:"note,omitempty"`
}

func (c *Client) ListRooms(ctx context.Context, hotelID string) ([]models.Room, error) {
	var out []models.Room
	err := c.do(ctx, "rooms.list", http.MethodGet, hotelPath(hotelID, "rooms"), nil, &out)
	return out, err
}

func (c *Client) CreateRoom(ctx context.Context, hotelID string, in CreateRoomInput) (models.Room, error) {
	var out models.Room
	err := c.do(ctx, "rooms.create", http.MethodPost, hotelPath(hotelID, "rooms"), in, &out)
	return out, err
}

func hotelPath(hotelID, resource string) string {
	return "/hotels/" + escape(hotelID) + "/" + resource
}
