package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Hotel struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	OwnerID     string    `json:"ownerId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type RoomCategory struct {
	ID          string          `json:"id"`
	HotelID     string          `json:"hotelId"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	BasePrice   decimal.Decimal `json:"basePrice"`
	HourlyPrice decimal.Decimal `json:"hourlyPrice"`
	Capacity    int             `json:"capacity"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusCleaning    RoomStatus = "cleaning"
	RoomStatusMaintenance RoomStatus = "maintenance"
)

type Room struct {
	ID         string     `json:"id"`
	HotelID    string     `json:"hotelId"`
	CategoryID string     `json:"roomCategoryId"`
	RoomNumber string     `json:"roomNumber"`
	Floor      int        `json:"floor"`
	Status     RoomStatus `json:"status"`
	Note       string     `json:"note,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

type InventoryItem struct {
	ID           string          `json:"id"`
	HotelID      string          `json:"hotelId"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	Quantity     int             `json:"quantity"`
	MinimumStock int             `json:"minimumStock"`
	UnitCost     decimal.Decimal `json:"unitCost"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type InventoryCheck struct {
	ID          string    `json:"id"`
	HotelID     string    `json:"hotelId"`
	ItemID      string    `json:"itemId"`
	CountedQty  int       `json:"countedQuantity"`
	ExpectedQty int       `json:"expectedQuantity"`
	Note        string    `json:"note,omitempty"`
	CheckedBy   string    `json:"checkedBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Discrepancy is the counted quantity minus the expected one.
func (c InventoryCheck) Discrepancy() int {
	return c.CountedQty - c.ExpectedQty
}

type Todo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
