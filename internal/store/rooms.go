package store

import (
	"github.com/shopspring/decimal"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/models"
)

type RoomCategoryDraft struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	BasePrice   decimal.Decimal `json:"basePrice"`
	HourlyPrice decimal.Decimal `json:"hourlyPrice"`
	Capacity    int             `json:"capacity"`
}

const (
	CategoryName        Field = "name"
	CategoryDescription Field = "description"
	CategoryBasePrice   Field = "basePrice"
	CategoryHourlyPrice Field = "hourlyPrice"
	CategoryCapacity    Field = "capacity"
)

var RoomCategorySchema = NewSchema(
	StringField(CategoryName, func(d *RoomCategoryDraft) *string { return &d.Name }, Required("Category name"), MaxLen("Category name", 80)),
	StringField(CategoryDescription, func(d *RoomCategoryDraft) *string { return &d.Description }, MaxLen("Description", 1000)),
	DecimalField(CategoryBasePrice, func(d *RoomCategoryDraft) *decimal.Decimal { return &d.BasePrice }, PositiveAmount("Base price")),
	DecimalField(CategoryHourlyPrice, func(d *RoomCategoryDraft) *decimal.Decimal { return &d.HourlyPrice }, NonNegativeAmount("Hourly price")),
	IntField(CategoryCapacity, func(d *RoomCategoryDraft) *int { return &d.Capacity }, Positive("Capacity")),
)

type RoomCategoryStore struct {
	*Store[models.RoomCategory, RoomCategoryDraft]
}

func NewRoomCategoryStore(backend Backend[models.RoomCategory, RoomCategoryDraft], initial []models.RoomCategory) *RoomCategoryStore {
	return &RoomCategoryStore{
		Store: New(backend, RoomCategorySchema, Options[models.RoomCategory, RoomCategoryDraft]{
			Entity:  "Room category",
			Initial: initial,
			Draft: func() RoomCategoryDraft {
				return RoomCategoryDraft{Capacity: 2}
			},
		}),
	}
}

// CategoriesWithinBudget returns categories whose base price does not exceed budget.
func (s *RoomCategoryStore) CategoriesWithinBudget(budget decimal.Decimal) []models.RoomCategory {
	return s.Filter(func(c models.RoomCategory) bool {
		return c.BasePrice.LessThanOrEqual(budget)
	})
}

type RoomDraft struct {
	RoomNumber string `json:"roomNumber"`
	CategoryID string `json:"roomCategoryId"`
	Floor      int    `json:"floor"`
	Note       string `json:"note"`
}

const (
	RoomNumber     Field = "roomNumber"
	RoomCategoryID Field = "roomCategoryId"
	RoomFloor      Field = "floor"
	RoomNote       Field = "note"
)

var RoomSchema = NewSchema(
	StringField(RoomNumber, func(d *RoomDraft) *string { return &d.RoomNumber }, Required("Room number"), MaxLen("Room number", 20)),
	StringField(RoomCategoryID, func(d *RoomDraft) *string { return &d.CategoryID }, Required("Room category")),
	IntField(RoomFloor, func(d *RoomDraft) *int { return &d.Floor }, NonNegative("Floor")),
	StringField(RoomNote, func(d *RoomDraft) *string { return &d.Note }, MaxLen("Note", 500)),
)

type RoomStore struct {
	*Store[models.Room, RoomDraft]
}

func NewRoomStore(backend Backend[models.Room, RoomDraft], initial []models.Room) *RoomStore {
	return &RoomStore{
		Store: New(backend, RoomSchema, Options[models.Room, RoomDraft]{
			Entity:  "Room",
			Initial: initial,
		}),
	}
}

func (s *RoomStore) RoomsByCategory(categoryID string) []models.Room {
	return s.Filter(func(r models.Room) bool {
		return r.CategoryID == categoryID
	})
}

func (s *RoomStore) RoomsByStatus(status models.RoomStatus) []models.Room {
	return s.Filter(func(r models.Room) bool {
		return r.Status == status
	})
}
