package service

import (
	"context"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/apiclient"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/models"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/store"
)

// The adapters below bind a store draft to the matching backend resource.
// Each is built per request with a client already carrying the caller's
// credential.

type UserAPI interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, in apiclient.CreateUserInput) (models.User, error)
}

type UserDirectory struct {
	api UserAPI
}

func NewUserDirectory(api UserAPI) *UserDirectory {
	return &UserDirectory{api: api}
}

func (u *UserDirectory) List(ctx context.Context) ([]models.User, error) {
	return u.api.ListUsers(ctx)
}

func (u *UserDirectory) Create(ctx context.Context, d store.UserDraft) (models.User, error) {
	return u.api.CreateUser(ctx, apiclient.CreateUserInput{
		Name:     d.Name,
		Email:    d.Email,
		Password: d.Password,
		Phone:    d.Phone,
		Role:     models.UserRole(d.Role),
	})
}

type RoomCategoryAPI interface {
	ListRoomCategories(ctx context.Context, hotelID string) ([]models.RoomCategory, error)
	CreateRoomCategory(ctx context.Context, hotelID string, in apiclient.CreateRoomCategoryInput) (models.RoomCategory, error)
}

type RoomCategories struct {
	api     RoomCategoryAPI
	hotelID string
}

func NewRoomCategories(api RoomCategoryAPI, hotelID string) *RoomCategories {
	return &RoomCategories{api: api, hotelID: hotelID}
}

func (r *RoomCategories) List(ctx context.Context) ([]models.RoomCategory, error) {
	return r.api.ListRoomCategories(ctx, r.hotelID)
}

func (r *RoomCategories) Create(ctx context.Context, d store.RoomCategoryDraft) (models.RoomCategory, error) {
	return r.api.CreateRoomCategory(ctx, r.hotelID, apiclient.CreateRoomCategoryInput{
		Name:        d.Name,
		Description: d.Description,
		BasePrice:   d.BasePrice,
		HourlyPrice: d.HourlyPrice,
		Capacity:    d.Capacity,
	})
}

type RoomAPI interface {
	ListRooms(ctx context.Context, hotelID string) ([]models.Room, error)
	CreateRoom(ctx context.Context, hotelID string, in apiclient.CreateRoomInput) (models.Room, error)
}

type Rooms struct {
	api     RoomAPI
	hotelID string
}

func NewRooms(api RoomAPI, hotelID string) *Rooms {
	return &Rooms{api: api, hotelID: hotelID}
}

func (r *Rooms) List(ctx context.Context) ([]models.Room, error) {
	return r.api.ListRooms(ctx, r.hotelID)
}

func (r *Rooms) Create(ctx context.Context, d store.RoomDraft) (models.Room, error) {
	return r.api.CreateRoom(ctx, r.hotelID, apiclient.CreateRoomInput{
		RoomNumber: d.RoomNumber,
		CategoryID: d.CategoryID,
		Floor:      d.Floor,
		Note:       d.Note,
	})
}

type InventoryAPI interface {
	ListInventory(ctx context.Context, hotelID string) ([]models.InventoryItem, error)
	CreateInventoryItem(ctx context.Context, hotelID string, in apiclient.CreateInventoryItemInput) (models.InventoryItem, error)
	ListInventoryChecks(ctx context.Context, hotelID string) ([]models.InventoryCheck, error)
	CreateInventoryCheck(ctx context.Context, hotelID string, in apiclient.CreateInventoryCheckInput) (models.InventoryCheck, error)
}

type Inventory struct {
	api     InventoryAPI
	hotelID string
}

func NewInventory(api InventoryAPI, hotelID string) *Inventory {
	return &Inventory{api: api, hotelID: hotelID}
}

func (i *Inventory) List(ctx context.Context) ([]models.InventoryItem, error) {
	return i.api.ListInventory(ctx, i.hotelID)
}

func (i *Inventory) Create(ctx context.Context, d store.InventoryItemDraft) (models.InventoryItem, error) {
	return i.api.CreateInventoryItem(ctx, i.hotelID, apiclient.CreateInventoryItemInput{
		Name:         d.Name,
		Unit:         d.Unit,
		Quantity:     d.Quantity,
		MinimumStock: d.MinimumStock,
		UnitCost:     d.UnitCost,
	})
}

// Checks exposes the inventory-check resource of the same hotel.
func (i *Inventory) Checks() *InventoryChecks {
	return &InventoryChecks{api: i.api, hotelID: i.hotelID}
}

type InventoryChecks struct {
	api     InventoryAPI
	hotelID string
}

func (c *InventoryChecks) List(ctx context.Context) ([]models.InventoryCheck, error) {
	return c.api.ListInventoryChecks(ctx, c.hotelID)
}

func (c *InventoryChecks) Create(ctx context.Context, d store.InventoryCheckDraft) (models.InventoryCheck, error) {
	return c.api.CreateInventoryCheck(ctx, c.hotelID, apiclient.CreateInventoryCheckInput{
		ItemID:     d.ItemID,
		CountedQty: d.CountedQty,
		Note:       d.Note,
	})
}
