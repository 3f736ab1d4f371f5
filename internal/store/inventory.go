package store

import (
	"github.com/shopspring/decimal"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/models"
)

type InventoryItemDraft struct {
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	Quantity     int             `json:"quantity"`
	MinimumStock int             `json:"minimumStock"`
	UnitCost     decimal.Decimal `json:"unitCost"`
}

const (
	ItemName         Field = "name"
	ItemUnit         Field = "unit"
	ItemQuantity     Field = "quantity"
	ItemMinimumStock Field = "minimumStock"
	ItemUnitCost     Field = "unitCost"
)

var InventoryItemSchema = NewSchema(
	StringField(ItemName, func(d *InventoryItemDraft) *string { return &d.Name }, Required("Item name"), MaxLen("Item name", 120)),
	StringField(ItemUnit, func(d *InventoryItemDraft) *string { return &d.Unit }, Required("Unit")),
	IntField(ItemQuantity, func(d *InventoryItemDraft) *int { return &d.Quantity }, NonNegative("Quantity")),
	IntField(ItemMinimumStock, func(d *InventoryItemDraft) *int { return &d.MinimumStock }, NonNegative("Minimum stock")),
	DecimalField(ItemUnitCost, func(d *InventoryItemDraft) *decimal.Decimal { return &d.UnitCost }, NonNegativeAmount("Unit cost")),
)

type InventoryStore struct {
	*Store[models.InventoryItem, InventoryItemDraft]
}

func NewInventoryStore(backend Backend[models.InventoryItem, InventoryItemDraft], initial []models.InventoryItem) *InventoryStore {
	return &InventoryStore{
		Store: New(backend, InventoryItemSchema, Options[models.InventoryItem, InventoryItemDraft]{
			Entity:  "Inventory item",
			Initial: initial,
		}),
	}
}

// LowStock lists items at or below their minimum stock level.
func (s *InventoryStore) LowStock() []models.InventoryItem {
	return s.Filter(func(i models.InventoryItem) bool {
		return i.Quantity <= i.MinimumStock
	})
}

type InventoryCheckDraft struct {
	ItemID     string `json:"itemId"`
	CountedQty int    `json:"countedQuantity"`
	Note       string `json:"note"`
}

const (
	CheckItemID     Field = "itemId"
	CheckCountedQty Field = "countedQuantity"
	CheckNote       Field = "note"
)

var InventoryCheckSchema = NewSchema(
	StringField(CheckItemID, func(d *InventoryCheckDraft) *string { return &d.ItemID }, Required("Item")),
	IntField(CheckCountedQty, func(d *InventoryCheckDraft) *int { return &d.CountedQty }, NonNegative("Counted quantity")),
	StringField(CheckNote, func(d *InventoryCheckDraft) *string { return &d.Note }, MaxLen("Note", 500)),
)

type InventoryCheckStore struct {
	*Store[models.InventoryCheck, InventoryCheckDraft]
}

func NewInventoryCheckStore(backend Backend[models.InventoryCheck, InventoryCheckDraft], initial []models.InventoryCheck) *InventoryCheckStore {
	return &InventoryCheckStore{
		Store: New(backend, InventoryCheckSchema, Options[models.InventoryCheck, InventoryCheckDraft]{
			Entity:  "Inventory check",
			Initial: initial,
		}),
	}
}

func (s *InventoryCheckStore) ChecksForItem(itemID string) []models.InventoryCheck {
	return s.Filter(func(c models.InventoryCheck) bool {
		return c.ItemID == itemID
	})
}

// Discrepancies lists checks whose count differs from the expected quantity.
func (s *InventoryCheckStore) Discrepancies() []models.InventoryCheck {
	return s.Filter(func(c models.InventoryCheck) bool {
		return c.Discrepancy() != 0
	})
}
