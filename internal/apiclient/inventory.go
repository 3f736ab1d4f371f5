package apiclient

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/models"
)

type CreateInventoryItemInput struct {
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	Quantity     int             `json:"quantity"`
	MinimumStock int             `json:"minimumStock"`
	UnitCost     decimal.Decimal `json:"unitCost"`
}

func (c *Client) ListInventory(ctx context.Context, hotelID string) ([]models.InventoryItem, error) {
	var out []models.InventoryItem
	err := c.do(ctx, "inventory.list", http.MethodGet, hotelPath(hotelID, "inventory"), nil, &out)
	return out, err
}

func (c *Client) CreateInventoryItem(ctx context.Context, hotelID string, in CreateInventoryItemInput) (models.InventoryItem, error) {
	var out models.InventoryItem
	err := c.do(ctx, "inventory.create", http.MethodPost, hotelPath(hotelID, "inventory"), in, &out)
	return out, err
}

type CreateInventoryCheckInput struct {
	ItemID     string `json:"itemId"`
	CountedQty int    `json:"countedQuantity"`
	Note       string `json:"note,omitempty"`
}

func (c *Client) ListInventoryChecks(ctx context.Context, hotelID string) ([]models.InventoryCheck, error) {
	var out []models.InventoryCheck
	err := c.do(ctx, "inventory_checks.list", http.MethodGet, hotelPath(hotelID, "inventory-checks"), nil, &out)
	return out, err
}

func (c *Client) CreateInventoryCheck(ctx context.Context, hotelID string, in CreateInventoryCheckInput) (models.InventoryCheck, error) {
	var out models.InventoryCheck
	err := c.do(ctx, "inventory_checks.create", http.MethodPost, hotelPath(hotelID, "inventory-checks"), in, &out)
	return out, err
}
