package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/middleware"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/models"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/service"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/store"
)

// HotelHome sends receptionists to the front desk and everyone else to the
// overview.
func (h HandlerSet) HotelHome(c *gin.Context) {
	target := "overview"
	if sess, ok := middleware.CurrentSession(c); ok && sess.Role == models.UserRoleReceptionist {
		target = "receptionist"
	}
	c.Redirect(http.StatusTemporaryRedirect, "/hotels/"+url.PathEscape(c.Param("id"))+"/"+target)
}

func (h HandlerSet) HotelOverview(c *gin.Context) {
	hotelID := c.Param("id")
	api := h.client(c)
	categories := store.NewRoomCategoryStore(service.NewRoomCategories(api, hotelID), nil)
	rooms := store.NewRoomStore(service.NewRooms(api, hotelID), nil)
	inventory := store.NewInventoryStore(service.NewInventory(api, hotelID), nil)

	var hotel models.Hotel
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		hotel, err = api.GetHotel(ctx, hotelID)
		return err
	})
	g.Go(func() error { return categories.Fetch(ctx) })
	g.Go(func() error { return rooms.Fetch(ctx) })
	g.Go(func() error { return inventory.Fetch(ctx) })
	if err := g.Wait(); err != nil {
		h.backendError(c, err)
		return
	}

	occupancy := make(map[models.RoomStatus]int)
	for _, room := range rooms.Items() {
		occupancy[room.Status]++
	}

	c.JSON(http.StatusOK, gin.H{
		"page":       "overview",
		"viewer":     viewerOf(c),
		"hotel":      hotel,
		"categories": categories.Items(),
		"roomCount":  len(rooms.Items()),
		"occupancy":  occupancy,
		"lowStock":   inventory.LowStock(),
	})
}

func (h HandlerSet) Receptionist(c *gin.Context) {
	hotelID := c.Param("id")
	api := h.client(c)
	categories := store.NewRoomCategoryStore(service.NewRoomCategories(api, hotelID), nil)
	rooms := store.NewRoomStore(service.NewRooms(api, hotelID), nil)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error { return categories.Fetch(ctx) })
	g.Go(func() error { return rooms.Fetch(ctx) })
	err := g.Wait()

	writeStore(h, c, "receptionist", http.StatusOK, rooms.Store, err, gin.H{
		"categories": categories.Items(),
		"available":  rooms.RoomsByStatus(models.RoomStatusAvailable),
		"occupied":   rooms.RoomsByStatus(models.RoomStatusOccupied),
		"cleaning":   rooms.RoomsByStatus(models.RoomStatusCleaning),
	})
}

func (h HandlerSet) roomCategoryStore(c *gin.Context) *store.RoomCategoryStore {
	return store.NewRoomCategoryStore(service.NewRoomCategories(h.client(c), c.Param("id")), nil)
}

func (h HandlerSet) ListRoomCategories(c *gin.Context) {
	categories := h.roomCategoryStore(c)
	err := categories.Fetch(c.Request.Context())

	extra := gin.H{}
	if raw := c.Query("budget"); raw != "" {
		budget, perr := decimal.NewFromString(raw)
		if perr != nil {
			badRequest(c, perr)
			return
		}
		extra["filtered"] = categories.CategoriesWithinBudget(budget)
	}
	writeStore(h, c, "room-categories", http.StatusOK, categories.Store, err, extra)
}

func (h HandlerSet) CreateRoomCategory(c *gin.Context) {
	categories := h.roomCategoryStore(c)
	if err := bindFields(c, categories.Store, ""); err != nil {
		badRequest(c, err)
		return
	}

	created, err := categories.Create(c.Request.Context())
	writeStore(h, c, "room-categories", http.StatusCreated, categories.Store, err, gin.H{"created": created})
}

func (h HandlerSet) roomStore(c *gin.Context) *store.RoomStore {
	return store.NewRoomStore(service.NewRooms(h.client(c), c.Param("id")), nil)
}

func (h HandlerSet) ListRooms(c *gin.Context) {
	rooms := h.roomStore(c)
	err := rooms.Fetch(c.Request.Context())

	extra := gin.H{}
	if categoryID := c.Query("categoryId"); categoryID != "" {
		extra["filtered"] = rooms.RoomsByCategory(categoryID)
	}
	writeStore(h, c, "rooms", http.StatusOK, rooms.Store, err, extra)
}

func (h HandlerSet) CreateRoom(c *gin.Context) {
	rooms := h.roomStore(c)
	if err := bindFields(c, rooms.Store, ""); err != nil {
		badRequest(c, err)
		return
	}

	created, err := rooms.Create(c.Request.Context())
	writeStore(h, c, "rooms", http.StatusCreated, rooms.Store, err, gin.H{"created": created})
}

func (h HandlerSet) inventoryStore(c *gin.Context) *store.InventoryStore {
	return store.NewInventoryStore(service.NewInventory(h.client(c), c.Param("id")), nil)
}

func (h HandlerSet) ListInventory(c *gin.Context) {
	inventory := h.inventoryStore(c)
	err := inventory.Fetch(c.Request.Context())
	writeStore(h, c, "inventory", http.StatusOK, inventory.Store, err, gin.H{
		"lowStock": inventory.LowStock(),
	})
}

func (h HandlerSet) CreateInventoryItem(c *gin.Context) {
	inventory := h.inventoryStore(c)
	if err := bindFields(c, inventory.Store, ""); err != nil {
		badRequest(c, err)
		return
	}

	created, err := inventory.Create(c.Request.Context())
	writeStore(h, c, "inventory", http.StatusCreated, inventory.Store, err, gin.H{"created": created})
}

func (h HandlerSet) inventoryCheckStore(c *gin.Context) *store.InventoryCheckStore {
	backend := service.NewInventory(h.client(c), c.Param("id")).Checks()
	return store.NewInventoryCheckStore(backend, nil)
}

func (h HandlerSet) ListInventoryChecks(c *gin.Context) {
	checks := h.inventoryCheckStore(c)
	err := checks.Fetch(c.Request.Context())

	extra := gin.H{"discrepancies": checks.Discrepancies()}
	if itemID := c.Query("itemId"); itemID != "" {
		extra["filtered"] = checks.ChecksForItem(itemID)
	}
	writeStore(h, c, "inventory-checks", http.StatusOK, checks.Store, err, extra)
}

func (h HandlerSet) CreateInventoryCheck(c *gin.Context) {
	checks := h.inventoryCheckStore(c)
	if err := bindFields(c, checks.Store, ""); err != nil {
		badRequest(c, err)
		return
	}

	created, err := checks.Create(c.Request.Context())
	writeStore(h, c, "inventory-checks", http.StatusCreated, checks.Store, err, gin.H{"created": created})
}
