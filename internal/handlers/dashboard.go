package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/apiclient"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/models"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/service"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/store"
)

func (h HandlerSet) hotelStore(c *gin.Context) *store.HotelStore {
	catalog := service.NewHotelCatalog(h.client(c), h.images, h.tasks, h.log)
	return store.NewHotelStore(catalog, nil)
}

func (h HandlerSet) Dashboard(c *gin.Context) {
	api := h.client(c)
	hotels := h.hotelStore(c)

	var me models.User
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		me, err = api.Me(ctx)
		return err
	})
	g.Go(func() error {
		return hotels.Fetch(ctx)
	})
	err := g.Wait()

	writeStore(h, c, "dashboard", http.StatusOK, hotels.Store, err, gin.H{"user": me})
}

func (h HandlerSet) ListHotels(c *gin.Context) {
	hotels := h.hotelStore(c)
	err := hotels.Fetch(c.Request.Context())

	extra := gin.H{}
	if city := c.Query("city"); city != "" {
		extra["filtered"] = hotels.HotelsByCity(city)
	}
	writeStore(h, c, "hotels", http.StatusOK, hotels.Store, err, extra)
}

func (h HandlerSet) CreateHotel(c *gin.Context) {
	hotels := h.hotelStore(c)
	if err := bindFields(c, hotels.Store, store.HotelImage); err != nil {
		badRequest(c, err)
		return
	}

	created, err := hotels.Create(c.Request.Context())
	writeStore(h, c, "hotels", http.StatusCreated, hotels.Store, err, gin.H{"created": created})
}

func (h HandlerSet) userStore(c *gin.Context) *store.UserStore {
	return store.NewUserStore(service.NewUserDirectory(h.client(c)), nil)
}

func (h HandlerSet) ListUsers(c *gin.Context) {
	users := h.userStore(c)
	err := users.Fetch(c.Request.Context())

	extra := gin.H{}
	if role := c.Query("role"); role != "" {
		extra["filtered"] = users.UsersByRole(models.UserRole(role))
	}
	writeStore(h, c, "users", http.StatusOK, users.Store, err, extra)
}

func (h HandlerSet) CreateUser(c *gin.Context) {
	users := h.userStore(c)
	if err := bindFields(c, users.Store, ""); err != nil {
		badRequest(c, err)
		return
	}

	created, err := users.Create(c.Request.Context())
	writeStore(h, c, "users", http.StatusCreated, users.Store, err, gin.H{"created": created})
}

func (h HandlerSet) Profile(c *gin.Context) {
	me, err := h.client(c).Me(c.Request.Context())
	if err != nil {
		h.backendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"page":   "profile",
		"viewer": viewerOf(c),
		"user":   me,
	})
}

type updateProfileRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=100"`
	Phone     *string `json:"phone" binding:"omitempty,max=20"`
	AvatarURL *string `json:"avatarUrl" binding:"omitempty,url"`
}

func (h HandlerSet) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.client(c).UpdateMe(c.Request.Context(), apiclient.UpdateProfileInput{
		Name:      req.Name,
		Phone:     req.Phone,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		h.backendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"page":    "profile",
		"user":    user,
		"success": "Profile updated successfully",
	})
}
