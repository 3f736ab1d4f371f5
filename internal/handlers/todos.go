package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/apiclient"
)

type todoRequest struct {
	Title     string `form:"title" json:"title" binding:"required,max=200"`
	Completed bool   `form:"completed" json:"completed"`
}

func (h HandlerSet) ListTodos(c *gin.Context) {
	todos, err := h.client(c).ListTodos(c.Request.Context())
	if err != nil {
		h.backendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"page":   "todos",
		"viewer": viewerOf(c),
		"todos":  todos,
	})
}

func (h HandlerSet) GetTodo(c *gin.Context) {
	todo, err := h.client(c).GetTodo(c.Request.Context(), c.Param("todoId"))
	if err != nil {
		h.backendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": todo})
}

func (h HandlerSet) CreateTodo(c *gin.Context) {
	var req todoRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	todo, err := h.client(c).CreateTodo(c.Request.Context(), apiclient.TodoInput{
		Title:     req.Title,
		Completed: req.Completed,
	})
	if err != nil {
		h.backendError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"todo": todo})
}

func (h HandlerSet) UpdateTodo(c *gin.Context) {
	var req todoRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	todo, err := h.client(c).UpdateTodo(c.Request.Context(), c.Param("todoId"), apiclient.TodoInput{
		Title:     req.Title,
		Completed: req.Completed,
	})
	if err != nil {
		h.backendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": todo})
}

func (h HandlerSet) DeleteTodo(c *gin.Context) {
	if err := h.client(c).DeleteTodo(c.Request.Context(), c.Param("todoId")); err != nil {
		h.backendError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
