package apiclient

import (
	"context"
	"net/http"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/models"
)

type TodoInput struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

func (c *Client) ListTodos(ctx context.Context) ([]models.Todo, error) {
	var out []models.Todo
	err := c.do(ctx, "todos.list", http.MethodGet, "/todos", nil, &out)
	return out, err
}

func (c *Client) GetTodo(ctx context.Context, id string) (models.Todo, error) {
	var out models.Todo
	err := c.do(ctx, "todos.get", http.MethodGet, "/todos/"+escape(id), nil, &out)
	return out, err
}

func (c *Client) CreateTodo(ctx context.Context, in TodoInput) (models.Todo, error) {
	var out models.Todo
	err := c.do(ctx, "todos.create", http.MethodPost, "/todos", in, &out)
	return out, err
}

func (c *Client) UpdateTodo(ctx context.Context, id string, in TodoInput) (models.Todo, error) {
	var out models.Todo
	err := c.do(ctx, "todos.update", http.MethodPut, "/todos/"+escape(id), in, &out)
	return out, err
}

func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	return c.do(ctx, "todos.delete", http.MethodDelete, "/todos/"+escape(id), nil, nil)
}
