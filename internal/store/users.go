package store

import (
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/models"
)

type UserDraft struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

const (
	UserName     Field = "name"
	UserEmail    Field = "email"
	UserPassword Field = "password"
	UserPhone    Field = "phone"
	UserRole     Field = "role"
)

var UserSchema = NewSchema(
	StringField(UserName, func(d *UserDraft) *string { return &d.Name }, Required("Name"), MaxLen("Name", 100)),
	StringField(UserEmail, func(d *UserDraft) *string { return &d.Email }, Required("Email"), Email("Email")),
	StringField(UserPassword, func(d *UserDraft) *string { return &d.Password }, Required("Password"), MinLen("Password", 8)),
	StringField(UserPhone, func(d *UserDraft) *string { return &d.Phone }, Phone("Phone")),
	StringField(UserRole, func(d *UserDraft) *string { return &d.Role }, OneOf("Role",
		string(models.UserRoleManager),
		string(models.UserRoleReceptionist),
		string(models.UserRoleStaff),
	)),
)

type UserStore struct {
	*Store[models.User, UserDraft]
}

func NewUserStore(backend Backend[models.User, UserDraft], initial []models.User) *UserStore {
	return &UserStore{
		Store: New(backend, UserSchema, Options[models.User, UserDraft]{
			Entity:  "User",
			Initial: initial,
			Draft: func() UserDraft {
				return UserDraft{Role: string(models.UserRoleStaff)}
			},
		}),
	}
}

func (s *UserStore) UsersByRole(role models.UserRole) []models.User {
	return s.Filter(func(u models.User) bool {
		return u.Role == role
	})
}
