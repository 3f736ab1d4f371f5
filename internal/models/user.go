package models

import "time"

type UserRole string

const (
	UserRoleAdmin        UserRole = "admin"
	UserRoleManager      UserRole = "manager"
	UserRoleReceptionist UserRole = "receptionist"
	UserRoleStaff        UserRole = "staff"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusPending   UserStatus = "pending"
)

type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone,omitempty"`
	Role      UserRole   `json:"role"`
	Status    UserStatus `json:"status,omitempty"`
	AvatarURL string     `json:"avatarUrl,omitempty"`
	HotelID   string     `json:"hotelId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Session is the server-side record behind a session cookie. AccessToken is the
// opaque backend credential and never leaves the web tier.
type Session struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	DeviceID    string    `json:"deviceId"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Role        UserRole  `json:"role"`
	AccessToken string    `json:"accessToken"`
	IPAddress   string    `json:"ipAddress"`
	UserAgent   string    `json:"userAgent"`
	CreatedAt   time.Time `json:"createdAt"`
	LastSeenAt  time.Time `json:"lastSeenAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}
