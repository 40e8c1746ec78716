package domain

import "time"

type UserRole string

const (
	RoleGuest    UserRole = "guest"
	RoleMerchant UserRole = "merchant"
	RoleAdmin    UserRole = "admin"
)

// User is the account an access token is issued for. Login and
// registration live outside this service; the table is read for seeding
// and for resolving merchant ownership.
type User struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null" validate:"required,email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Role      UserRole  `json:"role" gorm:"type:varchar(20);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
