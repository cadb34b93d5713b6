package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

type Role struct {
	gorm.Model
	Name        string         `json:"name" binding:"required" gorm:"size:191;uniqueIndex;not null"`
	Permissions datatypes.JSON `json:"permissions"`
}

type User struct {
	gorm.Model
	FullName string `json:"fullName" binding:"required" gorm:"size:191;not null"`
	Email    string `json:"email" binding:"required,email" gorm:"size:191;uniqueIndex;not null"`
	Phone    string `json:"phone"`
	Password string `json:"-" gorm:"not null"`
	RoleID   *uint  `json:"roleId"`
	Role     *Role  `json:"role,omitempty"`

	// NewPassword carries a plain-text password from admin forms; it is hashed into Password.
	NewPassword string `json:"password,omitempty" gorm:"-" binding:"omitempty,min=8"`
}

type SignupData struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
