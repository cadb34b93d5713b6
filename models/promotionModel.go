package models

import (
	"time"

	"gorm.io/gorm"
)

type Promotion struct {
	gorm.Model
	Name            string    `json:"name" binding:"required" gorm:"size:191;uniqueIndex;not null"`
	DiscountPercent int       `json:"discountPercent" binding:"min=0,max=100"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	IsActive        bool      `json:"isActive"`
}

// ActiveAt reports whether the promotion applies at t.
func (p Promotion) ActiveAt(t time.Time) bool {
	return p.IsActive && !t.Before(p.StartDate) && !t.After(p.EndDate)
}
