package models

import "gorm.io/gorm"

type Brand struct {
	gorm.Model
	Name string `json:"name" binding:"required" gorm:"size:191;uniqueIndex;not null"`
}

type Category struct {
	gorm.Model
	Name string `json:"name" binding:"required" gorm:"size:191;uniqueIndex;not null"`
}

type Color struct {
	gorm.Model
	Name string `json:"name" binding:"required" gorm:"size:191;uniqueIndex;not null"`
}

type Cpu struct {
	gorm.Model
	Name string `json:"name" binding:"required" gorm:"size:191;uniqueIndex;not null"`
}

type Gpu struct {
	gorm.Model
	Name string `json:"name" binding:"required" gorm:"size:191;uniqueIndex;not null"`
}

type OperatingSystem struct {
	gorm.Model
	Name string `json:"name" binding:"required" gorm:"size:191;uniqueIndex;not null"`
}

type Storage struct {
	gorm.Model
	Title string `json:"title" binding:"required" gorm:"size:191;uniqueIndex;not null"`
}

type Ram struct {
	gorm.Model
	Title string `json:"title" binding:"required" gorm:"size:191;uniqueIndex;not null"`
}
