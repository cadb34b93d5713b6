package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductImage struct {
	gorm.Model
	Url       string `json:"url" gorm:"size:512;not null"`
	ProductID uint   `json:"productId" gorm:"index;not null"`
}

type Product struct {
	gorm.Model
	Name              string              `json:"name" binding:"required" gorm:"size:191;not null"`
	Description       string              `json:"description"`
	Price             decimal.Decimal     `json:"price" gorm:"type:decimal(12,2);not null"`
	PriceWithDiscount decimal.NullDecimal `json:"priceWithDiscount" gorm:"type:decimal(12,2)"`
	Quantity          int                 `json:"quantity" gorm:"not null;default:0"`
	IsActive          bool                `json:"isActive" gorm:"index;not null"`

	CategoryID        *uint            `json:"categoryId" gorm:"index"`
	Category          *Category        `json:"category,omitempty"`
	BrandID           *uint            `json:"brandId" gorm:"index"`
	Brand             *Brand           `json:"brand,omitempty"`
	ColorID           *uint            `json:"colorId"`
	Color             *Color           `json:"color,omitempty"`
	StorageID         *uint            `json:"storageId"`
	Storage           *Storage         `json:"storage,omitempty"`
	RamID             *uint            `json:"ramId"`
	Ram               *Ram             `json:"ram,omitempty"`
	CpuID             *uint            `json:"cpuId"`
	Cpu               *Cpu             `json:"cpu,omitempty"`
	GpuID             *uint            `json:"gpuId"`
	Gpu               *Gpu             `json:"gpu,omitempty"`
	OperatingSystemID *uint            `json:"operatingSystemId"`
	OperatingSystem   *OperatingSystem `json:"operatingSystem,omitempty"`

	Images []ProductImage `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// EffectivePrice is the discounted price when one is set, the list price otherwise.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.PriceWithDiscount.Valid {
		return p.PriceWithDiscount.Decimal
	}
	return p.Price
}
