package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryFashion     Category = "Fashion"
	CategoryBooks       Category = "Books"
	CategoryHome        Category = "Home"
	CategorySports      Category = "Sports"
	CategoryOther       Category = "Other"
)

type Product struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Price       decimal.Decimal    `json:"price" bson:"price"`
	Category    Category           `json:"category" bson:"category"`
	Image       string             `json:"image" bson:"image"`
	Stock       int                `json:"stock" bson:"stock"`
	Rating      float64            `json:"rating" bson:"rating"`
	NumReviews  int                `json:"numReviews" bson:"numReviews"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}

// ProductUpdate carries a partial update; nil fields are left untouched.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Category    *Category
	Image       *string
	Stock       *int
	Rating      *float64
	NumReviews  *int
}

// Apply copies the non-nil fields onto p.
func (u ProductUpdate) Apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Image != nil {
		p.Image = *u.Image
	}
	if u.Stock != nil {
		p.Stock = *u.Stock
	}
	if u.Rating != nil {
		p.Rating = *u.Rating
	}
	if u.NumReviews != nil {
		p.NumReviews = *u.NumReviews
	}
}

// ProductQuery filters and pages the catalog. Sort is "field" or "field:desc".
type ProductQuery struct {
	Category Category
	Search   string
	Sort     string
	Page     int64
	Limit    int64
}
