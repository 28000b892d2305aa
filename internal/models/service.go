package models

import "time"

// ServiceSection groups services in the catalog ("Coupes femmes", ...).
type ServiceSection struct {
	ID    string `bson:"id" json:"id"`
	Title string `bson:"title" json:"title"`
}

// Service is one bookable salon service.
type Service struct {
	ID              string  `bson:"id" json:"id"`
	Title           string  `bson:"title" json:"title"`
	Description     string  `bson:"description,omitempty" json:"description,omitempty"`
	Duration        int     `bson:"duration" json:"duration"` // minutes
	OriginalPrice   float64 `bson:"originalPrice" json:"originalPrice"`
	DiscountedPrice float64 `bson:"discountedPrice,omitempty" json:"discountedPrice,omitempty"`
	Discount        int     `bson:"discount,omitempty" json:"discount,omitempty"` // percent, e.g. -15
	SectionID       string  `bson:"sectionId" json:"sectionId"`
}

// EffectivePrice returns the discounted price when one is set.
func (s *Service) EffectivePrice() float64 {
	if s.DiscountedPrice > 0 {
		return s.DiscountedPrice
	}
	return s.OriginalPrice
}

// PushToken is a registered device token for booking notifications.
type PushToken struct {
	ID        string    `bson:"id" json:"id"`
	Token     string    `bson:"token" json:"token"`
	Platform  string    `bson:"platform,omitempty" json:"platform,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
