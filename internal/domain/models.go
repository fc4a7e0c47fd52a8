package domain

import (
	"strconv"
	"strings"
	"time"
)

// StateKey is the fixed slot key the whole application state lives under.
const StateKey = "revived_goods_state_v1"

// PlaceholderImage is shown for products without images.
const PlaceholderImage = "https://via.placeholder.com/400x300?text=Item"

type Condition string

const (
	LikeNew  Condition = "LIKE_NEW"
	Good     Condition = "GOOD"
	Fair     Condition = "FAIR"
	ForParts Condition = "FOR_PARTS"
	Vintage  Condition = "VINTAGE"
)

// Conditions lists every condition in display order.
var Conditions = []Condition{LikeNew, Good, Fair, ForParts, Vintage}

func (c Condition) Valid() bool {
	for _, v := range Conditions {
		if c == v {
			return true
		}
	}
	return false
}

// Label is the human form, e.g. "LIKE NEW".
func (c Condition) Label() string {
	return strings.Replace(string(c), "_", " ", 1)
}

type ListingType string

const (
	Sell   ListingType = "SELL"
	Donate ListingType = "DONATE"
)

func (t ListingType) Valid() bool { return t == Sell || t == Donate }

type Product struct {
	ID          string      `json:"id" yaml:"id"`
	Title       string      `json:"title" yaml:"title"`
	Images      []string    `json:"images" yaml:"images"`
	Price       int         `json:"price" yaml:"price"` // whole units, 0 = free
	Category    string      `json:"category" yaml:"category"`
	Condition   Condition   `json:"condition" yaml:"condition"`
	Type        ListingType `json:"type" yaml:"type"`
	Description string      `json:"description" yaml:"description"`
	CreatedAt   time.Time   `json:"createdAt,omitzero" yaml:"createdAt,omitempty"`
}

// Created returns CreatedAt, or the Unix epoch when unset.
func (p Product) Created() time.Time {
	if p.CreatedAt.IsZero() {
		return time.Unix(0, 0).UTC()
	}
	return p.CreatedAt
}

// Image returns the first image, which is the only one shown.
func (p Product) Image() string {
	if len(p.Images) > 0 && p.Images[0] != "" {
		return p.Images[0]
	}
	return PlaceholderImage
}

func (p Product) Free() bool { return p.Type == Donate || p.Price <= 0 }

// Badge is the card label: donations and free items read "Free — Donate".
func (p Product) Badge() string {
	if p.Free() {
		return "Free — Donate"
	}
	return p.Condition.Label()
}

func (p Product) PriceLabel() string {
	if p.Price > 0 {
		return "₹" + strconv.Itoa(p.Price)
	}
	return "Free"
}
