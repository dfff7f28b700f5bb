package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices are stored as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type RoomVariant string

const (
	RoomVariantStandard RoomVariant = "Standard"
	RoomVariantDeluxe   RoomVariant = "Deluxe"
	RoomVariantSuite    RoomVariant = "Suite"
)

// DiscountThreshold is the night count a stay must exceed to get the variant discount.
const DiscountThreshold = 3

// VariantSpec holds everything a variant fixes about a room.
type VariantSpec struct {
	Capacity  int
	BasePrice decimal.Decimal
	Amenities []string
	// Multiplier applied to the total when nights > DiscountThreshold.
	Discount decimal.Decimal
}

var variantSpecs = map[RoomVariant]VariantSpec{
	RoomVariantStandard: {
		Capacity:  2,
		BasePrice: decimal.NewFromInt(500000),
		Amenities: []string{"Single Bed", "WiFi", "TV", "AC", "Bathroom"},
		Discount:  decimal.NewFromInt(1),
	},
	RoomVariantDeluxe: {
		Capacity:  3,
		BasePrice: decimal.NewFromInt(800000),
		Amenities: []string{"Queen Bed", "Premium WiFi", "Smart TV", "AC", "Bathroom+Bathtub", "Mini Bar", "Balcony"},
		Discount:  decimal.RequireFromString("0.90"),
	},
	RoomVariantSuite: {
		Capacity:  4,
		BasePrice: decimal.NewFromInt(1500000),
		Amenities: []string{"King Bed", "Premium WiFi", `55" Smart TV`, "AC", "Premium Bathroom+Jacuzzi", "Premium Mini Bar", "Living Room", "Balcony", "Breakfast Included"},
		Discount:  decimal.RequireFromString("0.85"),
	},
}

// RoomVariants lists the variants in catalog order.
func RoomVariants() []RoomVariant {
	return []RoomVariant{RoomVariantStandard, RoomVariantDeluxe, RoomVariantSuite}
}

func ParseRoomVariant(tag string) (RoomVariant, error) {
	v := RoomVariant(tag)
	if !v.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRoomType, tag)
	}
	return v, nil
}

func (v RoomVariant) Valid() bool {
	_, ok := variantSpecs[v]
	return ok
}

// Spec returns the variant's fixed attributes. The zero spec is returned for unknown variants.
func (v RoomVariant) Spec() VariantSpec {
	spec, ok := variantSpecs[v]
	if !ok {
		return VariantSpec{}
	}
	spec.Amenities = append([]string(nil), spec.Amenities...)
	return spec
}

type Room struct {
	ID          string          `json:"room_id"`
	Number      string          `json:"room_number"`
	Type        RoomVariant     `json:"room_type"`
	Capacity    int             `json:"capacity"`
	BasePrice   decimal.Decimal `json:"base_price"`
	IsAvailable bool            `json:"is_available"`
	Amenities   []string        `json:"amenities"`
}

// NewRoom builds an available room with the attributes fixed by variant.
func NewRoom(id, number string, variant RoomVariant) Room {
	spec := variant.Spec()
	return Room{
		ID:          id,
		Number:      number,
		Type:        variant,
		Capacity:    spec.Capacity,
		BasePrice:   spec.BasePrice,
		IsAvailable: true,
		Amenities:   spec.Amenities,
	}
}

func (r Room) String() string {
	return fmt.Sprintf("%s - Room %s (Capacity: %d)", r.Type, r.Number, r.Capacity)
}
