// Package cart implements the checkout-session state machine: per-item
// selection, size validation, cart accumulation and total computation.
// Sessions are plain values; persistence is the caller's concern.
package cart

import (
	"strings"
	"time"

	"github.com/club-invaders/fanclub/internal/entity"
	"github.com/club-invaders/fanclub/pkg/errorbank"
)

// Size categories and sleeve types.
const (
	CategoryAdult = "adult"
	CategoryKids  = "kids"

	SleeveShort = "short"
	SleeveLong  = "long"
)

var (
	adultSizes = []string{"XS", "S", "M", "L", "XL", "XXL"}
	kidsSizes  = []string{"4", "6", "8", "10", "12", "14"}
)

// SizesFor returns the selectable sizes for a category.
func SizesFor(category string) []string {
	if category == CategoryKids {
		return append([]string(nil), kidsSizes...)
	}
	return append([]string(nil), adultSizes...)
}

// ValidSize reports whether size belongs to the category's size set.
func ValidSize(category, size string) bool {
	for _, s := range SizesFor(category) {
		if s == size {
			return true
		}
	}
	return false
}

// ValidCategory reports whether category is adult or kids.
func ValidCategory(category string) bool {
	return category == CategoryAdult || category == CategoryKids
}

// ValidSleeve reports whether sleeve is short or long.
func ValidSleeve(sleeve string) bool {
	return sleeve == SleeveShort || sleeve == SleeveLong
}

// Item is one accumulated cart line: a product snapshot plus the chosen
// options and personalisation.
type Item struct {
	ProductName  string `json:"productName"`
	ProductImage string `json:"productImage"`
	Price        string `json:"price"`
	Size         string `json:"size"`
	SizeCategory string `json:"sizeCategory"`
	SleeveType   string `json:"sleeveType"`
	JerseyName   string `json:"jerseyName"`
	JerseyNumber string `json:"jerseyNumber"`
	Quantity     int    `json:"quantity"`
}

// Selection holds the per-item fields being edited before they are added to
// the cart.
type Selection struct {
	Size         string `json:"size"`
	SizeCategory string `json:"sizeCategory"`
	SleeveType   string `json:"sleeveType"`
	JerseyName   string `json:"jerseyName"`
	JerseyNumber string `json:"jerseyNumber"`
	Quantity     int    `json:"quantity"`
}

// Update carries a partial change to the current selection. Nil fields are
// left untouched.
type Update struct {
	Size         *string `json:"size,omitempty"`
	SizeCategory *string `json:"sizeCategory,omitempty"`
	SleeveType   *string `json:"sleeveType,omitempty"`
	JerseyName   *string `json:"jerseyName,omitempty"`
	JerseyNumber *string `json:"jerseyNumber,omitempty"`
	Quantity     *int    `json:"quantity,omitempty"`
}

// Session is one open checkout flow for a single product. It dies on submit
// or close; nothing here is authoritative.
type Session struct {
	ID              string    `json:"id"`
	ProductID       int64     `json:"productId"`
	ProductName     string    `json:"productName"`
	ProductImage    string    `json:"productImage"`
	Price           string    `json:"price"`
	KidsPrice       string    `json:"kidsPrice"`
	CustomerName    string    `json:"customerName"`
	CustomerPhone   string    `json:"customerPhone"`
	TransferSlipURI string    `json:"transferSlipUri,omitempty"`
	Selection       Selection `json:"selection"`
	Items           []Item    `json:"items"`
	CreatedAt       time.Time `json:"createdAt"`
}

// NewSession opens a session for the given product with the selection reset
// to defaults: no size, adult category, short sleeve, quantity one.
func NewSession(id string, product entity.MerchItem) *Session {
	return &Session{
		ID:           id,
		ProductID:    product.ID,
		ProductName:  product.Name,
		ProductImage: product.Image,
		Price:        product.Price,
		KidsPrice:    product.KidsPrice,
		Selection:    defaultSelection(),
		CreatedAt:    time.Now().UTC(),
	}
}

func defaultSelection() Selection {
	return Selection{
		SizeCategory: CategoryAdult,
		SleeveType:   SleeveShort,
		Quantity:     1,
	}
}

// Apply merges a partial update into the current selection. Switching
// category discards any size chosen under the other category.
func (s *Session) Apply(u Update) error {
	if u.SizeCategory != nil {
		if !ValidCategory(*u.SizeCategory) {
			return errorbank.BadRequest("unknown size category", errorbank.WithDetail("sizeCategory", *u.SizeCategory))
		}
		if *u.SizeCategory != s.Selection.SizeCategory {
			s.Selection.Size = ""
		}
		s.Selection.SizeCategory = *u.SizeCategory
	}
	if u.Size != nil {
		if *u.Size != "" && !ValidSize(s.Selection.SizeCategory, *u.Size) {
			return errorbank.BadRequest("size not available for category",
				errorbank.WithDetail("size", *u.Size),
				errorbank.WithDetail("sizeCategory", s.Selection.SizeCategory))
		}
		s.Selection.Size = *u.Size
	}
	if u.SleeveType != nil {
		if !ValidSleeve(*u.SleeveType) {
			return errorbank.BadRequest("unknown sleeve type", errorbank.WithDetail("sleeveType", *u.SleeveType))
		}
		s.Selection.SleeveType = *u.SleeveType
	}
	if u.JerseyName != nil {
		s.Selection.JerseyName = *u.JerseyName
	}
	if u.JerseyNumber != nil {
		s.Selection.JerseyNumber = *u.JerseyNumber
	}
	if u.Quantity != nil {
		if *u.Quantity < 1 {
			return errorbank.BadRequest("quantity must be at least 1")
		}
		s.Selection.Quantity = *u.Quantity
	}
	return nil
}

// AddItem validates the current selection, appends it to the cart, and
// resets the selection for the next item. Kids-category lines take the kids
// price.
func (s *Session) AddItem() (Item, error) {
	if s.Selection.Size == "" {
		return Item{}, errorbank.BadRequest("please select a size", errorbank.WithDetail("field", "size"))
	}
	name := strings.TrimSpace(s.Selection.JerseyName)
	if name == "" {
		return Item{}, errorbank.BadRequest("please enter the name for the jersey", errorbank.WithDetail("field", "jerseyName"))
	}
	number := strings.TrimSpace(s.Selection.JerseyNumber)
	if number == "" {
		return Item{}, errorbank.BadRequest("please enter the jersey number", errorbank.WithDetail("field", "jerseyNumber"))
	}

	price := s.Price
	if s.Selection.SizeCategory == CategoryKids {
		price = s.KidsPrice
	}

	item := Item{
		ProductName:  s.ProductName,
		ProductImage: s.ProductImage,
		Price:        price,
		Size:         s.Selection.Size,
		SizeCategory: s.Selection.SizeCategory,
		SleeveType:   s.Selection.SleeveType,
		JerseyName:   name,
		JerseyNumber: number,
		Quantity:     s.Selection.Quantity,
	}
	s.Items = append(s.Items, item)
	s.Selection = defaultSelection()
	return item, nil
}

// RemoveItem drops the cart line at index.
func (s *Session) RemoveItem(index int) error {
	if index < 0 || index >= len(s.Items) {
		return errorbank.BadRequest("no such cart item", errorbank.WithDetail("index", index))
	}
	s.Items = append(s.Items[:index], s.Items[index+1:]...)
	return nil
}

// Total sums price times quantity across the cart.
func (s *Session) Total() float64 {
	var total float64
	for _, item := range s.Items {
		total += ParsePrice(item.Price) * float64(item.Quantity)
	}
	return total
}

// ItemCount sums quantities across the cart.
func (s *Session) ItemCount() int {
	var n int
	for _, item := range s.Items {
		n += item.Quantity
	}
	return n
}

// ValidateSubmit checks the session is ready to become an order.
func (s *Session) ValidateSubmit() error {
	if strings.TrimSpace(s.CustomerName) == "" {
		return errorbank.BadRequest("please enter your name", errorbank.WithDetail("field", "customerName"))
	}
	if strings.TrimSpace(s.CustomerPhone) == "" {
		return errorbank.BadRequest("please enter your phone number", errorbank.WithDetail("field", "customerPhone"))
	}
	if len(s.Items) == 0 {
		return errorbank.BadRequest("please add at least one item to your cart", errorbank.WithDetail("field", "items"))
	}
	return nil
}
