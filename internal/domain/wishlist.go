package domain

// WishlistItem is a saved product with a snapshot of its display fields.
type WishlistItem struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Brand     string  `json:"brand"`
}

// Wishlist holds a user's saved products with set semantics keyed by product
// ID: a product appears at most once. The zero value is an empty wishlist.
//
// Like Cart, all methods are pure state transitions; persistence is the
// service layer's concern.
type Wishlist struct {
	Items []WishlistItem `json:"items"`
}

func (w *Wishlist) findIndex(productID int) int {
	for i := range w.Items {
		if w.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// AddItem adds the product to the wishlist. Adding an already-present
// product leaves the wishlist unchanged and reports false.
func (w *Wishlist) AddItem(p Product) bool {
	if w.findIndex(p.ID) >= 0 {
		return false
	}

	w.Items = append(w.Items, WishlistItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Brand:     p.Brand,
	})
	return true
}

// RemoveItem deletes the product if present and reports whether it was.
func (w *Wishlist) RemoveItem(productID int) bool {
	i := w.findIndex(productID)
	if i < 0 {
		return false
	}
	w.Items = append(w.Items[:i], w.Items[i+1:]...)
	return true
}

// ToggleItem removes the product when present, otherwise adds it. Exactly
// one of the two happens per call; the return value reports whether the
// product is present afterwards.
func (w *Wishlist) ToggleItem(p Product) bool {
	if w.RemoveItem(p.ID) {
		return false
	}
	w.AddItem(p)
	return true
}

// Clear empties the wishlist.
func (w *Wishlist) Clear() {
	w.Items = nil
}

// Count returns the number of saved products.
func (w *Wishlist) Count() int {
	return len(w.Items)
}

// Contains reports whether the product is in the wishlist.
func (w *Wishlist) Contains(productID int) bool {
	return w.findIndex(productID) >= 0
}
