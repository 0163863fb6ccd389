package domain

// CartItem is a single cart line. Name, price, image, and brand are
// snapshotted from the product at add time, so later catalog changes do not
// retroactively affect lines already in the cart.
type CartItem struct {
	ProductID int     `json:"product_id"`
	Size      string  `json:"size,omitempty"`
	Quantity  int     `json:"quantity"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Brand     string  `json:"brand"`
}

// Cart holds a user's cart lines. Lines are unique per (ProductID, Size);
// the zero value is an empty, usable cart.
//
// All methods are pure state transitions with no I/O: the service layer is
// responsible for committing the resulting items to storage.
type Cart struct {
	Items []CartItem `json:"items"`
}

// findIndex returns the index of the line matching (productID, size), or -1.
func (c *Cart) findIndex(productID int, size string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].Size == size {
			return i
		}
	}
	return -1
}

// AddItem merges the product into the cart: an existing (product, size) line
// has its quantity incremented, otherwise a new line is appended with a
// snapshot of the product's name, price, image, and brand.
func (c *Cart) AddItem(p Product, quantity int, size string) {
	if i := c.findIndex(p.ID, size); i >= 0 {
		c.Items[i].Quantity += quantity
		return
	}

	c.Items = append(c.Items, CartItem{
		ProductID: p.ID,
		Size:      size,
		Quantity:  quantity,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Brand:     p.Brand,
	})
}

// RemoveItem deletes the matching line. Removing an absent line is a no-op.
func (c *Cart) RemoveItem(productID int, size string) {
	if i := c.findIndex(productID, size); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}

// UpdateQuantity sets the line's quantity to the given absolute value.
// A quantity of zero or less removes the line.
func (c *Cart) UpdateQuantity(productID int, size string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID, size)
		return
	}

	if i := c.findIndex(productID, size); i >= 0 {
		c.Items[i].Quantity = quantity
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// Total returns the sum of price times quantity over all lines.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Count returns the total number of units in the cart, which is distinct
// from the number of lines.
func (c *Cart) Count() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Contains reports whether a line with the given (productID, size) exists.
func (c *Cart) Contains(productID int, size string) bool {
	return c.findIndex(productID, size) >= 0
}
