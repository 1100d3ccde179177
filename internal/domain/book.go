package domain

import "time"

type Book struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	Author      string    `json:"author"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Rating      float64   `json:"rating"`
	Quantity    int32     `json:"quantity"` // copies currently available to lend
	CreatedOn   time.Time `json:"createdOn"`
}

// BookPatch carries the fields of a partial book update. Nil fields are left untouched.
type BookPatch struct {
	Name        *string  `json:"name,omitempty"`
	Image       *string  `json:"image,omitempty"`
	Author      *string  `json:"author,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Description *string  `json:"description,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	Quantity    *int32   `json:"quantity,omitempty"`
}

// IsEmpty reports whether the patch sets no field at all.
func (p BookPatch) IsEmpty() bool {
	return p.Name == nil && p.Image == nil && p.Author == nil && p.Category == nil &&
		p.Description == nil && p.Rating == nil && p.Quantity == nil
}

type Category struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}
