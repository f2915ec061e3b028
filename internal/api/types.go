package api

import "encoding/json"

// Product is an export listing in the remote catalog. AvailableQty is
// authoritative stock; only the server decrements it, when it accepts an
// import. Optional fields are zero-valued when the server omits them; an
// absent rating means unrated and is treated as 0.
type Product struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	ImageURL      string  `json:"imageUrl,omitempty"`
	OriginCountry string  `json:"originCountry,omitempty"`
	Rating        float64 `json:"rating,omitempty"`
	Price         float64 `json:"price"`
	AvailableQty  int     `json:"availableQty"`
}

// UnmarshalJSON accepts both `id` and the backend's Mongo-style `_id`.
func (p *Product) UnmarshalJSON(data []byte) error {
	type alias Product
	aux := struct {
		*alias
		MongoID string `json:"_id"`
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = aux.MongoID
	}
	return nil
}

// ImportRecord is a record of the caller taking Quantity units of stock from a
// product. Product is a denormalized snapshot taken at creation time, kept for
// display; the live listing may have changed since.
type ImportRecord struct {
	ID       string  `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (r *ImportRecord) UnmarshalJSON(data []byte) error {
	type alias ImportRecord
	aux := struct {
		*alias
		MongoID string `json:"_id"`
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if r.ID == "" {
		r.ID = aux.MongoID
	}
	return nil
}

// ExportInput is the payload for creating or updating an export listing.
type ExportInput struct {
	Name          string  `json:"name"          validate:"required,max=200"`
	ImageURL      string  `json:"imageUrl"      validate:"omitempty,url"`
	Price         float64 `json:"price"         validate:"min=0"`
	OriginCountry string  `json:"originCountry" validate:"omitempty,max=100"`
	Rating        float64 `json:"rating"        validate:"min=0,max=5"`
	AvailableQty  int     `json:"availableQty"  validate:"min=0"`
}

type importCreateRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
