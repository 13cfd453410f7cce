package handler

import "time"

// ── Auth ──────────────────────────────────────────────────────────────────────

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type sessionResponse struct {
	Token string       `json:"token,omitempty"`
	User  userResponse `json:"user"`
	Role  string       `json:"role"`
}

// ── Menu ──────────────────────────────────────────────────────────────────────

// Menu writes arrive as multipart forms so an image file can ride along;
// these structs are validated after manual extraction from the form.
type menuItemForm struct {
	Name        string `validate:"required"`
	Price       string `validate:"required"`
	Description string
}

type menuItemResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ── Orders ────────────────────────────────────────────────────────────────────

type placeOrderRequest struct {
	MenuID   string `json:"menu_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

type editOrderRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

type orderResponse struct {
	ID         string    `json:"id"`
	ItemName   string    `json:"item_name"`
	ImageURL   string    `json:"image_url,omitempty"`
	Quantity   int       `json:"quantity"`
	Total      string    `json:"total"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	OwnerEmail string    `json:"owner_email,omitempty"`
}

// ── Checkout ──────────────────────────────────────────────────────────────────

type checkoutPreviewResponse struct {
	Orders []orderResponse `json:"orders"`
	Total  string          `json:"total"`
	AsOf   time.Time       `json:"as_of"`
}

type confirmRequest struct {
	// AsOf is the cutoff returned by the preview. Orders placed after it are
	// left pending. Zero means "everything pending right now".
	AsOf time.Time `json:"as_of"`
}

type settlementResponse struct {
	Settled []orderResponse `json:"settled"`
	Total   string          `json:"total"`
}
