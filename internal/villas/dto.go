package villas

// CreateVillaRequest is the admin payload for a new villa
type CreateVillaRequest struct {
	Slug        string   `json:"slug" binding:"required,lowercase"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	BasePrice   int64    `json:"base_price" binding:"required,gt=0"`
	MaxGuests   int      `json:"max_guests" binding:"required,gt=0"`
	TotalUnits  int      `json:"total_units" binding:"required,gte=1"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
}

// UpdateVillaRequest is the admin payload for a partial villa update
type UpdateVillaRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	BasePrice   *int64   `json:"base_price" binding:"omitempty,gt=0"`
	MaxGuests   *int     `json:"max_guests" binding:"omitempty,gt=0"`
	TotalUnits  *int     `json:"total_units" binding:"omitempty,gte=1"`
	Active      *bool    `json:"active"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
}

// CreateRuleRequest is the admin payload for a pricing rule
type CreateRuleRequest struct {
	Name       string  `json:"name" binding:"required"`
	VillaScope string  `json:"villa_scope" binding:"required"`
	Modifier   float64 `json:"modifier" binding:"required,gt=0"`
	StartDate  string  `json:"start_date" binding:"required"`
	EndDate    string  `json:"end_date" binding:"required"`
}

// UpdateRuleRequest is the admin payload for a partial rule update
type UpdateRuleRequest struct {
	Name      *string  `json:"name"`
	Modifier  *float64 `json:"modifier" binding:"omitempty,gt=0"`
	StartDate *string  `json:"start_date"`
	EndDate   *string  `json:"end_date"`
	Active    *bool    `json:"active"`
}

// CreateOverrideRequest is the admin payload for a date override
type CreateOverrideRequest struct {
	VillaSlug string `json:"villa_slug" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Price     int64  `json:"price" binding:"required,gte=0"`
	Reason    string `json:"reason"`
}

// PricingResponse is the public pricing projection for a stay
type PricingResponse struct {
	VillaSlug string       `json:"villa_slug"`
	CheckIn   string       `json:"check_in"`
	CheckOut  string       `json:"check_out"`
	Nights    []NightPrice `json:"nights"`
	Total     int64        `json:"total"`
}
