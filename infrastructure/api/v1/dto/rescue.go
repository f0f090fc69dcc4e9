package dto

// RescueRequest asks for the maximum number of chickens one roof can protect.
type RescueRequest struct {
	// ChickenCount is optional; when set it must equal len(Positions).
	ChickenCount *uint64  `json:"chicken_count,omitempty" validate:"omitempty,min=1,max=1000000"`
	RoofLength   uint64   `json:"roof_length" validate:"required,min=1,max=1000000"`
	Positions    []uint32 `json:"positions" validate:"required,min=1,max=1000000,dive,min=1,max=1000000000"`
	// Sort opts into sorting positions that are not already ascending.
	Sort bool `json:"sort,omitempty"`
}

// RescueResponse carries the solver result.
type RescueResponse struct {
	MaxProtected int    `json:"max_protected"`
	Strategy     string `json:"strategy"`
}
