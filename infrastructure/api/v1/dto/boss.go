package dto

// BossRequest is a shoot/retaliate exchange such as "SRSSRRR".
type BossRequest struct {
	Actions string `json:"actions" validate:"required,max=1000000"`
}

// BossResponse is the verdict on an exchange.
type BossResponse struct {
	Verdict string `json:"verdict"`
	Good    bool   `json:"good"`
}
