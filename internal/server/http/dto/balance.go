package dto

// BalanceResponse represents the user's coin balance.
type BalanceResponse struct {
	Coins int64 `json:"coins"`
}
