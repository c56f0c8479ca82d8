package model

// BalanceSummary holds the coins credited to a user.
type BalanceSummary struct {
	Coins int64
}
