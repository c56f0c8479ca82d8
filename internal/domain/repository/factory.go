package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	PaymentOrders() PaymentOrderRepository
	Balances() BalanceRepository
	Events() EventRepository
}
