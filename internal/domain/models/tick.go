package models

// PriceTick is one live price update from the market stream.
type PriceTick struct {
	Symbol    string
	Price     float64
	Timestamp int64 // unix seconds
}
