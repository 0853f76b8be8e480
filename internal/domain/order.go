package domain

import "time"

const (
	OrderStatusReserved  = "RESERVADO"
	OrderStatusPaid      = "PAGO"
	OrderStatusCancelled = "CANCELADO"
)

type Order struct {
	ID            uint      `json:"id"`
	RaffleID      uint      `json:"raffle_id"`
	BuyerID       uint      `json:"buyer_id"`
	SellerID      uint      `json:"seller_id"`
	RaffleNumber  int       `json:"raffle_number"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}
