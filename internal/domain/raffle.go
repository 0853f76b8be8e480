package domain

import "time"

const (
	RaffleRoleAdmin  = "ADMIN"
	RaffleRoleSeller = "SELLER"
)

// CostPerTicket is the fixed handling cost charged per ticket when a
// raffle is created. TotalCost = Size * CostPerTicket.
const CostPerTicket = 0.1

type Raffle struct {
	ID        uint      `json:"id"`
	Size      int       `json:"size"`
	DrawDate  time.Time `json:"draw_date"`
	Price     float64   `json:"price"`
	IsPaid    bool      `json:"is_paid"`
	TotalCost float64   `json:"total_cost"`
	Prizes    []Prize   `json:"prizes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserRaffle links a user to a raffle with a raffle-scoped role.
// At most one membership exists per (user, raffle) pair.
type UserRaffle struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	RaffleID   uint      `json:"raffle_id"`
	RaffleRole string    `json:"raffle_role"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Prize struct {
	ID          uint   `json:"id"`
	RaffleID    uint   `json:"raffle_id"`
	PrizeNumber int    `json:"prize_number"`
	Prize       string `json:"prize"`
	Description string `json:"description"`
}
