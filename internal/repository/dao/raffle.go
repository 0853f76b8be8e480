package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrRaffleNotFound     = errors.New("raffle not found")
	ErrMembershipExists   = errors.New("User already added to this raffle.")
	ErrMembershipNotFound = errors.New("membership not found")
	ErrPrizeNotFound      = errors.New("Prize not found.")
	ErrPrizeNumberTaken   = errors.New("Prize number already registered for this raffle.")
	ErrTicketsSold        = errors.New("You cannot remove this prize. Tickets already sold.")
)

type Raffle struct {
	ID uint `gorm:"primaryKey"`

	Size      int       `gorm:"not null"`
	DrawDate  time.Time `gorm:"not null"`
	Price     float64   `gorm:"not null"`
	IsPaid    bool      `gorm:"not null;default:false"`
	TotalCost float64   `gorm:"not null"`

	Prizes  []Prize      `gorm:"foreignKey:RaffleID"`
	Members []UserRaffle `gorm:"foreignKey:RaffleID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserRaffle struct {
	ID uint `gorm:"primaryKey"`

	UserID     uint   `gorm:"not null;uniqueIndex:idx_user_raffle_member"`
	RaffleID   uint   `gorm:"not null;uniqueIndex:idx_user_raffle_member"`
	RaffleRole string `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Prize struct {
	ID uint `gorm:"primaryKey"`

	RaffleID    uint   `gorm:"not null;uniqueIndex:idx_raffle_prize_number"`
	PrizeNumber int    `gorm:"not null;uniqueIndex:idx_raffle_prize_number"`
	Prize       string `gorm:"not null"`
	Description string
}

type Order struct {
	ID uint `gorm:"primaryKey"`

	RaffleID      uint   `gorm:"not null;index"`
	BuyerID       uint   `gorm:"not null"`
	SellerID      uint   `gorm:"not null"`
	RaffleNumber  int    `gorm:"not null"`
	PaymentMethod string `gorm:"not null"`
	Status        string `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type RaffleDAO struct {
	db *gorm.DB
}

func NewRaffleDAO(db *gorm.DB) *RaffleDAO {
	return &RaffleDAO{
		db: db,
	}
}

// InsertWithAdmin creates the raffle, its first prize and the creator's
// ADMIN membership in a single transaction. Either all rows land or none.
func (d *RaffleDAO) InsertWithAdmin(ctx context.Context, raffle Raffle, prize Prize, creatorID uint) (Raffle, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&raffle).Error; err != nil {
			return err
		}

		prize.RaffleID = raffle.ID
		if err := tx.Create(&prize).Error; err != nil {
			return err
		}

		membership := UserRaffle{
			UserID:     creatorID,
			RaffleID:   raffle.ID,
			RaffleRole: "ADMIN",
		}
		if err := tx.Create(&membership).Error; err != nil {
			return err
		}

		raffle.Prizes = []Prize{prize}
		raffle.Members = []UserRaffle{membership}

		return nil
	})
	if err != nil {
		return Raffle{}, err
	}

	return raffle, nil
}

func (d *RaffleDAO) FindByID(ctx context.Context, id uint) (Raffle, error) {
	var raffle Raffle

	result := d.db.WithContext(ctx).Preload("Prizes").First(&raffle, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Raffle{}, ErrRaffleNotFound
		}

		return Raffle{}, result.Error
	}

	return raffle, nil
}

func (d *RaffleDAO) FindAll(ctx context.Context, first, skip int) ([]Raffle, error) {
	var raffles []Raffle

	tx := d.db.WithContext(ctx).Preload("Prizes").Order("id")
	if first > 0 {
		tx = tx.Limit(first)
	}
	if skip > 0 {
		tx = tx.Offset(skip)
	}

	result := tx.Find(&raffles)
	if result.Error != nil {
		return nil, result.Error
	}

	return raffles, nil
}

func (d *RaffleDAO) FindByMemberID(ctx context.Context, userID uint, first, skip int) ([]Raffle, error) {
	var raffles []Raffle

	tx := d.db.WithContext(ctx).
		Preload("Prizes").
		Joins("JOIN user_raffles ON user_raffles.raffle_id = raffles.id").
		Where("user_raffles.user_id = ?", userID).
		Order("raffles.id")
	if first > 0 {
		tx = tx.Limit(first)
	}
	if skip > 0 {
		tx = tx.Offset(skip)
	}

	result := tx.Find(&raffles)
	if result.Error != nil {
		return nil, result.Error
	}

	return raffles, nil
}

func (d *RaffleDAO) InsertMembership(ctx context.Context, membership UserRaffle) (UserRaffle, error) {
	result := d.db.WithContext(ctx).Create(&membership)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return UserRaffle{}, ErrMembershipExists
		}

		return UserRaffle{}, result.Error
	}

	return membership, nil
}

func (d *RaffleDAO) FindMembership(ctx context.Context, userID, raffleID uint) (UserRaffle, error) {
	var membership UserRaffle

	result := d.db.WithContext(ctx).
		First(&membership, "user_id = ? AND raffle_id = ?", userID, raffleID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return UserRaffle{}, ErrMembershipNotFound
		}

		return UserRaffle{}, result.Error
	}

	return membership, nil
}

func (d *RaffleDAO) UpdateMembership(ctx context.Context, membership UserRaffle) (UserRaffle, error) {
	result := d.db.WithContext(ctx).Save(&membership)
	if result.Error != nil {
		return UserRaffle{}, result.Error
	}

	return membership, nil
}

func (d *RaffleDAO) DeleteMembership(ctx context.Context, userID, raffleID uint) error {
	result := d.db.WithContext(ctx).
		Where("user_id = ? AND raffle_id = ?", userID, raffleID).
		Delete(&UserRaffle{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMembershipNotFound
	}

	return nil
}

func (d *RaffleDAO) InsertPrize(ctx context.Context, prize Prize) (Prize, error) {
	result := d.db.WithContext(ctx).Create(&prize)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Prize{}, ErrPrizeNumberTaken
		}

		return Prize{}, result.Error
	}

	return prize, nil
}

func (d *RaffleDAO) FindPrizeByID(ctx context.Context, id uint) (Prize, error) {
	var prize Prize

	result := d.db.WithContext(ctx).First(&prize, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Prize{}, ErrPrizeNotFound
		}

		return Prize{}, result.Error
	}

	return prize, nil
}

func (d *RaffleDAO) FindPrizeByNumber(ctx context.Context, raffleID uint, prizeNumber int) (Prize, error) {
	var prize Prize

	result := d.db.WithContext(ctx).
		First(&prize, "raffle_id = ? AND prize_number = ?", raffleID, prizeNumber)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Prize{}, ErrPrizeNotFound
		}

		return Prize{}, result.Error
	}

	return prize, nil
}

func (d *RaffleDAO) UpdatePrize(ctx context.Context, prize Prize) (Prize, error) {
	result := d.db.WithContext(ctx).Save(&prize)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Prize{}, ErrPrizeNumberTaken
		}

		return Prize{}, result.Error
	}

	return prize, nil
}

// DeletePrize removes a prize unless any order already references its
// raffle. The count and the delete run in one transaction so an order
// placed concurrently cannot slip between the check and the write.
func (d *RaffleDAO) DeletePrize(ctx context.Context, prize Prize) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Order{}).Where("raffle_id = ?", prize.RaffleID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrTicketsSold
		}

		result := tx.Delete(&Prize{}, prize.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPrizeNotFound
		}

		return nil
	})
}

func (d *RaffleDAO) InsertOrder(ctx context.Context, order Order) (Order, error) {
	result := d.db.WithContext(ctx).Create(&order)
	if result.Error != nil {
		return Order{}, result.Error
	}

	return order, nil
}

func (d *RaffleDAO) CountOrdersByRaffleID(ctx context.Context, raffleID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Order{}).Where("raffle_id = ?", raffleID).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
