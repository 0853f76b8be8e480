package repository

import (
	"context"
	"fmt"

	"github.com/rifa-digital/rifa-api/internal/domain"
	"github.com/rifa-digital/rifa-api/internal/repository/dao"
)

var (
	ErrRaffleNotFound     = dao.ErrRaffleNotFound
	ErrMembershipExists   = dao.ErrMembershipExists
	ErrMembershipNotFound = dao.ErrMembershipNotFound
	ErrPrizeNotFound      = dao.ErrPrizeNotFound
	ErrPrizeNumberTaken   = dao.ErrPrizeNumberTaken
	ErrTicketsSold        = dao.ErrTicketsSold
)

type RaffleDAO interface {
	InsertWithAdmin(ctx context.Context, raffle dao.Raffle, prize dao.Prize, creatorID uint) (dao.Raffle, error)
	FindByID(ctx context.Context, id uint) (dao.Raffle, error)
	FindAll(ctx context.Context, first, skip int) ([]dao.Raffle, error)
	FindByMemberID(ctx context.Context, userID uint, first, skip int) ([]dao.Raffle, error)
	InsertMembership(ctx context.Context, membership dao.UserRaffle) (dao.UserRaffle, error)
	FindMembership(ctx context.Context, userID, raffleID uint) (dao.UserRaffle, error)
	UpdateMembership(ctx context.Context, membership dao.UserRaffle) (dao.UserRaffle, error)
	DeleteMembership(ctx context.Context, userID, raffleID uint) error
	InsertPrize(ctx context.Context, prize dao.Prize) (dao.Prize, error)
	FindPrizeByID(ctx context.Context, id uint) (dao.Prize, error)
	FindPrizeByNumber(ctx context.Context, raffleID uint, prizeNumber int) (dao.Prize, error)
	UpdatePrize(ctx context.Context, prize dao.Prize) (dao.Prize, error)
	DeletePrize(ctx context.Context, prize dao.Prize) error
	InsertOrder(ctx context.Context, order dao.Order) (dao.Order, error)
	CountOrdersByRaffleID(ctx context.Context, raffleID uint) (int64, error)
}

type RaffleRepository struct {
	dao RaffleDAO
}

func NewRaffleRepository(dao RaffleDAO) *RaffleRepository {
	return &RaffleRepository{
		dao: dao,
	}
}

func (r *RaffleRepository) CreateWithAdmin(ctx context.Context, raffle domain.Raffle, prize domain.Prize, creatorID uint) (domain.Raffle, error) {
	created, err := r.dao.InsertWithAdmin(ctx, r.raffleDomainToDao(raffle), r.prizeDomainToDao(prize), creatorID)
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("r.dao.InsertWithAdmin -> %w", err)
	}

	return r.raffleDaoToDomain(created), nil
}

func (r *RaffleRepository) FindByID(ctx context.Context, id uint) (domain.Raffle, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.raffleDaoToDomain(found), nil
}

func (r *RaffleRepository) FindAll(ctx context.Context, first, skip int) ([]domain.Raffle, error) {
	found, err := r.dao.FindAll(ctx, first, skip)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.rafflesDaoToDomain(found), nil
}

func (r *RaffleRepository) FindByMemberID(ctx context.Context, userID uint, first, skip int) ([]domain.Raffle, error) {
	found, err := r.dao.FindByMemberID(ctx, userID, first, skip)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByMemberID -> %w", err)
	}

	return r.rafflesDaoToDomain(found), nil
}

func (r *RaffleRepository) CreateMembership(ctx context.Context, membership domain.UserRaffle) (domain.UserRaffle, error) {
	created, err := r.dao.InsertMembership(ctx, r.membershipDomainToDao(membership))
	if err != nil {
		return domain.UserRaffle{}, fmt.Errorf("r.dao.InsertMembership -> %w", err)
	}

	return r.membershipDaoToDomain(created), nil
}

func (r *RaffleRepository) FindMembership(ctx context.Context, userID, raffleID uint) (domain.UserRaffle, error) {
	found, err := r.dao.FindMembership(ctx, userID, raffleID)
	if err != nil {
		return domain.UserRaffle{}, fmt.Errorf("r.dao.FindMembership -> %w", err)
	}

	return r.membershipDaoToDomain(found), nil
}

func (r *RaffleRepository) UpdateMembership(ctx context.Context, membership domain.UserRaffle) (domain.UserRaffle, error) {
	updated, err := r.dao.UpdateMembership(ctx, r.membershipDomainToDao(membership))
	if err != nil {
		return domain.UserRaffle{}, fmt.Errorf("r.dao.UpdateMembership -> %w", err)
	}

	return r.membershipDaoToDomain(updated), nil
}

func (r *RaffleRepository) DeleteMembership(ctx context.Context, userID, raffleID uint) error {
	if err := r.dao.DeleteMembership(ctx, userID, raffleID); err != nil {
		return fmt.Errorf("r.dao.DeleteMembership -> %w", err)
	}

	return nil
}

func (r *RaffleRepository) CreatePrize(ctx context.Context, prize domain.Prize) (domain.Prize, error) {
	created, err := r.dao.InsertPrize(ctx, r.prizeDomainToDao(prize))
	if err != nil {
		return domain.Prize{}, fmt.Errorf("r.dao.InsertPrize -> %w", err)
	}

	return r.prizeDaoToDomain(created), nil
}

func (r *RaffleRepository) FindPrizeByID(ctx context.Context, id uint) (domain.Prize, error) {
	found, err := r.dao.FindPrizeByID(ctx, id)
	if err != nil {
		return domain.Prize{}, fmt.Errorf("r.dao.FindPrizeByID -> %w", err)
	}

	return r.prizeDaoToDomain(found), nil
}

func (r *RaffleRepository) FindPrizeByNumber(ctx context.Context, raffleID uint, prizeNumber int) (domain.Prize, error) {
	found, err := r.dao.FindPrizeByNumber(ctx, raffleID, prizeNumber)
	if err != nil {
		return domain.Prize{}, fmt.Errorf("r.dao.FindPrizeByNumber -> %w", err)
	}

	return r.prizeDaoToDomain(found), nil
}

func (r *RaffleRepository) UpdatePrize(ctx context.Context, prize domain.Prize) (domain.Prize, error) {
	updated, err := r.dao.UpdatePrize(ctx, r.prizeDomainToDao(prize))
	if err != nil {
		return domain.Prize{}, fmt.Errorf("r.dao.UpdatePrize -> %w", err)
	}

	return r.prizeDaoToDomain(updated), nil
}

func (r *RaffleRepository) DeletePrize(ctx context.Context, prize domain.Prize) error {
	if err := r.dao.DeletePrize(ctx, r.prizeDomainToDao(prize)); err != nil {
		return fmt.Errorf("r.dao.DeletePrize -> %w", err)
	}

	return nil
}

func (r *RaffleRepository) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	created, err := r.dao.InsertOrder(ctx, dao.Order{
		RaffleID:      order.RaffleID,
		BuyerID:       order.BuyerID,
		SellerID:      order.SellerID,
		RaffleNumber:  order.RaffleNumber,
		PaymentMethod: order.PaymentMethod,
		Status:        order.Status,
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.InsertOrder -> %w", err)
	}

	return domain.Order{
		ID:            created.ID,
		RaffleID:      created.RaffleID,
		BuyerID:       created.BuyerID,
		SellerID:      created.SellerID,
		RaffleNumber:  created.RaffleNumber,
		PaymentMethod: created.PaymentMethod,
		Status:        created.Status,
		CreatedAt:     created.CreatedAt,
	}, nil
}

func (r *RaffleRepository) CountOrders(ctx context.Context, raffleID uint) (int64, error) {
	count, err := r.dao.CountOrdersByRaffleID(ctx, raffleID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountOrdersByRaffleID -> %w", err)
	}

	return count, nil
}

func (r *RaffleRepository) raffleDomainToDao(raffle domain.Raffle) dao.Raffle {
	return dao.Raffle{
		ID:        raffle.ID,
		Size:      raffle.Size,
		DrawDate:  raffle.DrawDate,
		Price:     raffle.Price,
		IsPaid:    raffle.IsPaid,
		TotalCost: raffle.TotalCost,
	}
}

func (r *RaffleRepository) raffleDaoToDomain(raffle dao.Raffle) domain.Raffle {
	prizes := make([]domain.Prize, len(raffle.Prizes))
	for i, p := range raffle.Prizes {
		prizes[i] = r.prizeDaoToDomain(p)
	}

	return domain.Raffle{
		ID:        raffle.ID,
		Size:      raffle.Size,
		DrawDate:  raffle.DrawDate,
		Price:     raffle.Price,
		IsPaid:    raffle.IsPaid,
		TotalCost: raffle.TotalCost,
		Prizes:    prizes,
		CreatedAt: raffle.CreatedAt,
		UpdatedAt: raffle.UpdatedAt,
	}
}

func (r *RaffleRepository) rafflesDaoToDomain(found []dao.Raffle) []domain.Raffle {
	raffles := make([]domain.Raffle, len(found))
	for i, raffle := range found {
		raffles[i] = r.raffleDaoToDomain(raffle)
	}

	return raffles
}

func (r *RaffleRepository) membershipDomainToDao(m domain.UserRaffle) dao.UserRaffle {
	return dao.UserRaffle{
		ID:         m.ID,
		UserID:     m.UserID,
		RaffleID:   m.RaffleID,
		RaffleRole: m.RaffleRole,
	}
}

func (r *RaffleRepository) membershipDaoToDomain(m dao.UserRaffle) domain.UserRaffle {
	return domain.UserRaffle{
		ID:         m.ID,
		UserID:     m.UserID,
		RaffleID:   m.RaffleID,
		RaffleRole: m.RaffleRole,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func (r *RaffleRepository) prizeDomainToDao(p domain.Prize) dao.Prize {
	return dao.Prize{
		ID:          p.ID,
		RaffleID:    p.RaffleID,
		PrizeNumber: p.PrizeNumber,
		Prize:       p.Prize,
		Description: p.Description,
	}
}

func (r *RaffleRepository) prizeDaoToDomain(p dao.Prize) domain.Prize {
	return domain.Prize{
		ID:          p.ID,
		RaffleID:    p.RaffleID,
		PrizeNumber: p.PrizeNumber,
		Prize:       p.Prize,
		Description: p.Description,
	}
}
