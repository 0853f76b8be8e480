package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rifa-digital/rifa-api/internal/domain"
	"github.com/rifa-digital/rifa-api/internal/repository"
)

var (
	ErrRaffleNotFound     = repository.ErrRaffleNotFound
	ErrMembershipExists   = repository.ErrMembershipExists
	ErrMembershipNotFound = repository.ErrMembershipNotFound
	ErrPrizeNotFound      = repository.ErrPrizeNotFound
	ErrPrizeNumberTaken   = repository.ErrPrizeNumberTaken
	ErrTicketsSold        = repository.ErrTicketsSold

	ErrNotRaffleAdmin      = errors.New("You cannot edit this raffle.")
	ErrNotSiteAdmin        = errors.New("Unable to fetch raffles.")
	ErrSellerTokenRequired = errors.New("A seller token is required to buy from this raffle.")
)

type RaffleRepository interface {
	CreateWithAdmin(ctx context.Context, raffle domain.Raffle, prize domain.Prize, creatorID uint) (domain.Raffle, error)
	FindByID(ctx context.Context, id uint) (domain.Raffle, error)
	FindAll(ctx context.Context, first, skip int) ([]domain.Raffle, error)
	FindByMemberID(ctx context.Context, userID uint, first, skip int) ([]domain.Raffle, error)
	CreateMembership(ctx context.Context, membership domain.UserRaffle) (domain.UserRaffle, error)
	FindMembership(ctx context.Context, userID, raffleID uint) (domain.UserRaffle, error)
	UpdateMembership(ctx context.Context, membership domain.UserRaffle) (domain.UserRaffle, error)
	DeleteMembership(ctx context.Context, userID, raffleID uint) error
	CreatePrize(ctx context.Context, prize domain.Prize) (domain.Prize, error)
	FindPrizeByID(ctx context.Context, id uint) (domain.Prize, error)
	FindPrizeByNumber(ctx context.Context, raffleID uint, prizeNumber int) (domain.Prize, error)
	UpdatePrize(ctx context.Context, prize domain.Prize) (domain.Prize, error)
	DeletePrize(ctx context.Context, prize domain.Prize) error
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
}

// RaffleUserRepository is the slice of the user repository the raffle
// service needs for the site-admin gate.
type RaffleUserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

// RaffleCreation is the validated payload for creating a raffle together
// with its first prize.
type RaffleCreation struct {
	Size     int
	DrawDate time.Time
	Price    float64
	Prize    domain.Prize
}

// PrizeUpdate carries the mutable prize fields. Nil means "leave unchanged".
type PrizeUpdate struct {
	PrizeNumber *int
	Prize       *string
	Description *string
}

// OrderCreation is the validated payload for placing an order. Buyer and
// status may only be set by raffle members; for everyone else the buyer is
// the viewer and the status is forced to RESERVADO.
type OrderCreation struct {
	RaffleID      uint
	RaffleNumber  int
	PaymentMethod string
	BuyerID       *uint
	Status        *string
}

type RaffleService struct {
	repo     RaffleRepository
	userRepo RaffleUserRepository
}

func NewRaffleService(repo RaffleRepository, userRepo RaffleUserRepository) *RaffleService {
	return &RaffleService{
		repo:     repo,
		userRepo: userRepo,
	}
}

// CreateRaffle creates the raffle, its first prize and the creator's ADMIN
// membership atomically. TotalCost is derived from the size and the fixed
// per-ticket cost.
func (s *RaffleService) CreateRaffle(ctx context.Context, creatorID uint, creation RaffleCreation) (domain.Raffle, error) {
	raffle := domain.Raffle{
		Size:      creation.Size,
		DrawDate:  creation.DrawDate,
		Price:     creation.Price,
		IsPaid:    false,
		TotalCost: float64(creation.Size) * domain.CostPerTicket,
	}

	created, err := s.repo.CreateWithAdmin(ctx, raffle, creation.Prize, creatorID)
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("s.repo.CreateWithAdmin -> %w", err)
	}

	return created, nil
}

func (s *RaffleService) GetRaffle(ctx context.Context, id uint) (domain.Raffle, error) {
	raffle, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return raffle, nil
}

// ListRaffles lists every raffle. Site admins only.
func (s *RaffleService) ListRaffles(ctx context.Context, viewerID uint, first, skip int) ([]domain.Raffle, error) {
	viewer, err := s.userRepo.FindByID(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	if viewer.SiteRole != domain.SiteRoleAdmin {
		return nil, ErrNotSiteAdmin
	}

	raffles, err := s.repo.FindAll(ctx, first, skip)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return raffles, nil
}

// ListMyRaffles lists the raffles the viewer holds a membership in.
func (s *RaffleService) ListMyRaffles(ctx context.Context, viewerID uint, first, skip int) ([]domain.Raffle, error) {
	raffles, err := s.repo.FindByMemberID(ctx, viewerID, first, skip)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByMemberID -> %w", err)
	}

	return raffles, nil
}

// IsRaffleAdmin fails with ErrNotRaffleAdmin unless the user holds an
// ADMIN membership in the raffle. Every raffle-scoped mutation calls this
// before touching anything.
func (s *RaffleService) IsRaffleAdmin(ctx context.Context, userID, raffleID uint) error {
	membership, err := s.repo.FindMembership(ctx, userID, raffleID)
	if err != nil {
		if errors.Is(err, repository.ErrMembershipNotFound) {
			return ErrNotRaffleAdmin
		}

		return fmt.Errorf("s.repo.FindMembership -> %w", err)
	}

	if membership.RaffleRole != domain.RaffleRoleAdmin {
		return ErrNotRaffleAdmin
	}

	return nil
}

func (s *RaffleService) CreatePrize(ctx context.Context, viewerID, raffleID uint, prize domain.Prize) (domain.Prize, error) {
	if err := s.IsRaffleAdmin(ctx, viewerID, raffleID); err != nil {
		return domain.Prize{}, err
	}

	if err := s.checkPrizeNumberFree(ctx, raffleID, prize.PrizeNumber, 0); err != nil {
		return domain.Prize{}, err
	}

	prize.RaffleID = raffleID
	created, err := s.repo.CreatePrize(ctx, prize)
	if err != nil {
		return domain.Prize{}, fmt.Errorf("s.repo.CreatePrize -> %w", err)
	}

	return created, nil
}

// UpdatePrize mutates an existing prize. The owning raffle is derived from
// the stored prize, never from the caller.
func (s *RaffleService) UpdatePrize(ctx context.Context, viewerID, prizeID uint, update PrizeUpdate) (domain.Prize, error) {
	prize, err := s.repo.FindPrizeByID(ctx, prizeID)
	if err != nil {
		if errors.Is(err, repository.ErrPrizeNotFound) {
			return domain.Prize{}, ErrPrizeNotFound
		}

		return domain.Prize{}, fmt.Errorf("s.repo.FindPrizeByID -> %w", err)
	}

	if err = s.IsRaffleAdmin(ctx, viewerID, prize.RaffleID); err != nil {
		return domain.Prize{}, err
	}

	if update.PrizeNumber != nil && *update.PrizeNumber != prize.PrizeNumber {
		if err = s.checkPrizeNumberFree(ctx, prize.RaffleID, *update.PrizeNumber, prize.ID); err != nil {
			return domain.Prize{}, err
		}
		prize.PrizeNumber = *update.PrizeNumber
	}
	if update.Prize != nil {
		prize.Prize = *update.Prize
	}
	if update.Description != nil {
		prize.Description = *update.Description
	}

	updated, err := s.repo.UpdatePrize(ctx, prize)
	if err != nil {
		return domain.Prize{}, fmt.Errorf("s.repo.UpdatePrize -> %w", err)
	}

	return updated, nil
}

// DeletePrize removes a prize. Raffle admins only, and only while no
// order references the raffle.
func (s *RaffleService) DeletePrize(ctx context.Context, viewerID, prizeID uint) (domain.Prize, error) {
	prize, err := s.repo.FindPrizeByID(ctx, prizeID)
	if err != nil {
		if errors.Is(err, repository.ErrPrizeNotFound) {
			return domain.Prize{}, ErrPrizeNotFound
		}

		return domain.Prize{}, fmt.Errorf("s.repo.FindPrizeByID -> %w", err)
	}

	if err = s.IsRaffleAdmin(ctx, viewerID, prize.RaffleID); err != nil {
		return domain.Prize{}, err
	}

	if err = s.repo.DeletePrize(ctx, prize); err != nil {
		if errors.Is(err, repository.ErrTicketsSold) {
			return domain.Prize{}, ErrTicketsSold
		}

		return domain.Prize{}, fmt.Errorf("s.repo.DeletePrize -> %w", err)
	}

	return prize, nil
}

func (s *RaffleService) AddMember(ctx context.Context, viewerID, raffleID, userID uint, role string) (domain.UserRaffle, error) {
	if err := s.IsRaffleAdmin(ctx, viewerID, raffleID); err != nil {
		return domain.UserRaffle{}, err
	}

	_, err := s.repo.FindMembership(ctx, userID, raffleID)
	if err == nil {
		return domain.UserRaffle{}, ErrMembershipExists
	}
	if !errors.Is(err, repository.ErrMembershipNotFound) {
		return domain.UserRaffle{}, fmt.Errorf("s.repo.FindMembership -> %w", err)
	}

	created, err := s.repo.CreateMembership(ctx, domain.UserRaffle{
		UserID:     userID,
		RaffleID:   raffleID,
		RaffleRole: role,
	})
	if err != nil {
		return domain.UserRaffle{}, fmt.Errorf("s.repo.CreateMembership -> %w", err)
	}

	return created, nil
}

func (s *RaffleService) UpdateMember(ctx context.Context, viewerID, raffleID, userID uint, role string) (domain.UserRaffle, error) {
	if err := s.IsRaffleAdmin(ctx, viewerID, raffleID); err != nil {
		return domain.UserRaffle{}, err
	}

	membership, err := s.repo.FindMembership(ctx, userID, raffleID)
	if err != nil {
		if errors.Is(err, repository.ErrMembershipNotFound) {
			return domain.UserRaffle{}, ErrMembershipNotFound
		}

		return domain.UserRaffle{}, fmt.Errorf("s.repo.FindMembership -> %w", err)
	}

	membership.RaffleRole = role
	updated, err := s.repo.UpdateMembership(ctx, membership)
	if err != nil {
		return domain.UserRaffle{}, fmt.Errorf("s.repo.UpdateMembership -> %w", err)
	}

	return updated, nil
}

func (s *RaffleService) RemoveMember(ctx context.Context, viewerID, raffleID, userID uint) (domain.UserRaffle, error) {
	if err := s.IsRaffleAdmin(ctx, viewerID, raffleID); err != nil {
		return domain.UserRaffle{}, err
	}

	membership, err := s.repo.FindMembership(ctx, userID, raffleID)
	if err != nil {
		if errors.Is(err, repository.ErrMembershipNotFound) {
			return domain.UserRaffle{}, ErrMembershipNotFound
		}

		return domain.UserRaffle{}, fmt.Errorf("s.repo.FindMembership -> %w", err)
	}

	if err = s.repo.DeleteMembership(ctx, userID, raffleID); err != nil {
		return domain.UserRaffle{}, fmt.Errorf("s.repo.DeleteMembership -> %w", err)
	}

	return membership, nil
}

// CreateOrder places an order. A raffle member sells on their own terms:
// they may name the buyer and the status. A non-member buys for themselves
// through a delegated seller token; the seller comes from that token and
// the status is forced to RESERVADO.
func (s *RaffleService) CreateOrder(ctx context.Context, viewerID uint, tokenSellerID *uint, creation OrderCreation) (domain.Order, error) {
	if _, err := s.repo.FindByID(ctx, creation.RaffleID); err != nil {
		if errors.Is(err, repository.ErrRaffleNotFound) {
			return domain.Order{}, ErrRaffleNotFound
		}

		return domain.Order{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	_, err := s.repo.FindMembership(ctx, viewerID, creation.RaffleID)
	isMember := err == nil
	if err != nil && !errors.Is(err, repository.ErrMembershipNotFound) {
		return domain.Order{}, fmt.Errorf("s.repo.FindMembership -> %w", err)
	}

	order := domain.Order{
		RaffleID:      creation.RaffleID,
		RaffleNumber:  creation.RaffleNumber,
		PaymentMethod: creation.PaymentMethod,
	}

	if isMember {
		order.SellerID = viewerID
		order.BuyerID = viewerID
		if creation.BuyerID != nil {
			order.BuyerID = *creation.BuyerID
		}
		order.Status = domain.OrderStatusReserved
		if creation.Status != nil {
			order.Status = *creation.Status
		}
	} else {
		if tokenSellerID == nil {
			return domain.Order{}, ErrSellerTokenRequired
		}
		order.SellerID = *tokenSellerID
		order.BuyerID = viewerID
		order.Status = domain.OrderStatusReserved
	}

	created, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.repo.CreateOrder -> %w", err)
	}

	return created, nil
}

func (s *RaffleService) checkPrizeNumberFree(ctx context.Context, raffleID uint, prizeNumber int, selfID uint) error {
	existing, err := s.repo.FindPrizeByNumber(ctx, raffleID, prizeNumber)
	if err == nil {
		if existing.ID != selfID {
			return ErrPrizeNumberTaken
		}

		return nil
	}
	if !errors.Is(err, repository.ErrPrizeNotFound) {
		return fmt.Errorf("s.repo.FindPrizeByNumber -> %w", err)
	}

	return nil
}
