package graphql

import (
	"context"
	"fmt"
	"time"

	gql "github.com/graph-gophers/graphql-go"

	"github.com/rifa-digital/rifa-api/internal/api/middleware"
	"github.com/rifa-digital/rifa-api/internal/config"
	"github.com/rifa-digital/rifa-api/internal/domain"
	"github.com/rifa-digital/rifa-api/internal/pkg/jwthelper"
	"github.com/rifa-digital/rifa-api/internal/service"
)

type AuthService interface {
	Signup(ctx context.Context, user domain.User) (domain.User, error)
	Login(ctx context.Context, identifier, password string) (domain.User, error)
}

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
	ListUsers(ctx context.Context, query string, first, skip int) ([]domain.User, error)
	UpdateUser(ctx context.Context, id uint, update service.UserUpdate) (domain.User, error)
	DeleteUser(ctx context.Context, id uint) (domain.User, error)
}

type RaffleService interface {
	CreateRaffle(ctx context.Context, creatorID uint, creation service.RaffleCreation) (domain.Raffle, error)
	ListRaffles(ctx context.Context, viewerID uint, first, skip int) ([]domain.Raffle, error)
	ListMyRaffles(ctx context.Context, viewerID uint, first, skip int) ([]domain.Raffle, error)
	CreatePrize(ctx context.Context, viewerID, raffleID uint, prize domain.Prize) (domain.Prize, error)
	UpdatePrize(ctx context.Context, viewerID, prizeID uint, update service.PrizeUpdate) (domain.Prize, error)
	DeletePrize(ctx context.Context, viewerID, prizeID uint) (domain.Prize, error)
	AddMember(ctx context.Context, viewerID, raffleID, userID uint, role string) (domain.UserRaffle, error)
	UpdateMember(ctx context.Context, viewerID, raffleID, userID uint, role string) (domain.UserRaffle, error)
	RemoveMember(ctx context.Context, viewerID, raffleID, userID uint) (domain.UserRaffle, error)
	CreateOrder(ctx context.Context, viewerID uint, tokenSellerID *uint, creation service.OrderCreation) (domain.Order, error)
}

// Resolver is the GraphQL root. Every resolver method re-derives the
// viewer from the request context; nothing identity-related is cached
// between operations.
type Resolver struct {
	conf      *config.APIConfig
	authn     *middleware.Authenticator
	authSvc   AuthService
	userSvc   UserService
	raffleSvc RaffleService
}

func NewResolver(conf *config.APIConfig, authn *middleware.Authenticator, authSvc AuthService, userSvc UserService, raffleSvc RaffleService) *Resolver {
	return &Resolver{
		conf:      conf,
		authn:     authn,
		authSvc:   authSvc,
		userSvc:   userSvc,
		raffleSvc: raffleSvc,
	}
}

func (r *Resolver) issueToken(userID uint) (string, error) {
	ttl := 24 * time.Hour
	if r.conf.TokenTTLHours > 0 {
		ttl = time.Duration(r.conf.TokenTTLHours) * time.Hour
	}

	token, err := jwthelper.GenerateToken([]byte(r.conf.JWTSigningKey), userID, ttl)
	if err != nil {
		return "", fmt.Errorf("jwthelper.GenerateToken -> %w", err)
	}

	return token, nil
}

func (r *Resolver) Users(ctx context.Context, args struct {
	Query *string
	First *int32
	Skip  *int32
}) ([]*userResolver, error) {
	users, err := r.userSvc.ListUsers(ctx, strVal(args.Query), intVal(args.First), intVal(args.Skip))
	if err != nil {
		return nil, err
	}

	resolvers := make([]*userResolver, len(users))
	for i, u := range users {
		resolvers[i] = &userResolver{user: u}
	}

	return resolvers, nil
}

func (r *Resolver) Me(ctx context.Context) (*userResolver, error) {
	viewerID, err := middleware.UserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := r.userSvc.GetUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	return &userResolver{user: user}, nil
}

func (r *Resolver) Raffles(ctx context.Context, args struct {
	First *int32
	Skip  *int32
}) ([]*raffleResolver, error) {
	viewerID, err := middleware.UserID(ctx)
	if err != nil {
		return nil, err
	}

	raffles, err := r.raffleSvc.ListRaffles(ctx, viewerID, intVal(args.First), intVal(args.Skip))
	if err != nil {
		return nil, err
	}

	return raffleResolvers(raffles), nil
}

func (r *Resolver) MyRaffles(ctx context.Context, args struct {
	First *int32
	Skip  *int32
}) ([]*raffleResolver, error) {
	viewerID, err := middleware.UserID(ctx)
	if err != nil {
		return nil, err
	}

	raffles, err := r.raffleSvc.ListMyRaffles(ctx, viewerID, intVal(args.First), intVal(args.Skip))
	if err != nil {
		return nil, err
	}

	return raffleResolvers(raffles), nil
}

func (r *Resolver) CreateUser(ctx context.Context, args struct{ Data CreateUserInput }) (*authPayloadResolver, error) {
	if err := args.Data.Validate(); err != nil {
		return nil, err
	}

	user, err := r.authSvc.Signup(ctx, domain.User{
		Name:     args.Data.Name,
		Email:    args.Data.Email,
		CPF:      args.Data.CPF,
		Password: args.Data.Password,
	})
	if err != nil {
		return nil, err
	}

	token, err := r.issueToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &authPayloadResolver{payload: domain.AuthPayload{User: user, Token: token}}, nil
}

func (r *Resolver) LoginUser(ctx context.Context, args struct{ Data LoginUserInput }) (*authPayloadResolver, error) {
	if err := args.Data.Validate(); err != nil {
		return nil, err
	}

	user, err := r.authSvc.Login(ctx, args.Data.Identifier(), args.Data.Password)
	if err != nil {
		return nil, err
	}

	token, err := r.issueToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &authPayloadResolver{payload: domain.AuthPayload{User: user, Token: token}}, nil
}

func (r *Resolver) DeleteUser(ctx context.Context) (*userResolver, error) {
	viewerID, err := middleware.UserID(ctx)
	if err != nil {
		return nil, err
	}

	deleted, err := r.userSvc.DeleteUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	return &userResolver{user: deleted}, nil
}

func (r *Resolver) UpdateUser(ctx context.Context, args struct{ Data UpdateUserInput }) (*userResolver, error) {
	viewerID, err := middleware.UserID(ctx)
	if err != nil {
		return nil, err
	}

	if err = args.Data.Validate(); err != nil {
		return nil, err
	}

	updated, err := r.userSvc.UpdateUser(ctx, viewerID, service.UserUpdate{
		Name:     args.Data.Name,
		Email:    args.Data.Email,
		Password: args.Data.Password,
	})
	if err != nil {
		return nil, err
	}

	return &userResolver{user: updated}, nil
}

func (r *Resolver) CreateRaffle(ctx context.Context, args struct{ Data CreateRaffleInput }) (*raffleResolver, error) {
	viewerID, err := middleware.UserID(ctx)
	if err != nil {
		return nil, err
	}

	if err = args.Data.Validate(); err != nil {
		return nil, err
	}

	raffle, err := r.raffleSvc.CreateRaffle(ctx, viewerID, service.RaffleCreation{
		Size:     int(args.Data.Size),
		DrawDate: args.Data.DrawDate.Time,
		Price:    args.Data.Price,
		Prize:    prizeFromInput(args.Data.Prizes),
	})
	if err != nil {
		return nil, err
	}

	return &raffleResolver{raffle: raffle}, nil
}

func (r *Resolver) CreatePrize(ctx context.Context, args struct {
	ID   gql.ID
	Data CreatePrizeInput
}) (*prizeResolver, error) {
	viewerID, err := middleware.UserID(ctx)
	if err != nil {
		return nil, err
	}

	if err = args.Data.Validate(); err != nil {
		return nil, err
	}

	raffleID, err := idToUint(args.ID)
	if err != nil {
		return nil, err
	}

	prize, err := r.raffleSvc.CreatePrize(ctx, viewerID, raffleID, prizeFromInput(args.Data))
	if err != nil {
		return nil, err
	}

	return &prizeResolver{prize: prize}, nil
}

func (r *Resolver) UpdatePrize(ctx context.Context, args struct {
	ID   gql.ID
	Data UpdatePrizeInput
}) (*prizeResolver, error) {
	viewerID, err := middleware.UserID(ctx)
	if err != nil {
		return nil, err
	}

	if err = args.Data.Validate(); err != nil {
		return nil, err
	}

	prizeID, err := idToUint(args.ID)
	if err != nil {
		return nil, err
	}

	var number *int
	if args.Data.PrizeNumber != nil {
		n := int(*args.Data.PrizeNumber)
		number = &n
	}

	prize, err := r.raffleSvc.UpdatePrize(ctx, viewerID, prizeID, service.PrizeUpdate{
		PrizeNumber: number,
		Prize:       args.Data.Prize,
		Description: args.Data.Description,
	})
	if err != nil {
		return nil, err
	}

	return &prizeResolver{prize: prize}, nil
}

func (r *Resolver) DeletePrize(ctx context.Context, args struct{ ID gql.ID }) (*prizeResolver, error) {
	viewerID, err := middleware.UserID(ctx)
	if err != nil {
		return nil, err
	}

	prizeID, err := idToUint(args.ID)
	if err != nil {
		return nil, err
	}

	deleted, err := r.raffleSvc.DeletePrize(ctx, viewerID, prizeID)
	if err != nil {
		return nil, err
	}

	return &prizeResolver{prize: deleted}, nil
}

type userRaffleArgs struct {
	ID     gql.ID
	UserID gql.ID
	Data   UserRaffleInput
}

func (r *Resolver) CreateUserRaffle(ctx context.Context, args userRaffleArgs) (*userRaffleResolver, error) {
	viewerID, raffleID, memberID, err := r.memberArgs(ctx, args.ID, args.UserID)
	if err != nil {
		return nil, err
	}

	if err = args.Data.Validate(); err != nil {
		return nil, err
	}

	membership, err := r.raffleSvc.AddMember(ctx, viewerID, raffleID, memberID, args.Data.UserRole)
	if err != nil {
		return nil, err
	}

	return &userRaffleResolver{membership: membership}, nil
}

func (r *Resolver) UpdateUserRaffle(ctx context.Context, args userRaffleArgs) (*userRaffleResolver, error) {
	viewerID, raffleID, memberID, err := r.memberArgs(ctx, args.ID, args.UserID)
	if err != nil {
		return nil, err
	}

	if err = args.Data.Validate(); err != nil {
		return nil, err
	}

	membership, err := r.raffleSvc.UpdateMember(ctx, viewerID, raffleID, memberID, args.Data.UserRole)
	if err != nil {
		return nil, err
	}

	return &userRaffleResolver{membership: membership}, nil
}

func (r *Resolver) DeleteUserRaffle(ctx context.Context, args struct {
	ID     gql.ID
	UserID gql.ID
}) (*userRaffleResolver, error) {
	viewerID, raffleID, memberID, err := r.memberArgs(ctx, args.ID, args.UserID)
	if err != nil {
		return nil, err
	}

	membership, err := r.raffleSvc.RemoveMember(ctx, viewerID, raffleID, memberID)
	if err != nil {
		return nil, err
	}

	return &userRaffleResolver{membership: membership}, nil
}

func (r *Resolver) CreateOrder(ctx context.Context, args struct{ Data CreateOrderInput }) (*orderResolver, error) {
	viewerID, err := middleware.UserID(ctx)
	if err != nil {
		return nil, err
	}

	if err = args.Data.Validate(); err != nil {
		return nil, err
	}

	raffleID, err := idToUint(args.Data.RaffleID)
	if err != nil {
		return nil, err
	}

	// The seller token is a standalone credential, not a header; a bad
	// one fails the whole mutation.
	var tokenSellerID *uint
	if args.Data.SellerToken != nil {
		sellerID, err := r.authn.UserIDFromToken(*args.Data.SellerToken)
		if err != nil {
			return nil, err
		}
		tokenSellerID = &sellerID
	}

	var buyerID *uint
	if args.Data.BuyerID != nil {
		id, err := idToUint(*args.Data.BuyerID)
		if err != nil {
			return nil, err
		}
		buyerID = &id
	}

	order, err := r.raffleSvc.CreateOrder(ctx, viewerID, tokenSellerID, service.OrderCreation{
		RaffleID:      raffleID,
		RaffleNumber:  int(args.Data.RaffleNumber),
		PaymentMethod: args.Data.PaymentMethod,
		BuyerID:       buyerID,
		Status:        args.Data.OrderStatus,
	})
	if err != nil {
		return nil, err
	}

	return &orderResolver{order: order}, nil
}

func (r *Resolver) memberArgs(ctx context.Context, raffleID, userID gql.ID) (viewer, raffle, member uint, err error) {
	viewer, err = middleware.UserID(ctx)
	if err != nil {
		return 0, 0, 0, err
	}

	raffle, err = idToUint(raffleID)
	if err != nil {
		return 0, 0, 0, err
	}

	member, err = idToUint(userID)
	if err != nil {
		return 0, 0, 0, err
	}

	return viewer, raffle, member, nil
}

func prizeFromInput(in CreatePrizeInput) domain.Prize {
	prize := domain.Prize{
		PrizeNumber: int(in.PrizeNumber),
		Prize:       in.Prize,
	}
	if in.Description != nil {
		prize.Description = *in.Description
	}

	return prize
}

func raffleResolvers(raffles []domain.Raffle) []*raffleResolver {
	resolvers := make([]*raffleResolver, len(raffles))
	for i, raffle := range raffles {
		resolvers[i] = &raffleResolver{raffle: raffle}
	}

	return resolvers
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

func intVal(i *int32) int {
	if i == nil {
		return 0
	}

	return int(*i)
}
