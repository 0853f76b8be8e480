package graphql

import (
	"context"
	"fmt"
	"strconv"

	gql "github.com/graph-gophers/graphql-go"

	"github.com/rifa-digital/rifa-api/internal/api/middleware"
	"github.com/rifa-digital/rifa-api/internal/domain"
)

func uintToID(id uint) gql.ID {
	return gql.ID(strconv.FormatUint(uint64(id), 10))
}

func idToUint(id gql.ID) (uint, error) {
	parsed, err := strconv.ParseUint(string(id), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", string(id))
	}

	return uint(parsed), nil
}

type userResolver struct {
	user domain.User
}

func (r *userResolver) ID() gql.ID {
	return uintToID(r.user.ID)
}

func (r *userResolver) Name() string {
	return r.user.Name
}

// Email resolves to the address only when the viewer is the row's owner;
// everyone else gets null. An invalid credential still errors even though
// the field works unauthenticated.
func (r *userResolver) Email(ctx context.Context) (*string, error) {
	viewerID, err := middleware.OptionalUserID(ctx)
	if err != nil {
		return nil, err
	}

	if viewerID != 0 && viewerID == r.user.ID {
		return &r.user.Email, nil
	}

	return nil, nil
}

// CPF follows the same owner-only rule as Email.
func (r *userResolver) CPF(ctx context.Context) (*string, error) {
	viewerID, err := middleware.OptionalUserID(ctx)
	if err != nil {
		return nil, err
	}

	if viewerID != 0 && viewerID == r.user.ID {
		return &r.user.CPF, nil
	}

	return nil, nil
}

func (r *userResolver) SiteRole() string {
	return r.user.SiteRole
}

type authPayloadResolver struct {
	payload domain.AuthPayload
}

func (r *authPayloadResolver) Token() string {
	return r.payload.Token
}

func (r *authPayloadResolver) User() *userResolver {
	return &userResolver{user: r.payload.User}
}

type raffleResolver struct {
	raffle domain.Raffle
}

func (r *raffleResolver) ID() gql.ID {
	return uintToID(r.raffle.ID)
}

func (r *raffleResolver) Size() int32 {
	return int32(r.raffle.Size)
}

func (r *raffleResolver) DrawDate() gql.Time {
	return gql.Time{Time: r.raffle.DrawDate}
}

func (r *raffleResolver) Price() float64 {
	return r.raffle.Price
}

func (r *raffleResolver) IsPaid() bool {
	return r.raffle.IsPaid
}

func (r *raffleResolver) TotalCost() float64 {
	return r.raffle.TotalCost
}

func (r *raffleResolver) Prizes() []*prizeResolver {
	prizes := make([]*prizeResolver, len(r.raffle.Prizes))
	for i, p := range r.raffle.Prizes {
		prizes[i] = &prizeResolver{prize: p}
	}

	return prizes
}

type prizeResolver struct {
	prize domain.Prize
}

func (r *prizeResolver) ID() gql.ID {
	return uintToID(r.prize.ID)
}

func (r *prizeResolver) RaffleID() gql.ID {
	return uintToID(r.prize.RaffleID)
}

func (r *prizeResolver) PrizeNumber() int32 {
	return int32(r.prize.PrizeNumber)
}

func (r *prizeResolver) Prize() string {
	return r.prize.Prize
}

func (r *prizeResolver) Description() string {
	return r.prize.Description
}

type userRaffleResolver struct {
	membership domain.UserRaffle
}

func (r *userRaffleResolver) ID() gql.ID {
	return uintToID(r.membership.ID)
}

func (r *userRaffleResolver) UserID() gql.ID {
	return uintToID(r.membership.UserID)
}

func (r *userRaffleResolver) RaffleID() gql.ID {
	return uintToID(r.membership.RaffleID)
}

func (r *userRaffleResolver) RaffleRole() string {
	return r.membership.RaffleRole
}

type orderResolver struct {
	order domain.Order
}

func (r *orderResolver) ID() gql.ID {
	return uintToID(r.order.ID)
}

func (r *orderResolver) RaffleID() gql.ID {
	return uintToID(r.order.RaffleID)
}

func (r *orderResolver) BuyerID() gql.ID {
	return uintToID(r.order.BuyerID)
}

func (r *orderResolver) SellerID() gql.ID {
	return uintToID(r.order.SellerID)
}

func (r *orderResolver) RaffleNumber() int32 {
	return int32(r.order.RaffleNumber)
}

func (r *orderResolver) PaymentMethod() string {
	return r.order.PaymentMethod
}

func (r *orderResolver) Status() string {
	return r.order.Status
}
