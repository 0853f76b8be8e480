package service

import (
	"context"
	"sort"
	"strings"

	"github.com/rifa-digital/rifa-api/internal/domain"
	"github.com/rifa-digital/rifa-api/internal/repository"
)

// fakeUserRepo is an in-memory stand-in for the user repository. It
// returns the same sentinel errors as the real one so errors.Is checks
// in the services behave identically.
type fakeUserRepo struct {
	users  map[uint]domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users: make(map[uint]domain.User),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	for _, u := range f.users {
		if u.Email == user.Email || u.CPF == user.CPF {
			return domain.User{}, repository.ErrUserExists
		}
	}

	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = user

	return user, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func (f *fakeUserRepo) FindByIdentifier(_ context.Context, identifier string) (domain.User, error) {
	for _, u := range f.users {
		if u.Email == identifier || u.CPF == identifier {
			return u, nil
		}
	}

	return domain.User{}, repository.ErrUserNotFound
}

func (f *fakeUserRepo) ExistsByEmailOrCPF(_ context.Context, email, cpf string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email || u.CPF == cpf {
			return true, nil
		}
	}

	return false, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context, query string, first, skip int) ([]domain.User, error) {
	var users []domain.User
	for _, u := range f.users {
		if query == "" || strings.Contains(u.Name, query) {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	if skip > 0 && skip < len(users) {
		users = users[skip:]
	} else if skip >= len(users) {
		users = nil
	}
	if first > 0 && first < len(users) {
		users = users[:first]
	}

	return users, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user domain.User) (domain.User, error) {
	if _, ok := f.users[user.ID]; !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	f.users[user.ID] = user

	return user, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(f.users, id)

	return nil
}

type fakeRaffleRepo struct {
	raffles     map[uint]domain.Raffle
	memberships map[uint]domain.UserRaffle
	prizes      map[uint]domain.Prize
	orders      []domain.Order
	nextID      uint
}

func newFakeRaffleRepo() *fakeRaffleRepo {
	return &fakeRaffleRepo{
		raffles:     make(map[uint]domain.Raffle),
		memberships: make(map[uint]domain.UserRaffle),
		prizes:      make(map[uint]domain.Prize),
	}
}

func (f *fakeRaffleRepo) id() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeRaffleRepo) CreateWithAdmin(_ context.Context, raffle domain.Raffle, prize domain.Prize, creatorID uint) (domain.Raffle, error) {
	raffle.ID = f.id()

	prize.ID = f.id()
	prize.RaffleID = raffle.ID
	f.prizes[prize.ID] = prize

	membership := domain.UserRaffle{
		ID:         f.id(),
		UserID:     creatorID,
		RaffleID:   raffle.ID,
		RaffleRole: domain.RaffleRoleAdmin,
	}
	f.memberships[membership.ID] = membership

	raffle.Prizes = []domain.Prize{prize}
	f.raffles[raffle.ID] = raffle

	return raffle, nil
}

func (f *fakeRaffleRepo) FindByID(_ context.Context, id uint) (domain.Raffle, error) {
	raffle, ok := f.raffles[id]
	if !ok {
		return domain.Raffle{}, repository.ErrRaffleNotFound
	}

	return raffle, nil
}

func (f *fakeRaffleRepo) FindAll(_ context.Context, first, skip int) ([]domain.Raffle, error) {
	var raffles []domain.Raffle
	for _, r := range f.raffles {
		raffles = append(raffles, r)
	}
	sort.Slice(raffles, func(i, j int) bool { return raffles[i].ID < raffles[j].ID })

	return pageRaffles(raffles, first, skip), nil
}

func (f *fakeRaffleRepo) FindByMemberID(_ context.Context, userID uint, first, skip int) ([]domain.Raffle, error) {
	var raffles []domain.Raffle
	for _, m := range f.memberships {
		if m.UserID == userID {
			raffles = append(raffles, f.raffles[m.RaffleID])
		}
	}
	sort.Slice(raffles, func(i, j int) bool { return raffles[i].ID < raffles[j].ID })

	return pageRaffles(raffles, first, skip), nil
}

func pageRaffles(raffles []domain.Raffle, first, skip int) []domain.Raffle {
	if skip > 0 && skip < len(raffles) {
		raffles = raffles[skip:]
	} else if skip >= len(raffles) {
		raffles = nil
	}
	if first > 0 && first < len(raffles) {
		raffles = raffles[:first]
	}

	return raffles
}

func (f *fakeRaffleRepo) CreateMembership(_ context.Context, membership domain.UserRaffle) (domain.UserRaffle, error) {
	for _, m := range f.memberships {
		if m.UserID == membership.UserID && m.RaffleID == membership.RaffleID {
			return domain.UserRaffle{}, repository.ErrMembershipExists
		}
	}

	membership.ID = f.id()
	f.memberships[membership.ID] = membership

	return membership, nil
}

func (f *fakeRaffleRepo) FindMembership(_ context.Context, userID, raffleID uint) (domain.UserRaffle, error) {
	for _, m := range f.memberships {
		if m.UserID == userID && m.RaffleID == raffleID {
			return m, nil
		}
	}

	return domain.UserRaffle{}, repository.ErrMembershipNotFound
}

func (f *fakeRaffleRepo) UpdateMembership(_ context.Context, membership domain.UserRaffle) (domain.UserRaffle, error) {
	f.memberships[membership.ID] = membership

	return membership, nil
}

func (f *fakeRaffleRepo) DeleteMembership(_ context.Context, userID, raffleID uint) error {
	for id, m := range f.memberships {
		if m.UserID == userID && m.RaffleID == raffleID {
			delete(f.memberships, id)
			return nil
		}
	}

	return repository.ErrMembershipNotFound
}

func (f *fakeRaffleRepo) CreatePrize(_ context.Context, prize domain.Prize) (domain.Prize, error) {
	for _, p := range f.prizes {
		if p.RaffleID == prize.RaffleID && p.PrizeNumber == prize.PrizeNumber {
			return domain.Prize{}, repository.ErrPrizeNumberTaken
		}
	}

	prize.ID = f.id()
	f.prizes[prize.ID] = prize

	return prize, nil
}

func (f *fakeRaffleRepo) FindPrizeByID(_ context.Context, id uint) (domain.Prize, error) {
	prize, ok := f.prizes[id]
	if !ok {
		return domain.Prize{}, repository.ErrPrizeNotFound
	}

	return prize, nil
}

func (f *fakeRaffleRepo) FindPrizeByNumber(_ context.Context, raffleID uint, prizeNumber int) (domain.Prize, error) {
	for _, p := range f.prizes {
		if p.RaffleID == raffleID && p.PrizeNumber == prizeNumber {
			return p, nil
		}
	}

	return domain.Prize{}, repository.ErrPrizeNotFound
}

func (f *fakeRaffleRepo) UpdatePrize(_ context.Context, prize domain.Prize) (domain.Prize, error) {
	f.prizes[prize.ID] = prize

	return prize, nil
}

func (f *fakeRaffleRepo) DeletePrize(_ context.Context, prize domain.Prize) error {
	for _, o := range f.orders {
		if o.RaffleID == prize.RaffleID {
			return repository.ErrTicketsSold
		}
	}
	if _, ok := f.prizes[prize.ID]; !ok {
		return repository.ErrPrizeNotFound
	}
	delete(f.prizes, prize.ID)

	return nil
}

func (f *fakeRaffleRepo) CreateOrder(_ context.Context, order domain.Order) (domain.Order, error) {
	order.ID = f.id()
	f.orders = append(f.orders, order)

	return order, nil
}
