package graphql

import (
	"errors"
	"regexp"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	gql "github.com/graph-gophers/graphql-go"
)

// The password rule uses lookaheads, which the stdlib RE2 engine rejects.
const passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,}$`

var (
	passwordExp = regexp2.MustCompile(passwordRegexPattern, regexp2.None)
	cpfExp      = regexp.MustCompile(`^\d{3}\.?\d{3}\.?\d{3}-?\d{2}$`)

	errInvalidPassword   = errors.New("the password must be at least 8 characters and contain 1 letter and 1 number")
	errMissingIdentifier = errors.New("either email or cpf is required")
)

func validPassword(password string) error {
	ok, err := passwordExp.MatchString(password)
	if err != nil || !ok {
		return errInvalidPassword
	}

	return nil
}

type CreateUserInput struct {
	Name     string
	Email    string
	CPF      string
	Password string
}

func (in *CreateUserInput) Validate() error {
	err := validation.ValidateStruct(
		in,
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.CPF, validation.Required, validation.Match(cpfExp)),
		validation.Field(&in.Password, validation.Required),
	)
	if err != nil {
		return err
	}

	return validPassword(in.Password)
}

type LoginUserInput struct {
	Email    *string
	CPF      *string
	Password string
}

func (in *LoginUserInput) Validate() error {
	if err := validation.ValidateStruct(
		in,
		validation.Field(&in.Password, validation.Required),
	); err != nil {
		return err
	}

	if in.Email == nil && in.CPF == nil {
		return errMissingIdentifier
	}

	return nil
}

// Identifier is whichever of email/cpf the caller supplied; login matches
// it against both columns.
func (in *LoginUserInput) Identifier() string {
	if in.Email != nil {
		return *in.Email
	}

	return *in.CPF
}

type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
}

func (in *UpdateUserInput) Validate() error {
	err := validation.ValidateStruct(
		in,
		validation.Field(&in.Name, validation.NilOrNotEmpty),
		validation.Field(&in.Email, is.Email),
	)
	if err != nil {
		return err
	}

	if in.Password != nil {
		return validPassword(*in.Password)
	}

	return nil
}

type CreateRaffleInput struct {
	Size     int32
	DrawDate gql.Time
	Price    float64
	Prizes   CreatePrizeInput
}

func (in *CreateRaffleInput) Validate() error {
	if err := validation.ValidateStruct(
		in,
		validation.Field(&in.Size, validation.Required, validation.Min(1)),
		validation.Field(&in.Price, validation.Required, validation.Min(0.0)),
	); err != nil {
		return err
	}

	return in.Prizes.Validate()
}

type CreatePrizeInput struct {
	PrizeNumber int32
	Prize       string
	Description *string
}

func (in *CreatePrizeInput) Validate() error {
	return validation.ValidateStruct(
		in,
		validation.Field(&in.PrizeNumber, validation.Required, validation.Min(1)),
		validation.Field(&in.Prize, validation.Required),
	)
}

type UpdatePrizeInput struct {
	PrizeNumber *int32
	Prize       *string
	Description *string
}

func (in *UpdatePrizeInput) Validate() error {
	return validation.ValidateStruct(
		in,
		validation.Field(&in.Prize, validation.NilOrNotEmpty),
	)
}

type UserRaffleInput struct {
	UserRole string
}

func (in *UserRaffleInput) Validate() error {
	return validation.ValidateStruct(
		in,
		validation.Field(&in.UserRole, validation.Required, validation.In("ADMIN", "SELLER")),
	)
}

type CreateOrderInput struct {
	RaffleID      gql.ID
	RaffleNumber  int32
	PaymentMethod string
	BuyerID       *gql.ID
	OrderStatus   *string
	SellerToken   *string
}

func (in *CreateOrderInput) Validate() error {
	return validation.ValidateStruct(
		in,
		validation.Field(&in.RaffleNumber, validation.Required, validation.Min(1)),
		validation.Field(&in.PaymentMethod, validation.Required),
	)
}
