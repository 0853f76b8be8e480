package graphql

import (
	"testing"
	"time"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func validCreateUserInput() CreateUserInput {
	return CreateUserInput{
		Name:     "Wagner",
		Email:    "wagner@example.com",
		CPF:      "111.222.333-44",
		Password: "Wagner1234",
	}
}

func TestCreateUserInput_Validate(t *testing.T) {
	in := validCreateUserInput()
	assert.NoError(t, in.Validate())
}

func TestCreateUserInput_Validate_BadEmail(t *testing.T) {
	in := validCreateUserInput()
	in.Email = "not-an-email"
	assert.Error(t, in.Validate())
}

func TestCreateUserInput_Validate_BadCPF(t *testing.T) {
	in := validCreateUserInput()
	in.CPF = "12345"
	assert.Error(t, in.Validate())
}

func TestCreateUserInput_Validate_CPFWithoutPunctuation(t *testing.T) {
	in := validCreateUserInput()
	in.CPF = "11122233344"
	assert.NoError(t, in.Validate())
}

func TestCreateUserInput_Validate_Password(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"letters and digits", "Wagner1234", false},
		{"too short", "Wag1", true},
		{"digits only", "12345678", true},
		{"letters only", "abcdefgh", true},
		{"empty", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validCreateUserInput()
			in.Password = tc.password

			err := in.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoginUserInput_Validate(t *testing.T) {
	byEmail := LoginUserInput{Email: strPtr("wagner@example.com"), Password: "Wagner1234"}
	require.NoError(t, byEmail.Validate())
	assert.Equal(t, "wagner@example.com", byEmail.Identifier())

	byCPF := LoginUserInput{CPF: strPtr("111.222.333-44"), Password: "Wagner1234"}
	require.NoError(t, byCPF.Validate())
	assert.Equal(t, "111.222.333-44", byCPF.Identifier())

	neither := LoginUserInput{Password: "Wagner1234"}
	assert.ErrorIs(t, neither.Validate(), errMissingIdentifier)

	noPassword := LoginUserInput{Email: strPtr("wagner@example.com")}
	assert.Error(t, noPassword.Validate())
}

func TestUpdateUserInput_Validate(t *testing.T) {
	assert.NoError(t, (&UpdateUserInput{}).Validate())
	assert.NoError(t, (&UpdateUserInput{Name: strPtr("Wagner")}).Validate())
	assert.Error(t, (&UpdateUserInput{Name: strPtr("")}).Validate())
	assert.Error(t, (&UpdateUserInput{Email: strPtr("nope")}).Validate())
	assert.Error(t, (&UpdateUserInput{Password: strPtr("short")}).Validate())
	assert.NoError(t, (&UpdateUserInput{Password: strPtr("NewPass1234")}).Validate())
}

func TestCreateRaffleInput_Validate(t *testing.T) {
	in := CreateRaffleInput{
		Size:     100,
		DrawDate: gql.Time{Time: time.Now().AddDate(0, 1, 0)},
		Price:    5,
		Prizes: CreatePrizeInput{
			PrizeNumber: 1,
			Prize:       "Bicicleta",
		},
	}
	require.NoError(t, in.Validate())

	noSize := in
	noSize.Size = 0
	assert.Error(t, noSize.Validate())

	noPrizeName := in
	noPrizeName.Prizes.Prize = ""
	assert.Error(t, noPrizeName.Validate())
}

func TestUserRaffleInput_Validate(t *testing.T) {
	assert.NoError(t, (&UserRaffleInput{UserRole: "ADMIN"}).Validate())
	assert.NoError(t, (&UserRaffleInput{UserRole: "SELLER"}).Validate())
	assert.Error(t, (&UserRaffleInput{UserRole: "OWNER"}).Validate())
	assert.Error(t, (&UserRaffleInput{}).Validate())
}

func TestCreateOrderInput_Validate(t *testing.T) {
	in := CreateOrderInput{
		RaffleID:      "1",
		RaffleNumber:  42,
		PaymentMethod: "pix",
	}
	require.NoError(t, in.Validate())

	noNumber := in
	noNumber.RaffleNumber = 0
	assert.Error(t, noNumber.Validate())

	noMethod := in
	noMethod.PaymentMethod = ""
	assert.Error(t, noMethod.Validate())
}
