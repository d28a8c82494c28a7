package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"owner", RoleOwner, false},
		{"proprietaire", RoleOwner, false},
		{"Propriétaire", RoleOwner, false},
		{"caissier", RoleCashier, false},
		{" CASHIER ", RoleCashier, false},
		{"", "", true},
		{"admin", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				_, ok := IsValidation(err)
				assert.True(t, ok, "expected a validation error")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePaymentMethod(t *testing.T) {
	tests := []struct {
		in   string
		want PaymentMethod
	}{
		{"", PaymentCash},
		{"Espèces", PaymentCash},
		{"Mobile Money", PaymentMobileMoney},
		{"mobile_money", PaymentMobileMoney},
		{"CB", PaymentCard},
		{"card", PaymentCard},
	}
	for _, tt := range tests {
		got, err := ParsePaymentMethod(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}

	_, err := ParsePaymentMethod("cheque")
	assert.Error(t, err)
}

func TestExpenseCategoriesRoundTripLabels(t *testing.T) {
	assert.Len(t, ExpenseCategories, 9)
	for _, c := range ExpenseCategories {
		got, err := ParseExpenseCategory(c.Label())
		require.NoError(t, err, "label %q", c.Label())
		assert.Equal(t, c, got)
	}

	_, err := ParseExpenseCategory("Loyer")
	assert.Error(t, err, "charge types are not expense categories")
}

func TestChargeTypesRoundTripLabels(t *testing.T) {
	assert.Len(t, ChargeTypes, 8)
	for _, ct := range ChargeTypes {
		got, err := ParseChargeType(ct.Label())
		require.NoError(t, err, "label %q", ct.Label())
		assert.Equal(t, ct, got)
	}

	got, err := ParseChargeType("Électricité")
	require.NoError(t, err)
	assert.Equal(t, ChargeElectricity, got)
}

func TestValidatePIN(t *testing.T) {
	assert.NoError(t, ValidatePIN("pin", "1234"))
	assert.NoError(t, ValidatePIN("pin", "123456"))

	for _, bad := range []string{"12", "123", "1234567", "12a4", "    "} {
		err := ValidatePIN("pin", bad)
		ve, ok := IsValidation(err)
		require.True(t, ok, "pin %q should be rejected", bad)
		assert.Equal(t, "pin", ve.Field)
	}
}

func TestValidateEmail(t *testing.T) {
	got, err := ValidateEmail("  Papa@Tacos.CI ")
	require.NoError(t, err)
	assert.Equal(t, "papa@tacos.ci", got)

	for _, bad := range []string{"", "papa", "papa@tacos", "Papa <papa@tacos.ci>"} {
		_, err := ValidateEmail(bad)
		assert.Error(t, err, "email %q", bad)
	}
}

func TestProfileFieldsValidate(t *testing.T) {
	ok := ProfileFields{LastName: "Koné"}
	assert.NoError(t, ok.Validate())

	tests := []struct {
		name  string
		in    ProfileFields
		field string
	}{
		{"short last name", ProfileFields{LastName: "K"}, "last_name"},
		{"long first name", ProfileFields{LastName: "Koné", FirstName: string(make([]byte, 51))}, "first_name"},
		{"short phone", ProfileFields{LastName: "Koné", Phone: "0102"}, "phone"},
		{"long phone", ProfileFields{LastName: "Koné", Phone: "0102030405060708"}, "phone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve, ok := IsValidation(tt.in.Validate())
			require.True(t, ok)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestValidateAmount(t *testing.T) {
	for _, ok := range []string{"0", "0.01", "15000", "1500.5", "999999999999.99"} {
		assert.NoError(t, ValidateAmount(decimal.RequireFromString(ok)), "amount %s", ok)
	}

	for _, bad := range []string{"-5", "1.005", "1000000000000", "999999999999.991"} {
		ve, ok := IsValidation(ValidateAmount(decimal.RequireFromString(bad)))
		require.True(t, ok, "amount %s should be rejected", bad)
		assert.Equal(t, "amount", ve.Field)
	}
}

func TestCredentialErrorsMatchCredentialSentinel(t *testing.T) {
	assert.True(t, errors.Is(ErrInvalidCredentials, ErrCredential))
	assert.True(t, errors.Is(ErrOldPINIncorrect, ErrCredential))
	assert.False(t, errors.Is(ErrDuplicateAccount, ErrCredential))
	assert.False(t, errors.Is(ErrInvalidCredentials, ErrOldPINIncorrect))
}

func TestStoreErrorUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStoreError("list income", cause)

	var se *StoreError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "list income", se.Op)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, NewStoreError("noop", nil))
	assert.Same(t, err, NewStoreError("outer", err))
}
