package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Keys of the settings table.
const (
	KeyHousingDues   = "housing_dues"
	KeySocialDues    = "social_dues"
	KeyRTDues        = "rt_dues"
	KeyBankName      = "bank_name"
	KeyAccountNumber = "account_number"
	KeyAccountName   = "account_name"
)

var ErrInvalidValue = errors.New("invalid setting value")

// Dues is the monthly amount charged per fund, in whole rupiah.
type Dues struct {
	Housing int64 `json:"housing"`
	Social  int64 `json:"social"`
	RT      int64 `json:"rt"`
}

// Total is the monthly amount a resident pays.
func (d Dues) Total() int64 {
	return d.Housing + d.Social + d.RT
}

// BankAccount is the transfer destination shown to residents.
type BankAccount struct {
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
}

type Settings struct {
	Dues Dues        `json:"dues"`
	Bank BankAccount `json:"bank"`
}

// ParseAmount reads a dues value such as "50000", "50000.00" or " 50000 ".
// Fractions and negative values are rejected.
func ParseAmount(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, raw)
	}

	if d.IsNegative() || !d.IsInteger() {
		return 0, fmt.Errorf("%w: %q must be a whole non-negative amount", ErrInvalidValue, raw)
	}

	return d.IntPart(), nil
}

// Validate rejects negative dues.
func (s Settings) Validate() error {
	if s.Dues.Housing < 0 || s.Dues.Social < 0 || s.Dues.RT < 0 {
		return fmt.Errorf("%w: dues must not be negative", ErrInvalidValue)
	}

	return nil
}

func (s Settings) values() map[string]string {
	return map[string]string{
		KeyHousingDues:   fmt.Sprint(s.Dues.Housing),
		KeySocialDues:    fmt.Sprint(s.Dues.Social),
		KeyRTDues:        fmt.Sprint(s.Dues.RT),
		KeyBankName:      s.Bank.BankName,
		KeyAccountNumber: s.Bank.AccountNumber,
		KeyAccountName:   s.Bank.AccountName,
	}
}
