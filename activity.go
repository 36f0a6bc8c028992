package pdfimport

import (
	"errors"
	"fmt"
	"time"

	"github.com/etnz/pdfimport/date"
	"github.com/shopspring/decimal"
)

// ErrInvalidActivity is wrapped by all the errors returned by Activity.Validate.
var ErrInvalidActivity = errors.New("invalid activity")

// ActivityType is a typed string for identifying activities.
type ActivityType string

// Activity types produced by the parsers.
const (
	Buy      ActivityType = "Buy"
	Sell     ActivityType = "Sell"
	Dividend ActivityType = "Dividend"
)

// Valid reports whether t is one of the known activity types.
func (t ActivityType) Valid() bool {
	switch t {
	case Buy, Sell, Dividend:
		return true
	}
	return false
}

// Activity is one transaction read from a broker document.
//
// All amounts are in the HomeCurrency. When the document was in another
// currency, ForeignCurrency and FxRate record the conversion that was applied.
type Activity struct {
	Broker   string
	Type     ActivityType
	Date     date.Date
	DateTime time.Time
	ISIN     string
	Company  string
	Shares   decimal.Decimal
	Price    decimal.Decimal // Price of one share.
	Fee      decimal.Decimal
	Tax      decimal.Decimal // Tax is positive when paid.
	Amount   decimal.Decimal

	ForeignCurrency string
	FxRate          decimal.Decimal // FxRate is the number of ForeignCurrency units for one HomeCurrency unit.
}

// Validate checks the activity fields and returns a normalized copy.
//
// It is meant to be called once, when the activity is built, errors describe
// the first problem found and wrap ErrInvalidActivity.
func (a Activity) Validate() (Activity, error) {
	if a.Broker == "" {
		return a, fmt.Errorf("%w: broker is missing", ErrInvalidActivity)
	}
	if !a.Type.Valid() {
		return a, fmt.Errorf("%w: unknown type %q", ErrInvalidActivity, a.Type)
	}
	if a.Date.IsZero() {
		return a, fmt.Errorf("%w: %s date is missing", ErrInvalidActivity, a.Type)
	}
	if a.DateTime.IsZero() {
		a.DateTime = a.Date.Timestamp()
	}
	if a.ISIN == "" && a.Company == "" {
		return a, fmt.Errorf("%w: %s on %s has neither ISIN nor company", ErrInvalidActivity, a.Type, a.Date)
	}
	if a.ISIN != "" {
		if err := ValidateISIN(a.ISIN); err != nil {
			return a, fmt.Errorf("%w: ISIN %q: %w", ErrInvalidActivity, a.ISIN, err)
		}
	}
	if !a.Shares.IsPositive() {
		return a, fmt.Errorf("%w: %s shares must be positive, got %s", ErrInvalidActivity, a.Type, a.Shares)
	}
	if !a.Price.IsPositive() {
		return a, fmt.Errorf("%w: %s price must be positive, got %s", ErrInvalidActivity, a.Type, a.Price)
	}
	if !a.Amount.IsPositive() {
		return a, fmt.Errorf("%w: %s amount must be positive, got %s", ErrInvalidActivity, a.Type, a.Amount)
	}
	if a.Fee.IsNegative() {
		return a, fmt.Errorf("%w: %s fee must not be negative, got %s", ErrInvalidActivity, a.Type, a.Fee)
	}
	if a.ForeignCurrency != "" {
		if err := ValidateCurrency(a.ForeignCurrency); err != nil {
			return a, fmt.Errorf("%w: foreign currency: %w", ErrInvalidActivity, err)
		}
		if a.ForeignCurrency == HomeCurrency {
			return a, fmt.Errorf("%w: foreign currency cannot be the home currency %s", ErrInvalidActivity, HomeCurrency)
		}
		if !a.FxRate.IsPositive() {
			return a, fmt.Errorf("%w: fx rate for %s must be positive, got %s", ErrInvalidActivity, a.ForeignCurrency, a.FxRate)
		}
	} else if !a.FxRate.IsZero() {
		return a, fmt.Errorf("%w: fx rate %s without a foreign currency", ErrInvalidActivity, a.FxRate)
	}
	return a, nil
}

// Equal reports whether a and b describe the same activity. Decimals are
// compared by value.
func (a Activity) Equal(b Activity) bool {
	return a.Broker == b.Broker &&
		a.Type == b.Type &&
		a.Date == b.Date &&
		a.DateTime.Equal(b.DateTime) &&
		a.ISIN == b.ISIN &&
		a.Company == b.Company &&
		a.Shares.Equal(b.Shares) &&
		a.Price.Equal(b.Price) &&
		a.Fee.Equal(b.Fee) &&
		a.Tax.Equal(b.Tax) &&
		a.Amount.Equal(b.Amount) &&
		a.ForeignCurrency == b.ForeignCurrency &&
		a.FxRate.Equal(b.FxRate)
}

func (a Activity) String() string {
	return fmt.Sprintf("%s %s %s %s x %s = %s", a.Date, a.Type, a.ISIN, a.Shares, a.Price, FormatAmount(a.Amount, HomeCurrency))
}

// MarshalJSON implements the json.Marshaler interface for Activity.
func (a Activity) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("broker", a.Broker)
	w.Append("type", a.Type)
	w.Append("date", a.Date)
	w.Append("datetime", a.DateTime.UTC().Format(time.RFC3339))
	w.Optional("isin", a.ISIN)
	w.Optional("company", a.Company)
	w.Number("shares", a.Shares)
	w.Number("price", a.Price)
	w.Number("amount", a.Amount)
	w.Number("fee", a.Fee)
	w.Number("tax", a.Tax)
	w.Optional("foreignCurrency", a.ForeignCurrency)
	w.OptionalNumber("fxRate", a.FxRate)
	return w.MarshalJSON()
}

// yamlActivity is the YAML form of an Activity. Decimals are written as
// strings to keep all their digits.
type yamlActivity struct {
	Broker          string `yaml:"broker"`
	Type            string `yaml:"type"`
	Date            string `yaml:"date"`
	DateTime        string `yaml:"datetime"`
	ISIN            string `yaml:"isin,omitempty"`
	Company         string `yaml:"company,omitempty"`
	Shares          string `yaml:"shares"`
	Price           string `yaml:"price"`
	Amount          string `yaml:"amount"`
	Fee             string `yaml:"fee"`
	Tax             string `yaml:"tax"`
	ForeignCurrency string `yaml:"foreignCurrency,omitempty"`
	FxRate          string `yaml:"fxRate,omitempty"`
}

// MarshalYAML implements the yaml.Marshaler interface for Activity.
func (a Activity) MarshalYAML() (any, error) {
	y := yamlActivity{
		Broker:          a.Broker,
		Type:            string(a.Type),
		Date:            a.Date.String(),
		DateTime:        a.DateTime.UTC().Format(time.RFC3339),
		ISIN:            a.ISIN,
		Company:         a.Company,
		Shares:          a.Shares.String(),
		Price:           a.Price.String(),
		Amount:          a.Amount.String(),
		Fee:             a.Fee.String(),
		Tax:             a.Tax.String(),
		ForeignCurrency: a.ForeignCurrency,
	}
	if !a.FxRate.IsZero() {
		y.FxRate = a.FxRate.String()
	}
	return y, nil
}
