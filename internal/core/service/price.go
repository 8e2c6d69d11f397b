package service

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// PriceFormatter renders amounts as locale currency strings, e.g. ₹1,499.00.
type PriceFormatter struct {
	printer  *message.Printer
	currency string
	symbol   string
}

func NewPriceFormatter(locale, currencyCode string) (*PriceFormatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("price formatter: locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return nil, fmt.Errorf("price formatter: currency %q: %w", currencyCode, err)
	}

	printer := message.NewPrinter(tag)
	code := unit.String()

	// CLDR symbol for the locale; currencies without one render as the ISO code.
	symbol := printer.Sprint(currency.Symbol(unit))
	if symbol == code {
		symbol += " "
	}

	return &PriceFormatter{
		printer:  printer,
		currency: code,
		symbol:   symbol,
	}, nil
}

func (f *PriceFormatter) Currency() string {
	return f.currency
}

func (f *PriceFormatter) Format(amount float64) string {
	return f.symbol + f.printer.Sprint(number.Decimal(amount, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// minorUnits converts a major-unit price to the integer amount gateways expect.
func minorUnits(price float64) int64 {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
