package domain

import (
	"fmt"
	"math"
	"strings"
)

// Denomination is one of the four fixed-ratio currency units.
// 1 dukaten = 10 silbertaler = 100 heller = 1000 kreuzer.
type Denomination int

const (
	Dukaten Denomination = iota
	Silbertaler
	Heller
	Kreuzer
)

func (d Denomination) String() string {
	switch d {
	case Dukaten:
		return "dukaten"
	case Silbertaler:
		return "silbertaler"
	case Heller:
		return "heller"
	case Kreuzer:
		return "kreuzer"
	default:
		return "unknown"
	}
}

// CoinWeights maps a denomination to the weight of a single coin in stein.
type CoinWeights map[Denomination]float64

// DefaultCoinWeights holds the approximate weight per coin. The values are
// placeholders with equal weight per denomination; adjust per denomination
// once real weights are known.
var DefaultCoinWeights = CoinWeights{
	Dukaten:     0.1,
	Silbertaler: 0.1,
	Heller:      0.1,
	Kreuzer:     0.1,
}

// Coins is an amount split into the four denominations. It is used both as
// an account balance and as a transfer amount.
type Coins struct {
	Dukaten     int64 `json:"dukaten"`
	Silbertaler int64 `json:"silbertaler"`
	Heller      int64 `json:"heller"`
	Kreuzer     int64 `json:"kreuzer"`
}

func (c Coins) IsZero() bool {
	return c.Dukaten == 0 && c.Silbertaler == 0 && c.Heller == 0 && c.Kreuzer == 0
}

func (c Coins) HasNegative() bool {
	return c.Dukaten < 0 || c.Silbertaler < 0 || c.Heller < 0 || c.Kreuzer < 0
}

func (c Coins) Add(o Coins) Coins {
	return Coins{
		Dukaten:     c.Dukaten + o.Dukaten,
		Silbertaler: c.Silbertaler + o.Silbertaler,
		Heller:      c.Heller + o.Heller,
		Kreuzer:     c.Kreuzer + o.Kreuzer,
	}
}

func (c Coins) Sub(o Coins) Coins {
	return Coins{
		Dukaten:     c.Dukaten - o.Dukaten,
		Silbertaler: c.Silbertaler - o.Silbertaler,
		Heller:      c.Heller - o.Heller,
		Kreuzer:     c.Kreuzer - o.Kreuzer,
	}
}

// Covers reports whether every denomination of c is at least the matching
// denomination of o. Denominations are not converted into each other.
func (c Coins) Covers(o Coins) bool {
	return c.Dukaten >= o.Dukaten &&
		c.Silbertaler >= o.Silbertaler &&
		c.Heller >= o.Heller &&
		c.Kreuzer >= o.Kreuzer
}

// ValueInSilver is the silbertaler-denominated value of the amount.
func (c Coins) ValueInSilver() float64 {
	return float64(c.Dukaten)*10 + float64(c.Silbertaler) +
		float64(c.Heller)/10 + float64(c.Kreuzer)/100
}

// Weight is the total coin weight in stein for the given weight table.
func (c Coins) Weight(weights CoinWeights) float64 {
	return float64(c.Dukaten)*weights[Dukaten] +
		float64(c.Silbertaler)*weights[Silbertaler] +
		float64(c.Heller)*weights[Heller] +
		float64(c.Kreuzer)*weights[Kreuzer]
}

// Account is a currency balance owned by exactly one container.
type Account struct {
	Coins
}

func NewAccount() *Account {
	return &Account{}
}

// Get returns the counter for one denomination.
func (a *Account) Get(d Denomination) int64 {
	switch d {
	case Dukaten:
		return a.Dukaten
	case Silbertaler:
		return a.Silbertaler
	case Heller:
		return a.Heller
	case Kreuzer:
		return a.Kreuzer
	default:
		return 0
	}
}

// Adjust adds delta to one denomination counter. A zero delta is a no-op so
// callers do not trigger redundant recompute/save cycles. The adjustment is
// reported back so callers know whether anything changed.
func (a *Account) Adjust(d Denomination, delta int64) bool {
	if delta == 0 {
		return false
	}
	switch d {
	case Dukaten:
		a.Dukaten += delta
	case Silbertaler:
		a.Silbertaler += delta
	case Heller:
		a.Heller += delta
	case Kreuzer:
		a.Kreuzer += delta
	default:
		return false
	}
	return true
}

// TransferTo debits this account by amount and credits target by the same
// amount. It does not enforce non-negative balances; the ledger checks
// sufficiency before calling.
func (a *Account) TransferTo(target *Account, amount Coins) error {
	if target == nil {
		return ErrInvalidTarget
	}
	a.Coins = a.Coins.Sub(amount)
	target.Coins = target.Coins.Add(amount)
	return nil
}

// TotalWeight is the weight of all coins in the account using the default
// weight table.
func (a *Account) TotalWeight() float64 {
	return a.Coins.Weight(DefaultCoinWeights)
}

// TotalValueInSilver is the balance expressed in silbertaler.
func (a *Account) TotalValueInSilver() float64 {
	return a.Coins.ValueInSilver()
}

// TotalValueInDukaten is the balance expressed in dukaten.
func (a *Account) TotalValueInDukaten() float64 {
	return a.Coins.ValueInSilver() / 10
}

// CalculateParts converts a silbertaler-denominated value into its canonical
// denomination breakdown, largest denomination first. The input is rounded to
// the nearest hundredth (kreuzer precision) before splitting.
func CalculateParts(valueInSilver float64) Coins {
	totalKreuzer := int64(math.Round(valueInSilver * 100))
	if totalKreuzer == 0 {
		return Coins{}
	}

	parts := Coins{}
	parts.Dukaten = totalKreuzer / 1000
	rest := totalKreuzer % 1000

	parts.Silbertaler = rest / 100
	rest = rest % 100

	parts.Heller = rest / 10
	parts.Kreuzer = rest % 10
	return parts
}

// FormatValue renders a silbertaler-denominated value as its denomination
// breakdown, skipping zero parts. Example: 12.55 -> "1 D 2 S 5 H 5 K".
// An all-zero value renders as "0 S".
func FormatValue(valueInSilver float64) string {
	parts := CalculateParts(valueInSilver)

	var out []string
	if parts.Dukaten > 0 {
		out = append(out, fmt.Sprintf("%d D", parts.Dukaten))
	}
	if parts.Silbertaler > 0 {
		out = append(out, fmt.Sprintf("%d S", parts.Silbertaler))
	}
	if parts.Heller > 0 {
		out = append(out, fmt.Sprintf("%d H", parts.Heller))
	}
	if parts.Kreuzer > 0 {
		out = append(out, fmt.Sprintf("%d K", parts.Kreuzer))
	}
	if len(out) == 0 {
		return "0 S"
	}
	return strings.Join(out, " ")
}
