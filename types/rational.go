package types

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Rational is a fraction, used for frame rates (frames per second).
type Rational struct {
	Num int64
	Den int64
}

func (r Rational) IsPositive() bool {
	return r.Num > 0 && r.Den > 0
}

func (r Rational) Reduce() Rational {
	if r.Den == 0 {
		return r
	}
	rat := big.NewRat(r.Num, r.Den)
	return Rational{
		Num: rat.Num().Int64(),
		Den: rat.Denom().Int64(),
	}
}

func (r Rational) Float64() float64 {
	return float64(r.Num) / float64(r.Den)
}

// newNTSCRational returns x000/1001 if f is close to it.
func newNTSCRational(f float64) *Rational {
	const den = 1001
	num := int64(math.Ceil(f)) * 1000
	if math.Abs(f-float64(num)/den) < 1e-2 {
		return &Rational{Num: num, Den: den}
	}
	return nil
}

// RationalFromApproxFloat64 guesses the frame rate that was meant by a rounded
// value, preferring the NTSC family (24000/1001, 30000/1001, ...).
func RationalFromApproxFloat64(fps float64) Rational {
	if float64(int64(fps)) == fps {
		return Rational{Num: int64(fps), Den: 1}
	}
	if r := newNTSCRational(fps); r != nil {
		return *r
	}
	const precision = 100
	rat := new(big.Rat).SetFrac64(int64(math.Round(fps*precision)), precision)
	return Rational{
		Num: rat.Num().Int64(),
		Den: rat.Denom().Int64(),
	}
}

func rationalFromDecimal(s string) (Rational, error) {
	rat, ok := new(big.Rat).SetString(s)
	if !ok {
		return Rational{}, fmt.Errorf("not a decimal number")
	}
	if !rat.Num().IsInt64() || !rat.Denom().IsInt64() {
		return Rational{}, fmt.Errorf("the value does not fit into int64/int64")
	}
	return Rational{
		Num: rat.Num().Int64(),
		Den: rat.Denom().Int64(),
	}, nil
}

// RationalFromString parses "num/den", an exact decimal ("23.976") or an
// approximate decimal prefixed with '~' ("~23.976").
func RationalFromString(s string) (*Rational, error) {
	var r Rational
	switch {
	case len(s) == 0:
		return nil, fmt.Errorf("unable to parse Rational from empty string")
	case strings.Contains(s, "/"):
		numStr, denStr, _ := strings.Cut(s, "/")
		num, err := strconv.ParseInt(strings.TrimSpace(numStr), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("unable to parse the numerator of %q: %w", s, err)
		}
		den, err := strconv.ParseInt(strings.TrimSpace(denStr), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("unable to parse the denominator of %q: %w", s, err)
		}
		r = Rational{Num: num, Den: den}
	case s[0] == '~':
		fps, err := strconv.ParseFloat(s[1:], 64)
		if err != nil {
			return nil, fmt.Errorf("unable to parse Rational from %q: %w", s, err)
		}
		r = RationalFromApproxFloat64(fps)
	default:
		var err error
		r, err = rationalFromDecimal(s)
		if err != nil {
			return nil, fmt.Errorf("unable to parse Rational from %q: %w", s, err)
		}
	}
	if r.Den == 0 {
		return nil, fmt.Errorf("denominator cannot be zero")
	}
	return &r, nil
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

func (r Rational) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Rational) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("unable to unmarshal Rational from JSON '%s': %w", b, err)
	}
	return r.set(s)
}

func (r Rational) MarshalYAML() ([]byte, error) {
	return []byte(strconv.Quote(r.String())), nil
}

func (r *Rational) UnmarshalYAML(b []byte) error {
	var s string
	if err := yaml.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("unable to unmarshal Rational from YAML '%s': %w", b, err)
	}
	return r.set(s)
}

func (r *Rational) set(s string) error {
	v, err := RationalFromString(s)
	if err != nil {
		return fmt.Errorf("unable to unmarshal Rational from string %q: %w", s, err)
	}
	*r = *v
	return nil
}
