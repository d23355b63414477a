// Package display converts advisor output into what a person reads:
// display-unit temperatures and rendered message templates.
package display

import (
	"errors"
	"math"
	"strings"
)

// Unit is a display temperature unit. The advisor itself always works in F.
type Unit string

const (
	Fahrenheit Unit = "F"
	Celsius    Unit = "C"
)

var ErrUnknownUnit = errors.New("unknown temperature unit: use F or C")

// ParseUnit accepts F/C in any case, with or without the degree sign.
func ParseUnit(s string) (Unit, error) {
	s = strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "°")))
	switch s {
	case "", "F", "FAHRENHEIT":
		return Fahrenheit, nil
	case "C", "CELSIUS":
		return Celsius, nil
	default:
		return "", ErrUnknownUnit
	}
}

// ToDisplay converts a canonical °F temperature to u, rounded to one decimal.
func ToDisplay(tempF float64, u Unit) float64 {
	if u == Celsius {
		return round1((tempF - 32) * 5 / 9)
	}
	return round1(tempF)
}

// FromDisplay converts a temperature entered in u to canonical °F.
func FromDisplay(temp float64, u Unit) float64 {
	if u == Celsius {
		return temp*9/5 + 32
	}
	return temp
}

// DeltaToDisplay converts a temperature difference (or a °/hour rate).
func DeltaToDisplay(deltaF float64, u Unit) float64 {
	if u == Celsius {
		return round1(deltaF * 5 / 9)
	}
	return round1(deltaF)
}

// DeltaFromDisplay converts a temperature difference entered in u to °F.
func DeltaFromDisplay(delta float64, u Unit) float64 {
	if u == Celsius {
		return delta * 9 / 5
	}
	return delta
}

// Symbol is the unit suffix shown next to a number.
func (u Unit) Symbol() string {
	if u == Celsius {
		return "°C"
	}
	return "°F"
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
