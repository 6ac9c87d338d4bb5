// Package calc holds the numeric building blocks of the commission engine:
// monetary value normalization, present value discounting and rounding.
package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NormalizeValue converts a monetary cell into an amount. Strings in
// "1.234,56" notation are accepted: when a comma is present every period is
// dropped and the comma becomes the decimal point. Empty, unparseable or
// non-finite input yields 0.
func NormalizeValue(v any) float64 {
	switch value := v.(type) {
	case nil:
		return 0
	case float64:
		return finiteOrZero(value)
	case float32:
		return finiteOrZero(float64(value))
	case int:
		return float64(value)
	case int32:
		return float64(value)
	case int64:
		return float64(value)
	case uint:
		return float64(value)
	case uint32:
		return float64(value)
	case uint64:
		return float64(value)
	case string:
		return parseAmount(value)
	case fmt.Stringer:
		return parseAmount(value.String())
	default:
		return 0
	}
}

func parseAmount(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return finiteOrZero(parsed)
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// RatePercent expresses a rate fraction as a percentage with four decimal
// places.
func RatePercent(rate float64) float64 {
	return math.Round(rate*1e6) / 1e4
}
