package util

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyExpression   = errors.New("empty expression")
	ErrInvalidExpression = errors.New("invalid expression")

	mathPattern = regexp.MustCompile(`^[0-9+\-*/.() ]+$`)
)

// EvaluateExpression evaluates an amount such as "19.99 * 2" or "$1,200" and rounds
// the result half up to cents.
func EvaluateExpression(expr string) (decimal.Decimal, error) {
	cleanExpr := cleanCurrencyString(expr)
	if cleanExpr == "" {
		return decimal.Zero, ErrEmptyExpression
	}

	if isSimpleNumber(cleanExpr) {
		d, err := decimal.NewFromString(cleanExpr)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: invalid number format", ErrInvalidExpression)
		}
		return d.Round(2), nil
	}

	if !isValidMathExpression(cleanExpr) {
		return decimal.Zero, fmt.Errorf("%w: contains non-mathematical characters", ErrInvalidExpression)
	}

	expression, err := govaluate.NewEvaluableExpression(cleanExpr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}
	result, err := expression.Evaluate(nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}

	var d decimal.Decimal
	switch v := result.(type) {
	case float64:
		if math.IsNaN(v) {
			return decimal.Zero, fmt.Errorf("%w: result is not a number", ErrInvalidExpression)
		}
		if math.IsInf(v, 0) {
			return decimal.Zero, fmt.Errorf("%w: result is infinite", ErrInvalidExpression)
		}
		d = decimal.NewFromFloat(v)
	case int:
		d = decimal.NewFromInt(int64(v))
	case int64:
		d = decimal.NewFromInt(v)
	default:
		d, err = decimal.NewFromString(fmt.Sprintf("%v", result))
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: could not convert result", ErrInvalidExpression)
		}
	}

	return d.Round(2), nil
}

// cleanCurrencyString strips dollar signs, thousands separators and outer space.
func cleanCurrencyString(s string) string {
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	return strings.TrimSpace(s)
}

// isSimpleNumber expects cleaned input.
func isSimpleNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func isValidMathExpression(expr string) bool {
	return mathPattern.MatchString(expr)
}
