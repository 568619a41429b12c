package arith

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrDivisionByZero is returned by the divide operations.
var ErrDivisionByZero = errors.New("division by zero")

// AddArgs are the operands of add.
type AddArgs struct {
	Left  uint64 `flag:"left" flagRequired:"true" flagUsage:"left operand" cty:"left"`
	Right uint64 `flag:"right" flagRequired:"true" flagUsage:"right operand" cty:"right"`
}

// MultiplyArgs are the operands of multiply.
type MultiplyArgs struct {
	Left  uint64 `flag:"left" flagRequired:"true" flagUsage:"left factor" cty:"left"`
	Right uint64 `flag:"right" flagRequired:"true" flagUsage:"right factor" cty:"right"`
}

// DivideArgs are the operands of divide and kebab-divide.
type DivideArgs struct {
	Left  float64 `flag:"left" flagRequired:"true" flagUsage:"dividend" cty:"left"`
	Right float64 `flag:"right" flagRequired:"true" flagUsage:"divisor" cty:"right"`
}

// AddGenericArgs carries operands as text; they are added as integers when
// both parse as one, as floats otherwise.
type AddGenericArgs struct {
	Left  string `flag:"left" flagRequired:"true" flagUsage:"left operand, integer or decimal" cty:"left"`
	Right string `flag:"right" flagRequired:"true" flagUsage:"right operand, integer or decimal" cty:"right"`
}

func Add(a *AddArgs) (uint64, error) {
	sum := a.Left + a.Right
	if sum < a.Left {
		return 0, fmt.Errorf("%d + %d overflows uint64", a.Left, a.Right)
	}
	return sum, nil
}

func Multiply(a *MultiplyArgs) (uint64, error) {
	if a.Left != 0 && a.Left*a.Right/a.Left != a.Right {
		return 0, fmt.Errorf("%d * %d overflows uint64", a.Left, a.Right)
	}
	return a.Left * a.Right, nil
}

func Divide(a *DivideArgs) (float64, error) {
	if a.Right == 0 {
		return 0, ErrDivisionByZero
	}
	return a.Left / a.Right, nil
}

// AddGeneric returns the sum formatted in the operands' common type.
func AddGeneric(a *AddGenericArgs) (string, error) {
	li, lerr := strconv.ParseInt(a.Left, 10, 64)
	ri, rerr := strconv.ParseInt(a.Right, 10, 64)
	if lerr == nil && rerr == nil {
		sum := li + ri
		if (sum > li) == (ri > 0) {
			return strconv.FormatInt(sum, 10), nil
		}
	}

	lf, err := strconv.ParseFloat(a.Left, 64)
	if err != nil {
		return "", fmt.Errorf("left operand %q is not a number", a.Left)
	}
	rf, err := strconv.ParseFloat(a.Right, 64)
	if err != nil {
		return "", fmt.Errorf("right operand %q is not a number", a.Right)
	}
	return strconv.FormatFloat(lf+rf, 'g', -1, 64), nil
}
