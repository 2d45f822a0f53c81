package semantics

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dlclark/regexp2"

	"lumen/internal/object"
)

var (
	ErrNumberOperand  = errors.New("Operand must be a number.")
	ErrNumberOperands = errors.New("Operands must be numbers.")
	ErrAddOperands    = errors.New("Operands must be two numbers or two strings.")
	ErrMatchOperands  = errors.New("Operands must be two strings.")
)

// PatternTimeout bounds a single ~= match.
var PatternTimeout = 2 * time.Second

// PatternError reports a pattern that does not compile.
type PatternError struct {
	Pattern string
	Reason  string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("Invalid pattern '%s': %s.", e.Pattern, e.Reason)
}

func IsTruthy(obj object.Object) bool {
	switch v := obj.(type) {
	case *object.Boolean:
		return v.Value
	case *object.Nil:
		return false
	case nil:
		return false
	default:
		return true
	}
}

func UnaryOp(op string, right object.Object) (object.Object, error) {
	switch op {
	case "!":
		return object.NativeBool(!IsTruthy(right)), nil
	case "-":
		n, ok := right.(*object.Number)
		if !ok {
			return nil, ErrNumberOperand
		}
		return &object.Number{Value: -n.Value}, nil
	}
	return nil, fmt.Errorf("unknown unary operator: %s", op)
}

// BinaryOp applies every binary operator. Both operands are already evaluated.
func BinaryOp(op string, left, right object.Object) (object.Object, error) {
	switch op {
	case "==":
		return object.NativeBool(object.Equal(left, right)), nil
	case "!=":
		return object.NativeBool(!object.Equal(left, right)), nil
	case "||":
		return object.NativeBool(IsTruthy(left) || IsTruthy(right)), nil
	case "&&":
		return object.NativeBool(IsTruthy(left) && IsTruthy(right)), nil
	case "~=":
		ok, err := MatchOp(left, right)
		if err != nil {
			return nil, err
		}
		return object.NativeBool(ok), nil
	case "+":
		return Add(left, right)
	case ">", ">=", "<", "<=":
		ok, err := Compare(op, left, right)
		if err != nil {
			return nil, err
		}
		return object.NativeBool(ok), nil
	case "-", "*", "/":
		return Arithmetic(op, left, right)
	}
	return nil, fmt.Errorf("unknown operator: %s", op)
}

// Add sums two numbers or concatenates two strings.
func Add(left, right object.Object) (object.Object, error) {
	switch l := left.(type) {
	case *object.Number:
		if r, ok := right.(*object.Number); ok {
			return &object.Number{Value: l.Value + r.Value}, nil
		}
	case *object.String:
		if r, ok := right.(*object.String); ok {
			return &object.String{Value: l.Value + r.Value}, nil
		}
	}
	return nil, ErrAddOperands
}

// Arithmetic handles - * /. Division by zero yields an IEEE infinity or NaN.
func Arithmetic(op string, left, right object.Object) (object.Object, error) {
	l, r, err := numbers(left, right)
	if err != nil {
		return nil, err
	}
	switch op {
	case "-":
		return &object.Number{Value: l - r}, nil
	case "*":
		return &object.Number{Value: l * r}, nil
	case "/":
		return &object.Number{Value: l / r}, nil
	}
	return nil, fmt.Errorf("unknown operator for numbers: %s", op)
}

func Compare(op string, left, right object.Object) (bool, error) {
	l, r, err := numbers(left, right)
	if err != nil {
		return false, err
	}
	switch op {
	case ">":
		return l > r, nil
	case ">=":
		return l >= r, nil
	case "<":
		return l < r, nil
	case "<=":
		return l <= r, nil
	}
	return false, fmt.Errorf("unknown comparison operator: %s", op)
}

// MatchOp treats left as the subject and right as an ECMAScript pattern.
func MatchOp(left, right object.Object) (bool, error) {
	_, lnil := left.(*object.Nil)
	_, rnil := right.(*object.Nil)
	if lnil && rnil {
		return true, nil
	}
	subject, ok := left.(*object.String)
	if !ok {
		return false, ErrMatchOperands
	}
	pattern, ok := right.(*object.String)
	if !ok {
		return false, ErrMatchOperands
	}
	return Match(subject.Value, pattern.Value)
}

// Match reports whether pattern matches anywhere in subject.
func Match(subject, pattern string) (bool, error) {
	re, err := CompilePattern(pattern)
	if err != nil {
		return false, err
	}
	ok, err := re.MatchString(subject)
	if err != nil {
		return false, fmt.Errorf("match '%s': %w", pattern, err)
	}
	return ok, nil
}

var patternCache sync.Map // string -> *regexp2.Regexp

// CompilePattern compiles pattern with ECMAScript syntax and caches the result.
func CompilePattern(pattern string) (*regexp2.Regexp, error) {
	if re, ok := patternCache.Load(pattern); ok {
		return re.(*regexp2.Regexp), nil
	}
	re, err := regexp2.Compile(pattern, regexp2.ECMAScript)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Reason: err.Error()}
	}
	re.MatchTimeout = PatternTimeout
	patternCache.Store(pattern, re)
	return re, nil
}

func numbers(left, right object.Object) (float64, float64, error) {
	l, lok := left.(*object.Number)
	r, rok := right.(*object.Number)
	if !lok || !rok {
		return 0, 0, ErrNumberOperands
	}
	return l.Value, r.Value, nil
}
