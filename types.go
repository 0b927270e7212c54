package dispatch

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Args holds the parameters a RunFunc is called with, one value per declared
// parameter.
type Args []cty.Value

// Decode stores the i'th argument in the Go value pointed to by target.
func (a Args) Decode(i int, target interface{}) error {
	if i < 0 || i >= len(a) {
		return errors.Errorf("argument %d out of range (have %d)", i, len(a))
	}
	return gocty.FromCtyValue(a[i], target)
}

// RunFunc is the function behind a command. Stages wrap a RunFunc in another
// RunFunc.
type RunFunc func(args Args) (cty.Value, error)

// Param describes a single command parameter.
type Param struct {
	// The name of the parameter, used in help output and errors.
	Name string

	// The declared type. The zero value (cty.NilType) leaves the
	// parameter undeclared: it is neither coerced nor checked.
	// cty.DynamicPseudoType accepts any value.
	Type cty.Type

	// Whole restricts the parameter to whole numbers. Text must be a
	// base 10 integer literal; other numbers are truncated. A Whole
	// parameter with no Type is a cty.Number.
	Whole bool

	// Value used when the parameter is omitted. cty.NilVal makes the
	// parameter required.
	Default cty.Value
}

func (p Param) declared() bool { return p.Type != cty.NilType || p.Whole }

func (p Param) typ() cty.Type {
	if p.Whole {
		return cty.Number
	}
	return p.Type
}

// accepts reports whether v is an instance of the parameter's type.
func (p Param) accepts(v cty.Value) bool {
	if !conforms(v.Type(), p.typ()) {
		return false
	}
	return !p.Whole || isWhole(v)
}

func (p Param) optional() bool { return p.Default.Type() != cty.NilType }

// Signature is the per-parameter type table of a command, captured once at
// registration.
type Signature struct {
	Params []Param

	// Declared return type; cty.NilType when undeclared.
	Returns cty.Type
}

// Stage wraps next with behaviour driven by sig.
type Stage func(sig Signature, next RunFunc) RunFunc

// DefaultStages are applied by a Registry unless its Stages field is set.
// Together they coerce and check parameters, run the command, then coerce
// and check its result.
var DefaultStages = []Stage{CoerceParams, CheckTypes, CoerceResult}

// Wrap applies stages to fn. The first stage is the outermost one, so it
// sees the arguments first and the result last.
func Wrap(sig Signature, fn RunFunc, stages ...Stage) RunFunc {
	for i := len(stages) - 1; i >= 0; i-- {
		fn = stages[i](sig, fn)
	}
	return fn
}

// conforms reports whether a value of type got is an instance of want.
func conforms(got, want cty.Type) bool {
	if got == cty.NilType {
		return false
	}
	return len(got.TestConformance(want)) == 0
}

// CoerceParams converts each argument whose parameter has a declared type it
// does not already conform to.
func CoerceParams(sig Signature, next RunFunc) RunFunc {
	return func(args Args) (cty.Value, error) {
		coerced := make(Args, len(args))
		copy(coerced, args)
		for i, p := range sig.Params {
			if i >= len(coerced) {
				break
			}
			if !p.declared() || p.accepts(coerced[i]) {
				continue
			}
			coerceFn := coerce
			if p.Whole {
				coerceFn = coerceWhole
			}
			v, err := coerceFn(coerced[i], p.typ())
			if err != nil {
				return cty.NilVal, &CastError{Param: p.Name, Type: p.typ(), Whole: p.Whole, Err: err}
			}
			coerced[i] = v
		}
		return next(coerced)
	}
}

// CheckTypes verifies that every argument with a declared type conforms to
// it before calling next, and that the result conforms to the declared
// return type afterwards.
func CheckTypes(sig Signature, next RunFunc) RunFunc {
	return func(args Args) (cty.Value, error) {
		for i, p := range sig.Params {
			if i >= len(args) {
				break
			}
			if p.declared() && !p.accepts(args[i]) {
				return cty.NilVal, &TypeError{Param: p.Name, Want: p.typ(), Whole: p.Whole, Got: args[i].Type()}
			}
		}

		result, err := next(args)
		if err != nil {
			return result, err
		}

		if sig.Returns != cty.NilType && !conforms(result.Type(), sig.Returns) {
			return cty.NilVal, &TypeError{Want: sig.Returns, Got: result.Type()}
		}
		return result, nil
	}
}

// CoerceResult converts the result of next to the declared return type, if
// there is one and the result does not already conform to it.
func CoerceResult(sig Signature, next RunFunc) RunFunc {
	return func(args Args) (cty.Value, error) {
		result, err := next(args)
		if err != nil {
			return result, err
		}
		if sig.Returns == cty.NilType || conforms(result.Type(), sig.Returns) {
			return result, nil
		}
		v, err := coerce(result, sig.Returns)
		if err != nil {
			return cty.NilVal, &CastError{Type: sig.Returns, Err: err}
		}
		return v, nil
	}
}

func coerce(v cty.Value, want cty.Type) (cty.Value, error) {
	if v.Type() == cty.NilType {
		return cty.NilVal, errors.New("no value")
	}
	return convert.Convert(v, want)
}

// coerceWhole converts v to a whole cty.Number. Strings must hold a base 10
// integer literal; numbers are truncated towards zero.
func coerceWhole(v cty.Value, _ cty.Type) (cty.Value, error) {
	if v.Type() == cty.NilType {
		return cty.NilVal, errors.New("no value")
	}
	v, marks := v.Unmark()
	if !v.IsKnown() || v.IsNull() {
		return cty.NilVal, errors.New("value must be known and not null")
	}

	if v.Type() == cty.String {
		s := strings.TrimSpace(v.AsString())
		n, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return cty.NilVal, errors.Errorf("invalid integer literal %q", v.AsString())
		}
		return cty.NumberVal(new(big.Float).SetInt(n)).WithMarks(marks), nil
	}

	num, err := convert.Convert(v, cty.Number)
	if err != nil {
		return cty.NilVal, err
	}
	f := num.AsBigFloat()
	if f.IsInf() {
		return cty.NilVal, errors.New("cannot convert infinity to a whole number")
	}
	n, _ := f.Int(nil)
	return cty.NumberVal(new(big.Float).SetInt(n)).WithMarks(marks), nil
}

// isWhole reports whether v is a known whole number. Unknown and null
// numbers are left to the command.
func isWhole(v cty.Value) bool {
	v, _ = v.Unmark()
	if !v.IsKnown() || v.IsNull() {
		return true
	}
	return v.AsBigFloat().IsInt()
}
