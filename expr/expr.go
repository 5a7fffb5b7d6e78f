package expr

import (
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

// Expr is an immutable exact value: a ratio of two multivariate polynomials
// with rational coefficients, or the NaN marker that an unsolvable circuit
// writes into its branches. The zero value is the number 0.
//
// Arithmetic never loses precision; all coefficients are big.Rat. Results are
// kept in a normalized form (constant denominators folded into the numerator,
// denominator leading coefficient fixed to one) so String output is
// deterministic.
type Expr struct {
	nan bool
	num poly
	den poly // empty means 1; kept non-constant after normalization
}

func (e Expr) numP() poly { return e.num }

func (e Expr) denP() poly {
	if len(e.den) == 0 {
		return polyConst(ratOne)
	}
	return e.den
}

// norm builds an Expr from a numerator/denominator pair, folding constant
// denominators and fixing the denominator's leading coefficient to one.
func norm(num, den poly) Expr {
	if polyIsZero(den) {
		return NaN()
	}
	if polyIsZero(num) {
		return Expr{}
	}
	if c, ok := polyNum(den); ok {
		return Expr{num: polyScale(num, new(big.Rat).Inv(c))}
	}
	if ratio, ok := polyRatio(num, den); ok {
		return Expr{num: polyConst(ratio)}
	}
	lead := den[0].coef
	inv := new(big.Rat).Inv(lead)
	return Expr{num: polyScale(num, inv), den: polyScale(den, inv)}
}

// Zero returns the number 0.
func Zero() Expr { return Expr{} }

// One returns the number 1.
func One() Expr { return Expr{num: polyConst(ratOne)} }

// FromInt returns the integer v as an Expr.
func FromInt(v int64) Expr { return Expr{num: polyConst(new(big.Rat).SetInt64(v))} }

// FromRat returns an Expr holding an exact copy of r.
func FromRat(r *big.Rat) Expr { return Expr{num: polyConst(r)} }

// FromFloat converts f exactly. Infinities and float NaNs map to NaN.
func FromFloat(f float64) Expr {
	r := new(big.Rat).SetFloat64(f)
	if r == nil {
		return NaN()
	}
	return Expr{num: polyConst(r)}
}

// Sym returns the free symbol with the given name.
func Sym(name string) Expr { return Expr{num: polySym(name)} }

// NaN returns the indeterminate marker. It propagates through all arithmetic
// and is equal to nothing, including itself.
func NaN() Expr { return Expr{nan: true} }

// Parse normalizes a literal into an Expr, the way component values are
// accepted on branch insertion. Numeric Go values convert exactly; a string
// is parsed as a number when possible ("5", "1/2", "2.5e3") and otherwise
// must be a valid symbol name.
func Parse(v any) (Expr, error) {
	switch x := v.(type) {
	case Expr:
		return x, nil
	case int:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case float32:
		return parseFloat(float64(x))
	case float64:
		return parseFloat(x)
	case *big.Rat:
		return FromRat(x), nil
	case string:
		return parseString(x)
	default:
		return Expr{}, fmt.Errorf("expr: unsupported literal type %T", v)
	}
}

func parseFloat(f float64) (Expr, error) {
	e := FromFloat(f)
	if e.IsNaN() {
		return Expr{}, fmt.Errorf("expr: non-finite value %v", f)
	}
	return e, nil
}

func parseString(s string) (Expr, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Expr{}, fmt.Errorf("expr: empty literal")
	}
	if r, ok := new(big.Rat).SetString(s); ok {
		return FromRat(r), nil
	}
	for i, r := range s {
		if unicode.IsLetter(r) || r == '_' || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return Expr{}, fmt.Errorf("expr: cannot parse literal %q", s)
	}
	return Sym(s), nil
}

// Add returns e + o.
func (e Expr) Add(o Expr) Expr {
	if e.nan || o.nan {
		return NaN()
	}
	num := polyAdd(polyMul(e.numP(), o.denP()), polyMul(o.numP(), e.denP()))
	return norm(num, polyMul(e.denP(), o.denP()))
}

// Sub returns e − o.
func (e Expr) Sub(o Expr) Expr { return e.Add(o.Neg()) }

// Neg returns −e.
func (e Expr) Neg() Expr {
	if e.nan {
		return NaN()
	}
	return Expr{num: polyNeg(e.num), den: e.den}
}

// Mul returns e · o.
func (e Expr) Mul(o Expr) Expr {
	if e.nan || o.nan {
		return NaN()
	}
	return norm(polyMul(e.numP(), o.numP()), polyMul(e.denP(), o.denP()))
}

// Div returns e / o. Division by a value that is identically zero yields NaN.
func (e Expr) Div(o Expr) Expr {
	if e.nan || o.nan {
		return NaN()
	}
	return norm(polyMul(e.numP(), o.denP()), polyMul(e.denP(), o.numP()))
}

// IsNaN reports whether e is the indeterminate marker.
func (e Expr) IsNaN() bool { return e.nan }

// IsZero reports whether e is identically zero.
func (e Expr) IsZero() bool { return !e.nan && polyIsZero(e.num) }

// IsNum reports whether e is a plain number, with no free symbols.
func (e Expr) IsNum() bool {
	if e.nan {
		return false
	}
	_, ok := polyNum(e.num)
	if !ok {
		return false
	}
	_, ok = polyNum(e.denP())
	return ok
}

// Num returns the exact rational value of e when IsNum holds.
func (e Expr) Num() (*big.Rat, bool) {
	if e.nan {
		return nil, false
	}
	n, ok := polyNum(e.num)
	if !ok {
		return nil, false
	}
	d, ok := polyNum(e.denP())
	if !ok {
		return nil, false
	}
	return new(big.Rat).Quo(n, d), true
}

// Float64 returns the nearest float64 when e is numeric.
func (e Expr) Float64() (float64, bool) {
	r, ok := e.Num()
	if !ok {
		return 0, false
	}
	f, _ := r.Float64()
	return f, true
}

// Equal reports exact equality. NaN compares unequal to everything.
func (e Expr) Equal(o Expr) bool {
	if e.nan || o.nan {
		return false
	}
	return polyEqual(polyMul(e.numP(), o.denP()), polyMul(o.numP(), e.denP()))
}

// String renders e deterministically, e.g. "2", "-1/2", "v/r", "2*r + 1".
func (e Expr) String() string {
	if e.nan {
		return "NaN"
	}
	if len(e.den) == 0 {
		return polyString(e.num)
	}
	return wrap(polyString(e.num)) + "/" + wrap(polyString(e.den))
}

func wrap(s string) string {
	if strings.ContainsAny(s, "+- ") {
		return "(" + s + ")"
	}
	return s
}
