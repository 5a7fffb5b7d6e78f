package expr

import (
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// term is a product of symbols raised to positive integer powers, scaled by
// an exact rational coefficient. An empty vars map is the constant term.
type term struct {
	coef *big.Rat
	vars map[string]int
}

// poly is a multivariate polynomial in canonical form: terms merged by
// monomial, zero coefficients dropped, sorted by monomial key with the
// constant term last.
type poly []term

var ratOne = big.NewRat(1, 1)

// monoKey renders the monomial of t deterministically: symbol names in
// ascending order, exponents > 1 written as name^k.
func monoKey(vars map[string]int) string {
	if len(vars) == 0 {
		return ""
	}
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		if e := vars[name]; e > 1 {
			parts = append(parts, name+"^"+strconv.Itoa(e))
		} else {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "*")
}

func polyConst(r *big.Rat) poly {
	if r.Sign() == 0 {
		return nil
	}
	return poly{{coef: new(big.Rat).Set(r), vars: nil}}
}

func polySym(name string) poly {
	return poly{{coef: new(big.Rat).Set(ratOne), vars: map[string]int{name: 1}}}
}

// polyNorm merges terms with equal monomials and restores canonical order.
func polyNorm(terms []term) poly {
	merged := make(map[string]term, len(terms))
	for _, t := range terms {
		k := monoKey(t.vars)
		if prev, ok := merged[k]; ok {
			prev.coef = new(big.Rat).Add(prev.coef, t.coef)
			merged[k] = prev
		} else {
			merged[k] = term{coef: new(big.Rat).Set(t.coef), vars: t.vars}
		}
	}
	keys := make([]string, 0, len(merged))
	for k, t := range merged {
		if t.coef.Sign() != 0 {
			keys = append(keys, k)
		}
	}
	// Symbolic terms in name order, the constant term last.
	sort.Slice(keys, func(i, j int) bool {
		if keys[i] == "" || keys[j] == "" {
			return keys[j] == ""
		}
		return keys[i] < keys[j]
	})
	out := make(poly, 0, len(keys))
	for _, k := range keys {
		out = append(out, merged[k])
	}
	return out
}

func polyAdd(a, b poly) poly {
	return polyNorm(append(append([]term{}, a...), b...))
}

func polyNeg(a poly) poly {
	out := make(poly, len(a))
	for i, t := range a {
		out[i] = term{coef: new(big.Rat).Neg(t.coef), vars: t.vars}
	}
	return out
}

func polyMul(a, b poly) poly {
	terms := make([]term, 0, len(a)*len(b))
	for _, ta := range a {
		for _, tb := range b {
			vars := make(map[string]int, len(ta.vars)+len(tb.vars))
			for n, e := range ta.vars {
				vars[n] += e
			}
			for n, e := range tb.vars {
				vars[n] += e
			}
			terms = append(terms, term{coef: new(big.Rat).Mul(ta.coef, tb.coef), vars: vars})
		}
	}
	return polyNorm(terms)
}

// polyScale multiplies every coefficient by r.
func polyScale(a poly, r *big.Rat) poly {
	out := make(poly, len(a))
	for i, t := range a {
		out[i] = term{coef: new(big.Rat).Mul(t.coef, r), vars: t.vars}
	}
	return out
}

func polyIsZero(a poly) bool { return len(a) == 0 }

// polyNum reports the constant value of a when it has no symbolic terms.
func polyNum(a poly) (*big.Rat, bool) {
	switch len(a) {
	case 0:
		return new(big.Rat), true
	case 1:
		if len(a[0].vars) == 0 {
			return new(big.Rat).Set(a[0].coef), true
		}
	}
	return nil, false
}

// polyRatio reports the constant c with a == c·b, when such a c exists.
func polyRatio(a, b poly) (*big.Rat, bool) {
	if len(a) != len(b) || len(a) == 0 {
		return nil, false
	}
	var ratio *big.Rat
	for i := range a {
		if monoKey(a[i].vars) != monoKey(b[i].vars) {
			return nil, false
		}
		q := new(big.Rat).Quo(a[i].coef, b[i].coef)
		if ratio == nil {
			ratio = q
		} else if ratio.Cmp(q) != 0 {
			return nil, false
		}
	}
	return ratio, true
}

func polyEqual(a, b poly) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if monoKey(a[i].vars) != monoKey(b[i].vars) || a[i].coef.Cmp(b[i].coef) != 0 {
			return false
		}
	}
	return true
}

func polyString(a poly) string {
	if len(a) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, t := range a {
		neg := t.coef.Sign() < 0
		abs := new(big.Rat).Abs(t.coef)
		mono := monoKey(t.vars)
		var lit string
		switch {
		case mono == "":
			lit = abs.RatString()
		case abs.Cmp(ratOne) == 0:
			lit = mono
		default:
			lit = abs.RatString() + "*" + mono
		}
		switch {
		case i == 0 && neg:
			sb.WriteString("-")
		case i > 0 && neg:
			sb.WriteString(" - ")
		case i > 0:
			sb.WriteString(" + ")
		}
		sb.WriteString(lit)
	}
	return sb.String()
}
