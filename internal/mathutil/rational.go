package mathutil

import (
	"math"
	"math/big"
)

// LimitDenominator returns the fraction num/den closest to x with
// 1 ≤ den ≤ maxDenom.
//
// x is taken at its exact binary value and approximated with continued
// fractions; between the last convergent and the best semiconvergent the
// closer one wins, ties going to the convergent. Non-positive maxDenom falls
// back to 1000.
func LimitDenominator(x float64, maxDenom int64) (num, den int64) {
	if maxDenom < 1 {
		maxDenom = defaultMaxDenominator
	}

	exact := new(big.Rat)
	if exact.SetFloat64(x) == nil {
		return 0, 1
	}

	negative := exact.Sign() < 0
	exact.Abs(exact)

	limit := big.NewInt(maxDenom)
	if exact.Denom().Cmp(limit) <= 0 {
		return signed(exact.Num().Int64(), negative), exact.Denom().Int64()
	}

	p0, q0 := big.NewInt(0), big.NewInt(1)
	p1, q1 := big.NewInt(1), big.NewInt(0)
	n := new(big.Int).Set(exact.Num())
	d := new(big.Int).Set(exact.Denom())

	a, rem := new(big.Int), new(big.Int)
	for {
		a.QuoRem(n, d, rem)
		q2 := new(big.Int).Mul(a, q1)
		q2.Add(q2, q0)
		if q2.Cmp(limit) > 0 {
			break
		}
		p2 := new(big.Int).Mul(a, p1)
		p2.Add(p2, p0)
		p0, q0, p1, q1 = p1, q1, p2, q2
		n, d = d, new(big.Int).Set(rem)
	}

	// Best semiconvergent below the limit.
	k := new(big.Int).Sub(limit, q0)
	k.Quo(k, q1)
	semiNum := new(big.Int).Mul(k, p1)
	semiNum.Add(semiNum, p0)
	semiDen := new(big.Int).Mul(k, q1)
	semiDen.Add(semiDen, q0)

	bound1 := new(big.Rat).SetFrac(semiNum, semiDen)
	bound2 := new(big.Rat).SetFrac(p1, q1)

	err1 := new(big.Rat).Sub(bound1, exact)
	err1.Abs(err1)
	err2 := new(big.Rat).Sub(bound2, exact)
	err2.Abs(err2)

	best := bound1
	if err2.Cmp(err1) <= 0 {
		best = bound2
	}
	return signed(best.Num().Int64(), negative), best.Denom().Int64()
}

// GCD returns the greatest common divisor of |a| and |b|.
func GCD(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM returns the least common multiple of |a| and |b|, or 0 if either is 0.
// The result wraps if it does not fit in an int64; use CheckedLCM when the
// inputs are not known to be small.
func LCM(a, b int64) int64 {
	l, _ := CheckedLCM(a, b)
	return l
}

// CheckedLCM is LCM with an overflow report: ok is false when the least
// common multiple exceeds math.MaxInt64.
func CheckedLCM(a, b int64) (l int64, ok bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	a, b = abs64(a), abs64(b)
	if a < 0 || b < 0 {
		// math.MinInt64 has no positive counterpart
		return a / GCD(a, b) * b, false
	}
	a /= GCD(a, b)
	return a * b, b <= math.MaxInt64/a
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func signed(v int64, negative bool) int64 {
	if negative {
		return -v
	}
	return v
}
