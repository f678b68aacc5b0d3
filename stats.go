package main

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// StepEnergies returns the SCC energies of steps as a column vector
func StepEnergies(steps []Step) *mat.Dense {
	ret := make([]float64, len(steps))
	for i, s := range steps {
		ret[i] = s.Energy
	}
	return mat.NewDense(len(steps), 1, ret)
}

// Relative makes the values in a relative to its minimum
func Relative(a *mat.Dense) *mat.Dense {
	min := mat.Min(a)
	r, c := a.Dims()
	if c != 1 {
		panic("too many columns")
	}
	ret := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		ret.Set(i, 0, a.At(i, 0)-min)
	}
	return ret
}

// Norm computes the Euclidean norm between vectors a and b
func Norm(a, b *mat.Dense) float64 {
	var diff mat.Dense
	diff.Sub(a, b)
	return mat.Norm(&diff, 2)
}

// RMSD computes the root-mean-square deviation between vectors a and
// b
func RMSD(a, b *mat.Dense) (ret float64) {
	as := a.RawMatrix().Data
	bs := b.RawMatrix().Data
	if len(as) != len(bs) {
		panic("dimension mismatch")
	}
	var count int
	for i := range as {
		// deviation
		diff := as[i] - bs[i]
		// square
		ret += diff * diff
		count++
	}
	// mean
	ret /= float64(count)
	// root
	return math.Sqrt(ret)
}

// ChargeRMSD computes the RMSD between the partial charges of a and
// b, which must describe the same atoms
func ChargeRMSD(a, b *Report) (float64, error) {
	if len(a.Atoms) != len(b.Atoms) {
		return 0, fmt.Errorf(
			"charge dimension mismatch: %d vs %d",
			len(a.Atoms), len(b.Atoms))
	}
	ac := a.Charges()
	bc := b.Charges()
	va := mat.NewDense(len(ac), 1, ac)
	vb := mat.NewDense(len(bc), 1, bc)
	return RMSD(va, vb), nil
}
