package main

import (
	"fmt"
	"io"
	"strings"
)

// Step holds one row of the SCC iteration table
type Step struct {
	Iter     int
	Energy   float64
	DeltaE   float64
	RMSDq    float64
	Gap      float64
	Omega    float64
	FullDiag bool
}

func (s Step) String() string {
	diag := "F"
	if s.FullDiag {
		diag = "T"
	}
	return fmt.Sprintf("%4d%16.7f%15.6E%12.3E%8.2f%10.1f  %s",
		s.Iter, s.Energy, s.DeltaE, s.RMSDq, s.Gap, s.Omega, diag,
	)
}

// Atom holds one row of the per-atom property table: the coordination
// number, partial charge, C6 coefficient and polarizability
type Atom struct {
	Index  int
	Z      int
	Symbol string
	CovCN  float64
	Charge float64
	C6     float64
	Alpha  float64
}

func (a Atom) String() string {
	return fmt.Sprintf("%4d%4d %-2s%12.3f%10.3f%12.3f%10.3f",
		a.Index, a.Z, a.Symbol, a.CovCN, a.Charge, a.C6, a.Alpha,
	)
}

// Orbital holds one row of the orbital energy table. Occ is zero for
// virtual orbitals, and Label is "HOMO" or "LUMO" for the frontier
// orbitals
type Orbital struct {
	Index int
	Occ   float64
	Eh    float64
	EV    float64
	Label string
}

// Report is the structured form of one program output. It is built
// exactly once by ParseOut and never modified afterward
type Report struct {
	// final single-point properties
	Energy       float64
	GradientNorm float64
	Gap          float64
	// solvation free energy, present only when a solvent model
	// was requested
	Gsolv    float64
	HasGsolv bool

	Converged bool

	Steps    []Step
	Atoms    []Atom
	Orbitals []Orbital
}

// Charges returns the partial charges in atom order
func (r *Report) Charges() []float64 {
	ret := make([]float64, len(r.Atoms))
	for i, a := range r.Atoms {
		ret[i] = a.Charge
	}
	return ret
}

// HOMO returns the highest occupied orbital, or false if the orbital
// table did not mark one
func (r *Report) HOMO() (Orbital, bool) {
	for _, o := range r.Orbitals {
		if o.Label == "HOMO" {
			return o, true
		}
	}
	return Orbital{}, false
}

// LUMO returns the lowest unoccupied orbital, or false if the orbital
// table did not mark one
func (r *Report) LUMO() (Orbital, bool) {
	for _, o := range r.Orbitals {
		if o.Label == "LUMO" {
			return o, true
		}
	}
	return Orbital{}, false
}

// Write formats r as fixed-width tables on w
func (r *Report) Write(w io.Writer) {
	fmt.Fprintf(w, "%-20s%20.12f\n", "total energy/Eh", r.Energy)
	fmt.Fprintf(w, "%-20s%20.12f\n", "gradient norm", r.GradientNorm)
	fmt.Fprintf(w, "%-20s%20.12f\n", "HOMO-LUMO gap/eV", r.Gap)
	if r.HasGsolv {
		fmt.Fprintf(w, "%-20s%20.12f\n", "Gsolv/Eh", r.Gsolv)
	}
	fmt.Fprintf(w, "%-20s%20t\n", "converged", r.Converged)
	fmt.Fprintf(w, "%-20s%20d\n", "iterations", len(r.Steps))
	fmt.Fprintf(w, "\n%4s%4s%3s%12s%10s%12s%10s\n",
		"#", "Z", "", "covCN", "q", "C6AA", "alpha")
	for _, a := range r.Atoms {
		fmt.Fprintln(w, a)
	}
}

func (r *Report) String() string {
	var b strings.Builder
	r.Write(&b)
	return b.String()
}
