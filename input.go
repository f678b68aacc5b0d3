package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ZipGeom combines a list of atom names with a flat coordinate list
// to yield a string geometry
func ZipGeom(names []string, coords []float64) string {
	var geom strings.Builder
	for i := range names {
		fmt.Fprintf(&geom, "%-2s%20.12f%20.12f%20.12f\n",
			names[i],
			coords[3*i],
			coords[3*i+1],
			coords[3*i+2],
		)
	}
	return geom.String()
}

// WriteXYZ writes an xyz geometry file for use as program input
func WriteXYZ(w io.Writer, names []string, coords []float64,
	comment string) {
	fmt.Fprintf(w, "%d\n%s\n", len(names), comment)
	fmt.Fprint(w, ZipGeom(names, coords))
}

// WriteXcontrol writes the detailed input file. Only constraint
// blocks are needed so far; atom indices are 1-based as the program
// expects
func WriteXcontrol(w io.Writer, fixed []int) {
	if len(fixed) == 0 {
		return
	}
	strs := make([]string, len(fixed))
	for i, f := range fixed {
		strs[i] = fmt.Sprint(f)
	}
	fmt.Fprint(w, "$fix\n")
	fmt.Fprint(w, " force constant=10000\n")
	fmt.Fprintf(w, " atoms: %s\n", strings.Join(strs, ","))
	fmt.Fprint(w, "$end\n")
}

// flagArgs assembles the method, charge and solvation flags shared
// by every invocation of the program
func flagArgs(conf Config) []string {
	var args []string
	if conf.Gfn == "ff" {
		args = append(args, "--gfnff")
	} else {
		args = append(args, "--gfn", conf.Gfn)
	}
	args = append(args,
		"-c", fmt.Sprint(conf.Charge),
		"-u", fmt.Sprint(conf.UHF),
	)
	// gfn0 has no implicit solvation
	if conf.Solvent != "" && conf.Gfn != "0" {
		args = append(args, "--alpb", conf.Solvent)
	}
	if conf.Threads > 1 {
		args = append(args, "-P", fmt.Sprint(conf.Threads))
	}
	return append(args, conf.Flags...)
}

// Args assembles the full command-line arguments for running the
// program on the geometry in xyz
func Args(conf Config, xyz string) []string {
	args := append([]string{xyz}, flagArgs(conf)...)
	if len(conf.Fixed) > 0 {
		args = append(args, "--input", TrimExt(xyz)+".inp")
	}
	return args
}

// BuildInput writes the xcontrol file accompanying xyz if the
// configuration requires one
func BuildInput(conf Config, xyz string) error {
	if len(conf.Fixed) == 0 {
		return nil
	}
	f, err := os.Create(TrimExt(xyz) + ".inp")
	if err != nil {
		return err
	}
	defer f.Close()
	WriteXcontrol(f, conf.Fixed)
	return nil
}
