package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Errors
var (
	ErrFileNotFound      = errors.New("output file not found")
	ErrBlankOutput       = errors.New("blank output")
	ErrFileContainsError = errors.New("output file contains an error")
)

// MissingSection means an expected anchor string never appeared in
// the output
type MissingSection struct {
	Section string
}

func (e *MissingSection) Error() string {
	return fmt.Sprintf("no %s block found", e.Section)
}

// MalformedValue means an anchor was located but the trailing value
// could not be parsed
type MalformedValue struct {
	Section string
	Token   string
}

func (e *MalformedValue) Error() string {
	return fmt.Sprintf("malformed %s: cannot parse %q",
		e.Section, e.Token)
}

// parseFloat handles the Fortran D exponents and decimal commas some
// program builds emit before deferring to strconv
func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.Replace(s, "D", "E", -1)
	s = strings.Replace(s, "d", "e", -1)
	s = strings.Replace(s, ",", ".", -1)
	return strconv.ParseFloat(s, 64)
}

// floats converts a list of numeric tokens with parseFloat
func floats(strs []string) ([]float64, error) {
	ret := make([]float64, len(strs))
	var err error
	for i, s := range strs {
		ret[i], err = parseFloat(s)
		if err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// anchorValue parses the numeric token trailing anchor in line,
// ignoring the box decoration around the banner and summary blocks
func anchorValue(line, anchor, section string) (float64, error) {
	clean := strings.NewReplacer("|", " ", ":", " ").Replace(line)
	idx := strings.Index(clean, anchor)
	if idx < 0 {
		return 0, &MissingSection{section}
	}
	fields := strings.Fields(clean[idx+len(anchor):])
	if len(fields) == 0 {
		return 0, &MalformedValue{section, ""}
	}
	v, err := parseFloat(fields[0])
	if err != nil {
		return 0, &MalformedValue{section, fields[0]}
	}
	return v, nil
}

// ReadOut reads and parses the program output in filename.
// Files ending in .gz are decompressed transparently
func ReadOut(filename string) (*Report, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, ErrFileNotFound
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(filename, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}
	return ParseOut(r)
}

// ParseOut extracts a Report from the full text of a program output.
// Fixed anchor strings locate each section; a missing anchor is a
// hard failure, never a silent default. Geometry optimizations print
// several SCC cycles, so the tables keep their last occurrence
func ParseOut(r io.Reader) (*Report, error) {
	scanner := bufio.NewScanner(r)
	var (
		ret       Report
		lines     int
		sawEnergy bool
		sawGrad   bool
		sawGap    bool
		sawConv   bool
		sawTerm   bool
		err       error
	)
	for scanner.Scan() {
		line := scanner.Text()
		lines++
		switch {
		case strings.Contains(line, "abnormal termination"):
			return nil, ErrFileContainsError
		case strings.Contains(line, "iter") &&
			strings.Contains(line, "RMSdq"):
			ret.Steps, err = parseSteps(scanner)
		case strings.Contains(line, "Occupation") &&
			strings.Contains(line, "Energy/Eh"):
			ret.Orbitals, err = parseOrbitals(scanner)
		case strings.Contains(line, "covCN"):
			ret.Atoms, err = parseAtoms(scanner)
		case strings.Contains(line, "convergence criteria satisfied"):
			sawConv = true
		case strings.Contains(line, "normal termination of xtb"):
			sawTerm = true
		case strings.Contains(line, "-> Gsolv"):
			ret.Gsolv, err = anchorValue(line, "-> Gsolv", "Gsolv")
			ret.HasGsolv = err == nil
		case strings.Contains(line, "TOTAL ENERGY"):
			ret.Energy, err = anchorValue(line,
				"TOTAL ENERGY", "TOTAL ENERGY")
			sawEnergy = err == nil
		case strings.Contains(line, "GRADIENT NORM"):
			ret.GradientNorm, err = anchorValue(line,
				"GRADIENT NORM", "GRADIENT NORM")
			sawGrad = err == nil
		case strings.Contains(line, "HOMO-LUMO GAP"):
			ret.Gap, err = anchorValue(line,
				"HOMO-LUMO GAP", "HOMO-LUMO GAP")
			sawGap = err == nil
		}
		if err != nil {
			return nil, err
		}
	}
	if lines == 0 {
		return nil, ErrBlankOutput
	}
	switch {
	case !sawEnergy:
		return nil, &MissingSection{"TOTAL ENERGY"}
	case !sawGrad:
		return nil, &MissingSection{"GRADIENT NORM"}
	case !sawGap:
		return nil, &MissingSection{"HOMO-LUMO GAP"}
	case len(ret.Steps) == 0:
		return nil, &MissingSection{"SCC iterations"}
	case len(ret.Orbitals) == 0:
		return nil, &MissingSection{"orbital table"}
	case len(ret.Atoms) == 0:
		return nil, &MissingSection{"partial charges"}
	}
	ret.Converged = sawConv && sawTerm
	return &ret, nil
}

// parseSteps reads the body of the SCC iteration table, stopping at
// the first line that does not look like a row
func parseSteps(scanner *bufio.Scanner) ([]Step, error) {
	ret := make([]Step, 0, 16)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 7 {
			break
		}
		iter, err := strconv.Atoi(fields[0])
		if err != nil {
			break
		}
		vals, err := floats(fields[1:6])
		if err != nil {
			return nil, &MalformedValue{
				"SCC iterations",
				strings.Join(fields[1:6], " "),
			}
		}
		ret = append(ret, Step{
			Iter:     iter,
			Energy:   vals[0],
			DeltaE:   vals[1],
			RMSDq:    vals[2],
			Gap:      vals[3],
			Omega:    vals[4],
			FullDiag: fields[6] == "T",
		})
	}
	return ret, nil
}

// parseOrbitals reads the orbital energy table, skipping the "..."
// filler rows printed for large systems and capturing the HOMO/LUMO
// markers. The table is closed by its trailing dashed line
func parseOrbitals(scanner *bufio.Scanner) ([]Orbital, error) {
	ret := make([]Orbital, 0, 16)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "---"):
			if len(ret) > 0 {
				return ret, nil
			}
			continue
		case line == "":
			return ret, nil
		case strings.HasPrefix(line, "..."):
			continue
		}
		fields := strings.Fields(line)
		idx, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, &MalformedValue{"orbital table", fields[0]}
		}
		o := Orbital{Index: idx}
		rest := fields[1:]
		if n := len(rest); n > 0 && strings.HasPrefix(rest[n-1], "(") {
			o.Label = strings.Trim(rest[n-1], "()")
			rest = rest[:n-1]
		}
		vals, err := floats(rest)
		if err != nil {
			return nil, &MalformedValue{
				"orbital table", strings.Join(rest, " "),
			}
		}
		switch len(vals) {
		case 2:
			// virtual orbitals have no occupation column
			o.Eh, o.EV = vals[0], vals[1]
		case 3:
			o.Occ, o.Eh, o.EV = vals[0], vals[1], vals[2]
		default:
			return nil, &MalformedValue{
				"orbital table", line,
			}
		}
		ret = append(ret, o)
	}
	return ret, nil
}

// parseAtoms reads the per-atom property table following the covCN
// header, stopping at the first line that is not a 7-column row
func parseAtoms(scanner *bufio.Scanner) ([]Atom, error) {
	ret := make([]Atom, 0, 8)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 7 {
			break
		}
		idx, err := strconv.Atoi(fields[0])
		if err != nil {
			break
		}
		z, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, &MalformedValue{"partial charges", fields[1]}
		}
		vals, err := floats(fields[3:])
		if err != nil {
			return nil, &MalformedValue{
				"partial charges",
				strings.Join(fields[3:], " "),
			}
		}
		ret = append(ret, Atom{
			Index:  idx,
			Z:      z,
			Symbol: fields[2],
			CovCN:  vals[0],
			Charge: vals[1],
			C6:     vals[2],
			Alpha:  vals[3],
		})
	}
	return ret, nil
}
