package main

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func loadOut(t *testing.T) string {
	t.Helper()
	byts, err := os.ReadFile("testfiles/job.out")
	if err != nil {
		t.Fatal(err)
	}
	return string(byts)
}

func TestReadOut(t *testing.T) {
	got, err := ReadOut("testfiles/job.out")
	if err != nil {
		t.Fatal(err)
	}
	if want := -23.880744236440; got.Energy != want {
		t.Errorf("Energy: got %v, wanted %v\n", got.Energy, want)
	}
	if want := 0.000451229008; got.GradientNorm != want {
		t.Errorf("GradientNorm: got %v, wanted %v\n",
			got.GradientNorm, want)
	}
	if want := 11.453903340462; got.Gap != want {
		t.Errorf("Gap: got %v, wanted %v\n", got.Gap, want)
	}
	if !got.HasGsolv {
		t.Errorf("HasGsolv: got false, wanted true\n")
	}
	if want := -0.008438173570; got.Gsolv != want {
		t.Errorf("Gsolv: got %v, wanted %v\n", got.Gsolv, want)
	}
	if !got.Converged {
		t.Errorf("Converged: got false, wanted true\n")
	}
	if want := 8; len(got.Steps) != want {
		t.Fatalf("Steps: got %d, wanted %d\n", len(got.Steps), want)
	}
	wantStep := Step{
		Iter:     1,
		Energy:   -23.9266462,
		DeltaE:   -0.239266e+02,
		RMSDq:    0.457,
		Gap:      12.28,
		Omega:    0.0,
		FullDiag: true,
	}
	if !reflect.DeepEqual(got.Steps[0], wantStep) {
		t.Errorf("got %v, wanted %v\n", got.Steps[0], wantStep)
	}
	if want := 6; len(got.Atoms) != want {
		t.Fatalf("Atoms: got %d, wanted %d\n", len(got.Atoms), want)
	}
	wantAtom := Atom{
		Index:  2,
		Z:      8,
		Symbol: "O",
		CovCN:  1.723,
		Charge: -0.441,
		C6:     21.984,
		Alpha:  6.349,
	}
	if !reflect.DeepEqual(got.Atoms[1], wantAtom) {
		t.Errorf("got %v, wanted %v\n", got.Atoms[1], wantAtom)
	}
	if want := 10; len(got.Orbitals) != want {
		t.Fatalf("Orbitals: got %d, wanted %d\n",
			len(got.Orbitals), want)
	}
	homo, ok := got.HOMO()
	if !ok || homo.Index != 7 || homo.Occ != 2.0 {
		t.Errorf("HOMO: got %v, %v\n", homo, ok)
	}
	lumo, ok := got.LUMO()
	if !ok || lumo.Index != 8 || lumo.Occ != 0.0 {
		t.Errorf("LUMO: got %v, %v\n", lumo, ok)
	}
}

// parsing the same text twice has to give equal reports
func TestParseIdempotent(t *testing.T) {
	content := loadOut(t)
	a, err := ParseOut(strings.NewReader(content))
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseOut(strings.NewReader(content))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("got %v, wanted %v\n", b, a)
	}
}

func TestMissingSection(t *testing.T) {
	tests := []struct {
		anchor string
		want   string
	}{
		{"TOTAL ENERGY", "TOTAL ENERGY"},
		{"GRADIENT NORM", "GRADIENT NORM"},
		{"HOMO-LUMO GAP", "HOMO-LUMO GAP"},
		{"covCN", "partial charges"},
	}
	content := loadOut(t)
	for _, test := range tests {
		var kept []string
		for _, line := range strings.Split(content, "\n") {
			if strings.Contains(line, test.anchor) {
				continue
			}
			kept = append(kept, line)
		}
		_, err := ParseOut(strings.NewReader(
			strings.Join(kept, "\n")))
		var miss *MissingSection
		if !errors.As(err, &miss) {
			t.Errorf("%s: got %v, wanted MissingSection\n",
				test.anchor, err)
			continue
		}
		if miss.Section != test.want {
			t.Errorf("got %q, wanted %q\n",
				miss.Section, test.want)
		}
	}
}

func TestMalformedValue(t *testing.T) {
	content := strings.Replace(loadOut(t),
		"| TOTAL ENERGY",
		"| TOTAL ENERGY x", 1,
	)
	_, err := ParseOut(strings.NewReader(content))
	var mal *MalformedValue
	if !errors.As(err, &mal) {
		t.Fatalf("got %v, wanted MalformedValue\n", err)
	}
	if mal.Section != "TOTAL ENERGY" {
		t.Errorf("got %q, wanted %q\n",
			mal.Section, "TOTAL ENERGY")
	}
}

// extra whitespace around numeric tokens must not change the result
func TestWhitespace(t *testing.T) {
	content := loadOut(t)
	padded := strings.Replace(content,
		"-23.880744236440 Eh",
		"    -23.880744236440      Eh", -1,
	)
	a, err := ParseOut(strings.NewReader(content))
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseOut(strings.NewReader(padded))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("got %v, wanted %v\n", b, a)
	}
}

func TestNoGsolv(t *testing.T) {
	var kept []string
	for _, line := range strings.Split(loadOut(t), "\n") {
		if strings.Contains(line, "Gsolv") {
			continue
		}
		kept = append(kept, line)
	}
	got, err := ParseOut(strings.NewReader(strings.Join(kept, "\n")))
	if err != nil {
		t.Fatal(err)
	}
	if got.HasGsolv || got.Gsolv != 0 {
		t.Errorf("got %v, %v, wanted no Gsolv\n",
			got.Gsolv, got.HasGsolv)
	}
}

func TestReadOutGzip(t *testing.T) {
	want, err := ReadOut("testfiles/job.out")
	if err != nil {
		t.Fatal(err)
	}
	name := filepath.Join(t.TempDir(), "job.out.gz")
	f, err := os.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(f)
	gz.Write([]byte(loadOut(t)))
	gz.Close()
	f.Close()
	got, err := ReadOut(name)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
}

func TestBlankOutput(t *testing.T) {
	_, err := ParseOut(strings.NewReader(""))
	if !errors.Is(err, ErrBlankOutput) {
		t.Errorf("got %v, wanted %v\n", err, ErrBlankOutput)
	}
}

func TestAbnormalTermination(t *testing.T) {
	content := strings.Replace(loadOut(t),
		"normal termination of xtb",
		"abnormal termination of xtb", 1,
	)
	_, err := ParseOut(strings.NewReader(content))
	if !errors.Is(err, ErrFileContainsError) {
		t.Errorf("got %v, wanted %v\n", err, ErrFileContainsError)
	}
}

func TestFileNotFound(t *testing.T) {
	_, err := ReadOut("testfiles/nonexistent.out")
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("got %v, wanted %v\n", err, ErrFileNotFound)
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"  -23.880744236440 ", -23.880744236440},
		{"0.97127947459164715838D+02", 0.97127947459164715838e+02},
		{"-0.269910E-01", -0.269910e-01},
		{"12,28", 12.28},
	}
	for _, test := range tests {
		got, err := parseFloat(test.in)
		if err != nil {
			t.Fatalf("%q: %v", test.in, err)
		}
		if got != test.want {
			t.Errorf("got %v, wanted %v\n", got, test.want)
		}
	}
}
