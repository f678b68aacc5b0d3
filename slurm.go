package main

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"
)

//go:embed xtb.tmpl
var Templates embed.FS

type Slurm struct {
	Name     string
	Cmd      string
	Flags    string
	Xcontrol bool
	Inputs   []string
}

var SLURM_TEMPLATE *template.Template

func init() {
	var err error
	SLURM_TEMPLATE, err = template.ParseFS(Templates, "xtb.tmpl")
	if err != nil {
		panic(err)
	}
}

// WriteSlurm writes a batch script running the program on each of
// infiles. The program flags come from conf; the geometry, xcontrol
// and output filenames are derived from the input basenames inside
// the template
func WriteSlurm(w io.Writer, name string, infiles []string, conf Config) {
	SLURM_TEMPLATE.Execute(w, Slurm{
		Name:     filepath.Base(name),
		Cmd:      conf.Cmd,
		Flags:    strings.Join(flagArgs(conf), " "),
		Xcontrol: len(conf.Fixed) > 0,
		Inputs:   infiles,
	})
}

var SUBMIT_CMD string = "sbatch"

// Submit sends filename to the queue and returns the assigned job
// id. The submission directory is taken from the filename, so the
// full path needs to be present
func Submit(filename string) string {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)
	cmd := exec.Command(SUBMIT_CMD, base)
	cmd.Dir = dir
	byts, err := cmd.Output()
	if err != nil {
		fmt.Printf("error on %q is: %v",
			cmd.String(), err,
		)
		panic(err)
	}
	// output like "Submitted batch job 49229449"
	fields := strings.Fields(string(byts))
	return fields[3]
}

var STAT_CMD = func() (string, []string) {
	return "squeue", []string{"-u", os.Getenv("USER")}
}

// Stat generates an updated map of job ids to their queue status.
// The map value is true if the job is either pending (PD), queued
// (Q) or running (R) and false otherwise
func Stat(qstat *map[string]bool) {
	prog, args := STAT_CMD()
	status, _ := exec.Command(prog, args...).CombinedOutput()
	scanner := bufio.NewScanner(strings.NewReader(string(status)))
	var (
		line   string
		fields []string
		header = true
	)
	// initialize them all to false and set true if run
	for key := range *qstat {
		(*qstat)[key] = false
	}
	for scanner.Scan() {
		line = scanner.Text()
		if strings.Contains(line, "JOBID") {
			header = false
			continue
		} else if header {
			continue
		}
		fields = strings.Fields(line)
		if _, ok := (*qstat)[fields[0]]; ok {
			// jobs are initially put in PD = pending
			// state
			if strings.Contains("PDQR", fields[4]) {
				(*qstat)[fields[0]] = true
			}
		}
	}
}
