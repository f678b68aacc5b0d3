package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const (
	CHUNK         = 128
	INFILE_SUFFIX = ".xyz"
)

// Job pairs one input geometry with its eventual output. Base has no
// directory or extension information
type Job struct {
	Base  string
	Name  string
	Jobid string
	I     int
}

// monotonically increasing counter for job names
var counter int

// StageJobs copies every .xyz file in dir into the inp directory
// under a generated job name and returns the Jobs to run, writing an
// xcontrol file alongside each input when conf asks for constraints
func StageJobs(dir string, conf Config) ([]Job, error) {
	pattern := filepath.Join(dir, "*"+INFILE_SUFFIX)
	geoms, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	if len(geoms) == 0 {
		return nil, fmt.Errorf("no %s files in %q",
			INFILE_SUFFIX, dir)
	}
	sort.Strings(geoms)
	jobs := make([]Job, len(geoms))
	for i, geom := range geoms {
		base := fmt.Sprintf("job.%010d", counter)
		counter++
		if err := copyFile(
			filepath.Join("inp", base+INFILE_SUFFIX), geom,
		); err != nil {
			return nil, err
		}
		if len(conf.Fixed) > 0 {
			f, err := os.Create(
				filepath.Join("inp", base+".inp"))
			if err != nil {
				return nil, err
			}
			WriteXcontrol(f, conf.Fixed)
			f.Close()
		}
		jobs[i] = Job{
			Base: base,
			Name: filepath.Base(geom),
			I:    i,
		}
	}
	return jobs, nil
}

// RunJobs submits jobs to the queue in chunks and polls their
// outputs until every one has produced a parsable Report, consulting
// the queue and resubmitting jobs that disappeared without output.
// The returned slice is ordered like jobs
func RunJobs(jobs []Job, conf Config) []*Report {
	reports := make([]*Report, len(jobs))
	var nscript int
	chunkees := make([]Job, 0, CHUNK)
	runJobs := make([]Job, 0, len(jobs))
	// submit the jobs in groups of size CHUNK, then store the
	// updated jobs in runJobs
	for j, job := range jobs {
		chunkees = append(chunkees, job)
		if len(chunkees) == CHUNK || j == len(jobs)-1 {
			name := fmt.Sprintf("inp/%d.slurm", nscript)
			nscript++
			f, err := os.Create(name)
			if err != nil {
				panic(err)
			}
			WriteSlurm(f, name, Basenames(chunkees), conf)
			f.Close()
			jobid := Submit(name)
			for c := range chunkees {
				chunkees[c].Jobid = jobid
			}
			runJobs = append(runJobs, chunkees...)
			chunkees = make([]Job, 0, CHUNK)
		}
	}
	qstat := make(map[string]bool)
	// initialize to true
	for _, j := range runJobs {
		qstat[j.Jobid] = true
	}
	var shortened int
	for len(runJobs) > 0 {
		for i := 0; i < len(runJobs); i++ {
			job := runJobs[i]
			report, err := ReadOut(
				filepath.Join("inp", job.Base+".out"),
			)
			if err == nil {
				shortened++
				reports[job.I] = report
				l := len(runJobs) - 1
				runJobs[l], runJobs[i] = runJobs[i], runJobs[l]
				runJobs = runJobs[:l]
			} else if !qstat[job.Jobid] {
				// the job fell out of the queue
				// without finishing; resubmit
				delete(qstat, job.Jobid)
				runJobs[i] = Resubmit(job, conf)
				qstat[runJobs[i].Jobid] = true
			}
		}
		if shortened < 1 {
			// check the queue if no runJobs finish
			Stat(&qstat)
			time.Sleep(1 * time.Second)
			fmt.Fprintf(os.Stderr,
				"%d jobs remaining\n", len(runJobs))
		}
		shortened = 0
	}
	fmt.Fprintln(os.Stderr, "jobs done")
	return reports
}

// Resubmit copies job's input to a fresh name, submits it in a
// script of its own and returns the updated Job
func Resubmit(job Job, conf Config) Job {
	redo := job.Base + "_redo"
	err := copyFile(
		filepath.Join("inp", redo+INFILE_SUFFIX),
		filepath.Join("inp", job.Base+INFILE_SUFFIX),
	)
	if err != nil {
		panic(err)
	}
	if len(conf.Fixed) > 0 {
		f, err := os.Create(filepath.Join("inp", redo+".inp"))
		if err != nil {
			panic(err)
		}
		WriteXcontrol(f, conf.Fixed)
		f.Close()
	}
	script := filepath.Join("inp", redo+".slurm")
	f, err := os.Create(script)
	if err != nil {
		panic(err)
	}
	WriteSlurm(f, redo, []string{redo}, conf)
	f.Close()
	fmt.Fprintf(os.Stderr, "resubmitting %s as %s\n",
		job.Base, redo)
	return Job{
		Base:  redo,
		Name:  job.Name,
		I:     job.I,
		Jobid: Submit(script),
	}
}

// Basenames extracts the job basenames for a batch script
func Basenames(jobs []Job) []string {
	ret := make([]string, len(jobs))
	for j := range jobs {
		ret[j] = jobs[j].Base
	}
	return ret
}

func copyFile(dst, src string) error {
	s, err := os.Open(src)
	if err != nil {
		return err
	}
	defer s.Close()
	d, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer d.Close()
	_, err = io.Copy(d, s)
	return err
}
