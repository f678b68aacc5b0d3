package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
)

// Flags
var (
	conffile = flag.String("config", "",
		"TOML file with the program configuration")
	runfile = flag.String("run", "",
		"run the program on the given .xyz geometry and report")
	batch = flag.String("batch", "",
		"submit every .xyz file in the given directory to the queue")
	compare = flag.Bool("compare", false,
		"compare the partial charges of two output files")
	plotfile = flag.String("plot", "",
		"write an SCC convergence plot of the output to this file")
	cpuprofile = flag.String("cpu", "", "write a CPU profile")
)

func main() {
	flag.Parse()
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			panic(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}
	conf := Defaults().ToConfig()
	if *conffile != "" {
		conf = LoadConfig(*conffile)
	}
	args := flag.Args()
	switch {
	case *batch != "":
		DupOutErr("batch.in")
		os.RemoveAll("inp")
		if err := os.Mkdir("inp", 0755); err != nil {
			log.Fatal(err)
		}
		jobs, err := StageJobs(*batch, conf)
		if err != nil {
			log.Fatal(err)
		}
		reports := RunJobs(jobs, conf)
		fmt.Printf("%-20s%20s%16s%12s%6s%6s\n",
			"Name", "Energy/Eh", "Grad", "Gap/eV", "It", "Conv")
		for i, r := range reports {
			conv := "F"
			if r.Converged {
				conv = "T"
			}
			fmt.Printf("%-20s%20.12f%16.8f%12.4f%6d%6s\n",
				jobs[i].Name, r.Energy, r.GradientNorm,
				r.Gap, len(r.Steps), conv)
		}
	case *runfile != "":
		out, err := RunXTB(conf, *runfile)
		if err != nil {
			log.Fatal(err)
		}
		report, err := ReadOut(out)
		if err != nil {
			log.Fatalf("%s: %v", out, err)
		}
		report.Write(os.Stdout)
	case *compare:
		if len(args) != 2 {
			log.Fatalln(
				"-compare requires exactly two output files")
		}
		a, err := ReadOut(args[0])
		if err != nil {
			log.Fatalf("%s: %v", args[0], err)
		}
		b, err := ReadOut(args[1])
		if err != nil {
			log.Fatalf("%s: %v", args[1], err)
		}
		rmsd, err := ChargeRMSD(a, b)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%-20s%20.12f\n", "dE/Eh", b.Energy-a.Energy)
		fmt.Printf("%-20s%20.12f\n", "charge RMSD/e", rmsd)
	case *plotfile != "":
		if len(args) != 1 {
			log.Fatalln("-plot requires exactly one output file")
		}
		report, err := ReadOut(args[0])
		if err != nil {
			log.Fatalf("%s: %v", args[0], err)
		}
		if err := PlotSteps(report.Steps, *plotfile); err != nil {
			log.Fatal(err)
		}
	default:
		if len(args) == 0 {
			log.Fatalln("no output files given")
		}
		for _, file := range args {
			report, err := ReadOut(file)
			if err != nil {
				log.Fatalf("%s: %v", file, err)
			}
			if len(args) > 1 {
				fmt.Printf("==> %s <==\n", file)
			}
			report.Write(os.Stdout)
		}
	}
}
