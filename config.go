package main

import (
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type RawConf struct {
	Cmd        string
	Gfn        string
	Charge     int
	UHF        int
	Solvent    string
	Dielectric int
	Fixed      string
	Threads    int
	Timeout    int
	Flags      string
}

func (rc RawConf) ToConfig() (conf Config) {
	conf.Cmd = rc.Cmd
	conf.Gfn = rc.Gfn
	conf.Charge = rc.Charge
	conf.UHF = rc.UHF
	conf.Solvent = rc.Solvent
	if conf.Solvent == "" && rc.Dielectric > 0 {
		conf.Solvent = dielectric2Solvent[rc.Dielectric]
	}
	for _, f := range strings.Fields(rc.Fixed) {
		v, err := strconv.Atoi(f)
		if err != nil {
			log.Fatalf("failed to parse fixed atom %q", f)
		}
		conf.Fixed = append(conf.Fixed, v)
	}
	conf.Threads = rc.Threads
	conf.Timeout = time.Duration(rc.Timeout) * time.Second
	if rc.Flags != "" {
		conf.Flags = strings.Fields(rc.Flags)
	}
	return
}

type Config struct {
	Cmd     string
	Gfn     string
	Charge  int
	UHF     int
	Solvent string
	Fixed   []int
	Threads int
	Timeout time.Duration
	Flags   []string
}

// taken from the implicit solvation models the program actually ships
var dielectric2Solvent = map[int]string{
	80: "h2o",
	5:  "chcl3",
	9:  "ch2cl2",
	21: "acetone",
	37: "acetonitrile",
	33: "methanol",
	2:  "toluene",
	7:  "thf",
	47: "dmso",
	38: "dmf",
}

// Defaults returns the configuration used when no config file is
// given
func Defaults() RawConf {
	return RawConf{
		Cmd:     "xtb",
		Gfn:     "2",
		Charge:  0,
		UHF:     0,
		Timeout: 3600,
	}
}

func LoadConfig(filename string) Config {
	f, err := os.Open(filename)
	defer f.Close()
	if err != nil {
		panic(err)
	}
	cont, err := io.ReadAll(f)
	if err != nil {
		panic(err)
	}
	rc := Defaults()
	err = toml.Unmarshal(cont, &rc)
	if err != nil {
		panic(err)
	}
	return rc.ToConfig()
}
