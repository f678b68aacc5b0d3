package main

import (
	"os"
	"path"
	"syscall"
)

// TrimExt removes the extension from filename
func TrimExt(filename string) string {
	return filename[:len(filename)-len(path.Ext(filename))]
}

// DupOutErr uses syscall.Dup2 to direct the stdout and stderr
// streams to files
func DupOutErr(infile string) {
	// set up output and err files and dup their fds to stdout and stderr
	// https://github.com/golang/go/issues/325
	base := TrimExt(infile)
	outfile, _ := os.Create(base + ".out")
	errfile, _ := os.Create(base + ".log")
	syscall.Dup2(int(outfile.Fd()), 1)
	syscall.Dup2(int(errfile.Fd()), 2)
}
