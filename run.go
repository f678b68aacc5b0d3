package main

import (
	"context"
	"os"
	"os/exec"
)

// RunXTB invokes the external program on the geometry in xyz,
// capturing stdout and stderr in the corresponding .out file, and
// returns the name of that file. The command is killed if it does
// not finish before conf.Timeout
func RunXTB(conf Config, xyz string) (string, error) {
	if err := BuildInput(conf, xyz); err != nil {
		return "", err
	}
	outfile := TrimExt(xyz) + ".out"
	out, err := os.Create(outfile)
	if err != nil {
		return "", err
	}
	defer out.Close()
	ctx := context.Background()
	if conf.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, conf.Timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, conf.Cmd, Args(conf, xyz)...)
	cmd.Stdout = out
	cmd.Stderr = out
	if err := cmd.Run(); err != nil {
		return "", err
	}
	// stale restart files break reruns in the same directory
	os.Remove("xtbrestart")
	return outfile, nil
}
