//go:build !cgo || nmb_tui || android || ios || (windows && arm64)

package main

import "os"

func main() {
	release := ensureConsole()
	c, jobs, code := prepare(os.Args[1:], os.Stdout, os.Stderr)
	if c != nil {
		code = runDirect(c, jobs)
	}
	release()
	os.Exit(code)
}
