//go:build !windows

package main

func ensureConsole() func() { return func() {} }
