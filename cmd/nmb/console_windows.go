//go:build windows

package main

import (
	"os"
	"syscall"
)

const attachParentProcess = ^uint32(0)

var (
	kernel32             = syscall.NewLazyDLL("kernel32.dll")
	procAttachConsole    = kernel32.NewProc("AttachConsole")
	procAllocConsole     = kernel32.NewProc("AllocConsole")
	procFreeConsole      = kernel32.NewProc("FreeConsole")
	procGetConsoleWindow = kernel32.NewProc("GetConsoleWindow")
)

// ensureConsole attaches to the parent console when nmb is linked as a GUI
// executable, so the JSON results still reach the caller. It returns the
// function that detaches again.
func ensureConsole() func() {
	if hasConsole() {
		return func() {}
	}
	if !attachConsole() {
		// Without a parent console there is nobody to read stdout.
		if os.Getenv("NMB_ALLOC_CONSOLE") == "" || !allocConsole() {
			return func() {}
		}
	}
	rebindStdHandles()
	return func() { procFreeConsole.Call() }
}

func hasConsole() bool {
	if hwnd, _, _ := procGetConsoleWindow.Call(); hwnd != 0 {
		return true
	}
	handle, err := syscall.GetStdHandle(syscall.STD_OUTPUT_HANDLE)
	if err != nil {
		return false
	}
	return handle != 0 && handle != syscall.InvalidHandle
}

func attachConsole() bool {
	r, _, _ := procAttachConsole.Call(uintptr(attachParentProcess))
	return r != 0
}

func allocConsole() bool {
	r, _, _ := procAllocConsole.Call()
	return r != 0
}

func rebindStdHandles() {
	bind := func(id int, name string, target **os.File) {
		h, err := syscall.GetStdHandle(id)
		if err != nil || h == 0 || h == syscall.InvalidHandle {
			return
		}
		if f := os.NewFile(uintptr(h), name); f != nil {
			*target = f
		}
	}
	bind(syscall.STD_INPUT_HANDLE, "CONIN$", &os.Stdin)
	bind(syscall.STD_OUTPUT_HANDLE, "CONOUT$", &os.Stdout)
	bind(syscall.STD_ERROR_HANDLE, "CONOUT$", &os.Stderr)
}
