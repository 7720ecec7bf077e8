//go:build windows

package win32

import (
	"syscall"
	"unsafe"
)

var (
	modUser32      = syscall.NewLazyDLL("user32.dll")
	procMessageBox = modUser32.NewProc("MessageBoxW")
)

const errorCancelled = syscall.Errno(1223)

// New returns a renderer backed by user32!MessageBoxW.
func New() *Renderer {
	return &Renderer{Show: messageBox}
}

// Available reports whether MessageBoxW can be resolved.
func Available() bool {
	return procMessageBox.Find() == nil
}

func messageBox(hwnd uintptr, text, title string, flags uint32) (int, error) {
	txtPtr, err := syscall.UTF16PtrFromString(text)
	if err != nil {
		return 0, err
	}
	titlePtr, err := syscall.UTF16PtrFromString(title)
	if err != nil {
		return 0, err
	}
	ret, _, callErr := procMessageBox.Call(hwnd, uintptr(unsafe.Pointer(txtPtr)), uintptr(unsafe.Pointer(titlePtr)), uintptr(flags))
	if ret == 0 {
		if callErr == errorCancelled {
			return 0, ErrDismissed
		}
		return 0, callErr
	}
	return int(ret), nil
}
