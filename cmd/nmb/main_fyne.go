//go:build cgo && !nmb_tui && !android && !ios && !(windows && arm64)

package main

import (
	"os"
	"runtime"

	"fyne.io/fyne/v2"
	fyneApp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/wieslawsoltes/NativeMessageBox/internal/core"
)

const appID = "io.github.wieslawsoltes.nativemessagebox"

func main() {
	release := ensureConsole()
	c, jobs, code := prepare(os.Args[1:], os.Stdout, os.Stderr)
	if c == nil {
		release()
		os.Exit(code)
	}
	if !displayAvailable() {
		code = runDirect(c, jobs)
		release()
		os.Exit(code)
	}

	application := fyneApp.NewWithID(appID)
	if err := c.initialize(application); err != nil {
		c.log.Log("Initialization failed: " + err.Error())
		release()
		os.Exit(exitCode(core.StatusOf(err)))
	}

	// Dialogs are modal pop-ups over one host window so the loop keeps
	// running between the dialogs of a batch.
	host := application.NewWindow(core.AppName)
	host.SetContent(container.NewCenter(widget.NewLabel(" ")))
	host.Resize(fyne.NewSize(480, 360))
	host.SetCloseIntercept(func() {
		if onKey := host.Canvas().OnTypedKey(); onKey != nil {
			onKey(&fyne.KeyEvent{Name: fyne.KeyEscape})
		}
	})
	host.CenterOnScreen()
	host.Show()

	done := make(chan int, 1)
	go func() {
		for _, j := range jobs {
			if j.req.ParentWindow == nil {
				j.req.ParentWindow = host
			}
		}
		done <- c.run(jobs)
		host.SetCloseIntercept(nil)
		host.Close()
		application.Quit()
	}()
	application.Run()

	code = <-done
	c.shutdown()
	release()
	os.Exit(code)
}

func displayAvailable() bool {
	switch runtime.GOOS {
	case "windows", "darwin":
		return true
	}
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}
