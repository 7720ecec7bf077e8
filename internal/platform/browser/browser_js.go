//go:build js && wasm

package browser

import (
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/wieslawsoltes/NativeMessageBox/internal/platform/bridge"
)

// HostObject is the global the page defines to render rich dialogs:
//
//	NativeMessageBoxHost.showDialog(envelopeJSON) -> bool
//	NativeMessageBoxHost.closeDialog(handle)
//
// The page reports answers by calling the global CompleteFunc with the
// handle and the response JSON.
const (
	HostObject   = "NativeMessageBoxHost"
	CompleteFunc = "nativeMessageBoxComplete"
)

// JSHost forwards envelopes to the page's host object.
type JSHost struct {
	obj js.Value
}

// LookupHost returns the page's host object, if it defines one.
func LookupHost() (*JSHost, bool) {
	obj := js.Global().Get(HostObject)
	if obj.IsUndefined() || obj.IsNull() || obj.Get("showDialog").Type() != js.TypeFunction {
		return nil, false
	}
	return &JSHost{obj: obj}, true
}

func (h *JSHost) ShowDialog(parent any, env *bridge.Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	ok := h.obj.Call("showDialog", string(data))
	if ok.Type() == js.TypeBoolean && !ok.Bool() {
		return fmt.Errorf("%s.showDialog declined %s", HostObject, env.Handle)
	}
	return nil
}

func (h *JSHost) CloseDialog(handle string) error {
	if h.obj.Get("closeDialog").Type() != js.TypeFunction {
		return nil
	}
	h.obj.Call("closeDialog", handle)
	return nil
}

// Expose registers CompleteFunc for b. The returned function unregisters it.
//
// Show blocks its goroutine until the page answers, so it must not be called
// from inside a JavaScript callback.
func Expose(b *bridge.Bridge) func() {
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 2 {
			return "expected (handle, responseJSON)"
		}
		if err := b.CompleteJSON(args[0].String(), []byte(args[1].String())); err != nil {
			return err.Error()
		}
		return nil
	})
	js.Global().Set(CompleteFunc, fn)
	return func() {
		js.Global().Delete(CompleteFunc)
		fn.Release()
	}
}

// Window prompts with window.alert and window.confirm.
type Window struct{}

// WindowAvailable reports whether the page has a window with confirm.
func WindowAvailable() bool {
	return js.Global().Get("confirm").Type() == js.TypeFunction
}

func (Window) Alert(text string) { js.Global().Call("alert", text) }

func (Window) Confirm(text string) bool { return js.Global().Call("confirm", text).Truthy() }
