package sqlet

// The trampolines below are the only functions the engine ever calls
// back into. Each receives an opaque context pointer that carries a
// runtime/cgo Handle to the caller's closure; the trampoline recovers
// the closure, invokes it, and translates its boolean result into the
// primitive return convention the C API expects. A panic in the closure
// is caught here so it never unwinds into the engine's call stack.
//
// This file must keep a declaration-only preamble: cgo forbids C
// definitions in files that use //export.

/*
#include <stdlib.h>
*/
import "C"
import (
	"runtime/cgo"
	"unsafe"
)

// iterateState carries one Iterate call's closure across the C boundary
// together with the outcome flags Iterate inspects afterwards.
type iterateState struct {
	callback func(row []TextColumn) bool
	stopped  bool
	panicked any
}

//export sqletExecTrampoline
func sqletExecTrampoline(ctx unsafe.Pointer, count C.int, values **C.char, names **C.char) C.int {
	state := cgo.Handle(uintptr(ctx)).Value().(*iterateState)

	row := make([]TextColumn, int(count))
	if count > 0 {
		nameSlice := unsafe.Slice(names, int(count))
		valueSlice := unsafe.Slice(values, int(count))
		for i := range row {
			row[i].Name = C.GoString(nameSlice[i])
			if valueSlice[i] != nil {
				text := C.GoString(valueSlice[i])
				row[i].Value = &text
			}
		}
	}

	keepGoing := false
	func() {
		defer func() {
			if r := recover(); r != nil {
				state.panicked = r
			}
		}()
		keepGoing = state.callback(row)
	}()

	if state.panicked != nil || !keepGoing {
		state.stopped = state.panicked == nil
		// Nonzero aborts sqlite3_exec; Iterate turns a plain stop back
		// into success.
		return 1
	}
	return 0
}

//export sqletBusyTrampoline
func sqletBusyTrampoline(ctx unsafe.Pointer, attempts C.int) C.int {
	callback := cgo.Handle(uintptr(ctx)).Value().(func(attempts int) bool)

	retry := false
	func() {
		defer func() {
			// A panicking busy handler cannot be propagated through the
			// blocked native call; give up on the retry loop instead and
			// let that call fail with the engine's busy error.
			_ = recover()
		}()
		retry = callback(int(attempts))
	}()

	if retry {
		return 1
	}
	return 0
}
