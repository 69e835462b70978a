// Package scripting provides a sandboxed GopherLua environment for content
// hooks such as rare encounters. Domain state reaches Lua only as hook
// arguments and through the engine.* modules.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the maximum number of Lua opcodes allowed per
// load or hook call when no override is configured.
const DefaultInstructionLimit = 100_000

// safeLibs are the only standard libraries a content script sees.
var safeLibs = []lua.LGFunction{lua.OpenBase, lua.OpenTable, lua.OpenString, lua.OpenMath}

// blockedGlobals are base functions that reach the filesystem or compile
// new chunks.
var blockedGlobals = []string{"dofile", "loadfile", "load", "loadstring", "collectgarbage", "require"}

// opBudget is a context that cancels itself once Done has been polled limit
// times. The Lua VM polls Done once per opcode when a context is set.
type opBudget struct {
	context.Context
	cancel context.CancelFunc
	left   atomic.Int64
}

func newOpBudget(limit int) *opBudget {
	ctx, cancel := context.WithCancel(context.Background())
	b := &opBudget{Context: ctx, cancel: cancel}
	b.left.Store(int64(limit))
	return b
}

func (b *opBudget) Done() <-chan struct{} {
	if b.left.Add(-1) < 0 {
		b.cancel()
	}
	return b.Context.Done()
}

// NewSandboxedState returns an LState with only the safe libraries opened
// and the blocked globals removed. The caller closes it.
func NewSandboxedState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, open := range safeLibs {
		open(L)
	}
	for _, name := range blockedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

// limitInstructions arms L with a fresh budget of limit opcodes and returns
// the function that disarms it. A limit of 0 or less means
// DefaultInstructionLimit.
func limitInstructions(L *lua.LState, limit int) func() {
	if limit <= 0 {
		limit = DefaultInstructionLimit
	}
	b := newOpBudget(limit)
	L.SetContext(b)
	return func() {
		b.cancel()
		L.RemoveContext()
	}
}
