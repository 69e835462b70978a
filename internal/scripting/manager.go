package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/crawl/internal/game/dice"
)

// Manager owns one sandboxed LState and dispatches hook calls into it.
//
// Calls are serialized by a mutex, so one Manager may serve every session of
// a server. Each load and each hook call gets its own instruction budget.
type Manager struct {
	mu        sync.Mutex
	L         *lua.LState
	instLimit int
	logger    *zap.Logger
	// src is the dice source of the call in progress; nil outside calls.
	src dice.Source
}

// NewManager creates a Manager with an empty VM.
//
// Precondition: logger must be non-nil; instLimit 0 selects DefaultInstructionLimit.
// Postcondition: Returns a non-nil Manager whose engine.* modules are registered.
func NewManager(instLimit int, logger *zap.Logger) *Manager {
	m := &Manager{
		L:         NewSandboxedState(),
		instLimit: instLimit,
		logger:    logger,
	}
	m.RegisterModules(m.L)
	return m
}

// Close releases the VM.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.L.Close()
}

// Load executes every *.lua file in scriptDir in lexicographic order.
//
// Precondition: scriptDir must be a readable directory.
// Postcondition: Returns an error naming the first file that fails to load.
func (m *Manager) Load(scriptDir string) error {
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", scriptDir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, path := range luaFiles {
		release := limitInstructions(m.L, m.instLimit)
		err := m.L.DoFile(path)
		release()
		if err != nil {
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}
	m.logger.Debug("scripts loaded", zap.String("dir", scriptDir), zap.Int("files", len(luaFiles)))
	return nil
}

// HasHook reports whether a global function named hook is defined.
func (m *Manager) HasHook(hook string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.L.GetGlobal(hook).Type() == lua.LTFunction
}

// CallHook calls the named Lua global function with args, drawing any
// engine.dice rolls from src. Returns (LNil, nil) if the hook is not
// defined. Lua runtime errors are logged at Warn level and never propagated.
//
// Precondition: args must be valid lua.LValue instances; src may be nil.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(hook string, src dice.Source, args ...lua.LValue) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fn := m.L.GetGlobal(hook)
	if fn.Type() != lua.LTFunction {
		return lua.LNil, nil
	}

	m.src = src
	defer func() { m.src = nil }()
	release := limitInstructions(m.L, m.instLimit)
	defer release()

	if err := m.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}

	ret := m.L.Get(-1)
	m.L.Pop(1)
	return ret, nil
}
