package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/crawl/internal/game/dice"
)

// RegisterModules registers the engine.log and engine.dice tables into L.
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()

	logTbl := L.NewTable()
	logAt := func(write func(string, ...zap.Field)) lua.LGFunction {
		return func(L *lua.LState) int {
			write(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}
	}
	L.SetField(logTbl, "debug", L.NewFunction(logAt(m.logger.Debug)))
	L.SetField(logTbl, "info", L.NewFunction(logAt(m.logger.Info)))
	L.SetField(logTbl, "warn", L.NewFunction(logAt(m.logger.Warn)))
	L.SetField(engine, "log", logTbl)

	diceTbl := L.NewTable()
	L.SetField(diceTbl, "roll", L.NewFunction(m.luaDiceRoll))
	L.SetField(engine, "dice", diceTbl)

	L.SetGlobal("engine", engine)
}

// luaDiceRoll implements engine.dice.roll(expr) returning
// {total=, modifier=, dice={...}, text=} or raising a Lua error on a bad expression.
func (m *Manager) luaDiceRoll(L *lua.LState) int {
	src := m.src
	if src == nil {
		src = dice.NewCryptoSource()
	}
	res, err := dice.NewLoggedRoller(src, m.logger).RollExpr(L.CheckString(1))
	if err != nil {
		L.RaiseError("engine.dice.roll: %s", err.Error())
		return 0
	}
	tbl := L.NewTable()
	L.SetField(tbl, "total", lua.LNumber(res.Total()))
	L.SetField(tbl, "modifier", lua.LNumber(res.Expression.Modifier))
	L.SetField(tbl, "text", lua.LString(res.String()))
	rolled := L.NewTable()
	for _, d := range res.Dice {
		rolled.Append(lua.LNumber(d))
	}
	L.SetField(tbl, "dice", rolled)
	L.Push(tbl)
	return 1
}
