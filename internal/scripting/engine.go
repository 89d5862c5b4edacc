package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM holding the tunable progression and
// economy formulas. Single-goroutine access only: the host serializes
// engine operations per character and shares one VM across them.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given
// directory. Core scripts are mandatory; feature directories are optional.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	corePath := filepath.Join(scriptsDir, "core")
	if err := e.loadDir(corePath); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load core scripts: %w", err)
	}

	for _, sub := range []string{"forge", "quest"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	// The progression curves must exist; a missing function would otherwise
	// surface as silent zeros at runtime.
	for _, name := range []string{
		"exp_for_level", "paragon_exp_for_level",
		"calc_level_up_hp", "calc_forge_bonus", "calc_forge_level_req",
	} {
		if e.vm.GetGlobal(name) == lua.LNil {
			vm.Close()
			return nil, fmt.Errorf("scripts: required function %s not defined", name)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// ExpForLevel calls Lua exp_for_level(level). exp_for_level(1) is 0 and the
// curve is strictly increasing.
func (e *Engine) ExpForLevel(level int) int64 {
	return e.callInt64Func("exp_for_level", level)
}

// ParagonExpForLevel calls Lua paragon_exp_for_level(paragon_level): the
// total EXP past the cap needed for the next paragon level.
func (e *Engine) ParagonExpForLevel(paragonLevel int) int64 {
	return e.callInt64Func("paragon_exp_for_level", paragonLevel)
}

// LevelUpHP calls Lua calc_level_up_hp(class_id, level): MaxHP gained on one
// level-up beyond the flat per-level amount from config.
func (e *Engine) LevelUpHP(classID int32, level int) int {
	return int(e.callInt64Func("calc_level_up_hp", int(classID), level))
}

// ForgeBonus calls Lua calc_forge_bonus(tier, rarity): the stat bonus of a
// forged item. Non-decreasing in tier for a fixed rarity.
func (e *Engine) ForgeBonus(tier int, rarity int) int {
	return int(e.callInt64Func("calc_forge_bonus", tier, rarity))
}

// ForgeLevelReq calls Lua calc_forge_level_req(tier, rarity): the level
// requirement of a forged item.
func (e *Engine) ForgeLevelReq(tier int, rarity int) int {
	return int(e.callInt64Func("calc_forge_level_req", tier, rarity))
}

// SalvageRefund calls Lua calc_salvage_refund(tier, rarity, kind): materials
// refunded when an item is destroyed. Optional; zero when undefined.
func (e *Engine) SalvageRefund(tier int, rarity int, kind int) int {
	if e.vm.GetGlobal("calc_salvage_refund") == lua.LNil {
		return 0
	}
	return int(e.callInt64Func("calc_salvage_refund", tier, rarity, kind))
}

func (e *Engine) callInt64Func(name string, args ...int) int64 {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		e.log.Error("lua function not found", zap.String("name", name))
		return 0
	}

	lArgs := make([]lua.LValue, len(args))
	for i, a := range args {
		lArgs[i] = lua.LNumber(a)
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lArgs...); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return 0
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return int64(lua.LVAsNumber(result))
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
