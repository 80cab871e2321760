package lua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/transpose/internal/engine/cursor"
)

// CaretToTable converts a caret to {col, line, end_col, end_line}.
// A collapsed caret has end_col = end_line = -1.
func CaretToTable(L *lua.LState, c cursor.Caret) *lua.LTable {
	col, line, endCol, endLine := c.Range()
	t := L.NewTable()
	t.RawSetString("col", lua.LNumber(col))
	t.RawSetString("line", lua.LNumber(line))
	t.RawSetString("end_col", lua.LNumber(endCol))
	t.RawSetString("end_line", lua.LNumber(endLine))
	return t
}

// TableToCaret reads a caret from either {col=, line=, end_col=, end_line=}
// or a positional {col, line[, end_col, end_line]} table.
func TableToCaret(t *lua.LTable) (cursor.Caret, error) {
	get := func(name string, index int) (int, bool, error) {
		v := t.RawGetString(name)
		if v == lua.LNil {
			v = t.RawGetInt(index)
		}
		if v == lua.LNil {
			return 0, false, nil
		}
		n, ok := v.(lua.LNumber)
		if !ok {
			return 0, false, fmt.Errorf("%s must be a number, got %s", name, v.Type())
		}
		if float64(n) != float64(int(n)) {
			return 0, false, fmt.Errorf("%s must be an integer, got %v", name, n)
		}
		return int(n), true, nil
	}

	col, okCol, err := get("col", 1)
	if err != nil {
		return cursor.Caret{}, err
	}
	line, okLine, err := get("line", 2)
	if err != nil {
		return cursor.Caret{}, err
	}
	if !okCol || !okLine {
		return cursor.Caret{}, fmt.Errorf("caret needs col and line")
	}

	endCol, okEndCol, err := get("end_col", 3)
	if err != nil {
		return cursor.Caret{}, err
	}
	endLine, okEndLine, err := get("end_line", 4)
	if err != nil {
		return cursor.Caret{}, err
	}
	if !okEndCol || endCol < 0 {
		return cursor.Collapsed(cursor.Pos(col, line)), nil
	}
	if !okEndLine {
		endLine = line
	}
	return cursor.FromRange(col, line, endCol, endLine), nil
}

// ToLuaValue converts a Go value to a Lua value.
// Unsupported types become their string form.
func ToLuaValue(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case []string:
		t := L.NewTable()
		for _, s := range val {
			t.Append(lua.LString(s))
		}
		return t
	case map[string]any:
		t := L.NewTable()
		for k, item := range val {
			t.RawSetString(k, ToLuaValue(L, item))
		}
		return t
	default:
		return lua.LString(fmt.Sprint(val))
	}
}
