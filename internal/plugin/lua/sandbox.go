package lua

import (
	"io"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// Sandbox restricts what scripts can reach beyond the editor module.
type Sandbox struct {
	L *lua.LState

	output io.Writer
}

// NewSandbox creates a new sandbox for the Lua state.
func NewSandbox(L *lua.LState) *Sandbox {
	return &Sandbox{L: L}
}

// Install removes functions that load code from disk or strings.
func (s *Sandbox) Install() {
	dangerousFuncs := []string{
		"dofile",
		"loadfile",
		"load",
		"loadstring",
		"require", // package library is not opened
		"module",
	}
	for _, name := range dangerousFuncs {
		s.L.SetGlobal(name, lua.LNil)
	}
}

// RedirectPrint makes print write to w instead of stdout.
func (s *Sandbox) RedirectPrint(w io.Writer) {
	s.output = w
	s.L.SetGlobal("print", s.L.NewFunction(s.print))
}

func (s *Sandbox) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	_, _ = io.WriteString(s.output, strings.Join(parts, "\t")+"\n")
	return 0
}
