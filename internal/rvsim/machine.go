package rvsim

import (
	"fmt"
	"strings"
)

// retSentinel is the return address planted by Call; returning to it ends the run.
const retSentinel = ^uint32(0)

type inst struct {
	op   string
	args []string
	line int
	text string
}

// Machine holds a loaded program and its register file.
type Machine struct {
	Regs     [32]uint32
	PC       int
	Steps    int
	MaxSteps int

	code   []inst
	labels map[string]int
	emu    instEmulator
}

// Load parses assembly lines. Directives are accepted and ignored except
// that labels become jump targets.
func Load(lines []string) (*Machine, error) {
	m := &Machine{labels: make(map[string]int), MaxSteps: 1 << 20}
	for n, raw := range lines {
		text := raw
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		switch {
		case text == "":
		case strings.HasSuffix(text, ":"):
			m.labels[strings.TrimSuffix(text, ":")] = len(m.code)
		case strings.HasPrefix(text, "."):
		default:
			op, rest, _ := strings.Cut(text, " ")
			var args []string
			if rest = strings.TrimSpace(rest); rest != "" {
				for _, a := range strings.Split(rest, ",") {
					args = append(args, strings.TrimSpace(a))
				}
			}
			m.code = append(m.code, inst{op: op, args: args, line: n + 1, text: raw})
		}
	}
	return m, nil
}

// Call runs the function at label until it returns, and yields a0.
func (m *Machine) Call(label string) (int32, error) {
	pc, ok := m.labels[label]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownLabel, label)
	}
	m.PC = pc
	m.Regs[regRA] = retSentinel
	m.Steps = 0

	for {
		if m.Steps >= m.MaxSteps {
			return 0, ErrStepLimit
		}
		if m.PC < 0 || m.PC >= len(m.code) {
			return 0, fmt.Errorf("pc %d outside the program", m.PC)
		}
		in := m.code[m.PC]
		done, err := m.emu.RunInst(in, m)
		if err != nil {
			return 0, &LineError{Line: in.line, Text: strings.TrimSpace(in.text), Err: err}
		}
		m.Steps++
		if done {
			return int32(m.Regs[regA0]), nil
		}
	}
}

// Run loads lines and calls entry.
func Run(lines []string, entry string) (int32, error) {
	m, err := Load(lines)
	if err != nil {
		return 0, err
	}
	return m.Call(entry)
}

func (m *Machine) read(r int) uint32 {
	if r == regZero {
		return 0
	}
	return m.Regs[r]
}

func (m *Machine) write(r int, v uint32) {
	if r != regZero {
		m.Regs[r] = v
	}
}
