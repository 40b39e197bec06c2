package rvsim

import (
	"fmt"
	"strconv"
	"strings"
)

var abiNames = [32]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

var regIndex = func() map[string]int {
	m := make(map[string]int, 66)
	for i, n := range abiNames {
		m[n] = i
		m["x"+strconv.Itoa(i)] = i
	}
	m["fp"] = 8
	return m
}()

// RegIndex maps an ABI or xN register name to its number.
func RegIndex(name string) (int, error) {
	if i, ok := regIndex[strings.TrimSpace(name)]; ok {
		return i, nil
	}
	return 0, fmt.Errorf("%w: register %q", ErrBadOperand, name)
}

const (
	regZero = 0
	regRA   = 1
	regA0   = 10
)
