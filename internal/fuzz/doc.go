// Package fuzztests holds Go fuzz harnesses for the SysY front end and the
// whole compile-and-simulate pipeline. They guard against panics, hangs and
// assembly that the simulator rejects.
package fuzztests
