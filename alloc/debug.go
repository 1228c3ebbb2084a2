//go:build umallocdebug

package alloc

// debugChecks runs Verify after every mutating operation.
const debugChecks = true
