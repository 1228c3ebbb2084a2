//go:build !umallocdebug

package alloc

const debugChecks = false
