//go:build !customenv

package dracoenc

/*
#cgo CXXFLAGS: -std=c++14
#cgo LDFLAGS: -ldraco -lstdc++
#cgo !windows LDFLAGS: -lm
*/
import "C"
