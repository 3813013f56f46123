// Package util contains small helpers shared across packages
package util

import (
	"math/rand"
	"time"
)

var (
	letters = "abcdefghijklmnoprstquwxyzABCDEFGHIJKLMNOPRSTQUWXYZ1234567890"
	seed    = rand.New(rand.NewSource(time.Now().UnixNano()))
)

func RandStr(n int) string {
	b := make([]byte, n)

	for i := range b {
		b[i] = letters[seed.Intn(len(letters))]
	}

	return string(b)
}
