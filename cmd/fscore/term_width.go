package main

import (
	"os"
	"strconv"
)

// columnsEnv reads a positive COLUMNS override, or 0.
func columnsEnv() int {
	n, err := strconv.Atoi(os.Getenv("COLUMNS"))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
