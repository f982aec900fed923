//go:build windows

package main

func terminalWidth() int { return columnsEnv() }
