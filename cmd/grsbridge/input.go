package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

const stdinName = "-"

// readInput reads a file, or stdin for "-". Text must be valid UTF-8.
func readInput(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == stdinName {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", displayName(path), err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: input is not valid UTF-8", displayName(path))
	}
	return string(data), nil
}

func displayName(path string) string {
	if path == stdinName {
		return "<stdin>"
	}
	return path
}

// inputArg returns the single input argument, stdin when absent.
func inputArg(args []string) string {
	if len(args) == 0 {
		return stdinName
	}
	return args[0]
}

var errStdinTwice = errors.New("stdin (-) can be given only once")

// checkInputs rejects argument lists that would read stdin more than once.
func checkInputs(paths []string) error {
	seen := false
	for _, p := range paths {
		if p != stdinName {
			continue
		}
		if seen {
			return errStdinTwice
		}
		seen = true
	}
	return nil
}
