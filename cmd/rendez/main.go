// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"

	rendez "github.com/kiridi/concurrent-fp"
)

const (
	promptMain = "rendez> "
	banner     = "rendez REPL — Ctrl+D to exit."
)

func main() {
	var evalStr string
	var file string
	var debugSched bool
	flag.StringVar(&evalStr, "e", "", "evaluate a single phrase and exit")
	flag.StringVar(&file, "f", "", "evaluate every phrase in a file, one per line, and exit")
	flag.BoolVar(&debugSched, "debug-sched", false, "log scheduler task-count and deadlock diagnostics")
	flag.Parse()

	if debugSched {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}

	switch {
	case evalStr != "":
		os.Exit(runPhrases([]string{evalStr}))
	case file != "":
		lines, err := readLines(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rendez: %v\n", err)
			os.Exit(1)
		}
		os.Exit(runPhrases(lines))
	default:
		os.Exit(runREPL())
	}
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := sc.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}

// runPhrases evaluates each phrase in order against one accumulated
// ProgState, printing each result to stdout and each parse or runtime
// error to stderr: a malformed or failing phrase is reported and
// skipped, leaving state unchanged for the next phrase.
func runPhrases(phrases []string) int {
	state := rendez.NewProgState()
	status := 0
	for _, src := range phrases {
		phrase, err := rendez.Parse(src)
		if err != nil {
			logrus.WithField("phrase", src).Warn("rendez: malformed phrase")
			fmt.Fprintf(os.Stderr, "rendez: %v\n", err)
			status = 1
			continue
		}
		output, next, err := rendez.Obey(phrase, state)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rendez: %v\n", err)
			status = 1
			continue
		}
		state = next
		fmt.Println(output)
	}
	return status
}

// runREPL drives an interactive session via liner, falling back to a
// plain bufio.Scanner when liner can't open a terminal (piped stdin,
// tests).
func runREPL() int {
	fmt.Println(banner)
	state := rendez.NewProgState()

	if !isTerminal(os.Stdin) {
		return runScannerREPL(state)
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if err != nil {
			continue
		}
		if line == "" {
			continue
		}
		ln.AppendHistory(line)
		state = evalAndPrint(line, state)
	}
}

func runScannerREPL(state rendez.ProgState) int {
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		state = evalAndPrint(line, state)
	}
	return 0
}

func evalAndPrint(line string, state rendez.ProgState) rendez.ProgState {
	phrase, err := rendez.Parse(line)
	if err != nil {
		logrus.WithField("phrase", line).Warn("rendez: malformed phrase")
		fmt.Println(err)
		return state
	}
	output, next, err := rendez.Obey(phrase, state)
	if err != nil {
		fmt.Println(err)
		return state
	}
	fmt.Println(output)
	return next
}

func isTerminal(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}
