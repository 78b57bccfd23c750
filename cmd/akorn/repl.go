package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// runREPL reads one command per line until end of input or `exit`.
func (c *cli) runREPL() int {
	r := bufio.NewReader(c.stdin)
	inner := *c
	inner.stdin = r
	inner.inREPL = true

	for {
		fmt.Fprint(c.stderr, "akorn> ")
		line, err := r.ReadString('\n')

		switch {
		case errors.Is(err, io.EOF) && strings.TrimSpace(line) == "":
			fmt.Fprintln(c.stderr, "^D")
			return 0
		case err != nil && !errors.Is(err, io.EOF):
			fmt.Fprintf(c.stderr, "akorn: %s\n", err)
			return 1
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "exit" {
			return 0
		}
		inner.exec(fields[0], fields[1:])
	}
}
