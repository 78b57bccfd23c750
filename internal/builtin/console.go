package builtin

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/akorn-lang/akorn/internal/runtime"
)

// ErrEndOfInput is returned by the read builtins when input runs out
// before a valid line was entered.
var ErrEndOfInput = errors.New("end of input")

// Console implements the builtins on top of a reader and a writer.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole returns a console reading lines from in and writing to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Table returns the builtin table backed by c.
func (c *Console) Table() Table {
	return Table{
		"write":      c.write,
		"writeline":  c.writeline,
		"readInt":    c.readInt,
		"readFloat":  c.readFloat,
		"readString": c.readString,
		"readBool":   c.readBool,
	}
}

func join(args []runtime.Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.String()
	}
	return strings.Join(parts, " ")
}

func (c *Console) write(args []runtime.Value) (runtime.Value, error) {
	if _, err := io.WriteString(c.out, join(args)); err != nil {
		return nil, err
	}
	return runtime.None, nil
}

func (c *Console) writeline(args []runtime.Value) (runtime.Value, error) {
	if _, err := fmt.Fprintln(c.out, join(args)); err != nil {
		return nil, err
	}
	return runtime.None, nil
}

// prompt writes the prompt and returns the next input line without its
// line ending.
func (c *Console) prompt(text string) (string, error) {
	if text != "" {
		if _, err := io.WriteString(c.out, text); err != nil {
			return "", err
		}
	}
	line, err := c.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		if errors.Is(err, io.EOF) {
			return "", ErrEndOfInput
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readUntil prompts until parse accepts a line.
func (c *Console) readUntil(text string, parse func(string) (runtime.Value, bool)) (runtime.Value, error) {
	for {
		line, err := c.prompt(text)
		if err != nil {
			return nil, err
		}
		if v, ok := parse(line); ok {
			return v, nil
		}
	}
}

func (c *Console) readInt(args []runtime.Value) (runtime.Value, error) {
	return c.readUntil(join(args), func(s string) (runtime.Value, bool) {
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		return runtime.IntValue{Val: n}, err == nil
	})
}

func (c *Console) readFloat(args []runtime.Value) (runtime.Value, error) {
	return c.readUntil(join(args), func(s string) (runtime.Value, bool) {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return runtime.FloatValue{Val: f}, err == nil
	})
}

func (c *Console) readString(args []runtime.Value) (runtime.Value, error) {
	line, err := c.prompt(join(args))
	if err != nil {
		return nil, err
	}
	return runtime.StringValue{Val: line}, nil
}

// readBool prompts with args[0] until the answer equals args[1] (true)
// or args[2] (false).
func (c *Console) readBool(args []runtime.Value) (runtime.Value, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("readBool takes 3 arguments, got %d", len(args))
	}
	yes, no := args[1].String(), args[2].String()
	return c.readUntil(args[0].String(), func(s string) (runtime.Value, bool) {
		switch s {
		case yes:
			return runtime.BoolValue{Val: true}, true
		case no:
			return runtime.BoolValue{Val: false}, true
		}
		return nil, false
	})
}
