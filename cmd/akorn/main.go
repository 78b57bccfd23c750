package main

import (
	"fmt"
	"io"
	"os"

	"git.sr.ht/~sircmpwn/getopt"

	"github.com/akorn-lang/akorn/internal/config"
)

const version = "0.1.0"

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: akorn [-c config] [-s] [-h] <command> [file]\n")
	fmt.Fprintf(w, "\nCommands:\n")
	fmt.Fprintf(w, "  run <file>      Check and run an akorn source file\n")
	fmt.Fprintf(w, "  check <file>    Report diagnostics without running\n")
	fmt.Fprintf(w, "  tokens <file>   Print the normalized token stream\n")
	fmt.Fprintf(w, "  ast <file>      Print the syntax tree\n")
	fmt.Fprintf(w, "  scope <file>    Print the scopes built by the parser\n")
	fmt.Fprintf(w, "  repl            Read commands interactively\n")
	fmt.Fprintf(w, "  lsp             Serve the language server protocol on stdin/stdout\n")
	fmt.Fprintf(w, "  version         Print the version\n")
	fmt.Fprintf(w, "  help            Show this message\n")
	fmt.Fprintf(w, "\nOptions:\n")
	fmt.Fprintf(w, "  -c <file>       Use the given configuration file instead of akorn.yaml\n")
	fmt.Fprintf(w, "  -s              Show source snippets under diagnostics\n")
	fmt.Fprintf(w, "  -h              Show this message\n")
}

func main() {
	opts, optind, err := getopt.Getopts(os.Args, "c:sh")
	if err != nil {
		fmt.Fprintf(os.Stderr, "akorn: %s\n", err)
		usage(os.Stderr)
		os.Exit(1)
	}

	var (
		configPath string
		snippets   bool
	)
	for _, opt := range opts {
		switch opt.Option {
		case 'c':
			configPath = opt.Value
		case 's':
			snippets = true
		case 'h':
			usage(os.Stdout)
			os.Exit(0)
		}
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "akorn: %s\n", err)
		os.Exit(1)
	}
	if snippets {
		cfg.Diagnostics.Snippets = true
	}

	args := os.Args[optind:]
	if len(args) < 1 {
		usage(os.Stderr)
		os.Exit(1)
	}

	c := &cli{
		cfg:    cfg,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	os.Exit(c.exec(args[0], args[1:]))
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.Discover(".")
}
