// Command tsp-gen is the thin CLI front end for the generator: argument
// parsing, glob expansion, and file I/O orchestration live here so the
// pkg/tspgen Driver API stays a pure library surface.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/adi-family/tsp-gen/internal/lexer"
	"github.com/adi-family/tsp-gen/internal/parser"
	"github.com/adi-family/tsp-gen/internal/resolve"
	"github.com/adi-family/tsp-gen/internal/route"
	"github.com/adi-family/tsp-gen/pkg/tspgen"
)

const (
	exitOK        = 0
	exitUsage     = 1
	exitLexParse  = 2
	exitResolve   = 3
	exitIO        = 4
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("tsp-gen", flag.ContinueOnError)
	var (
		lang    = fs.String("l", "", "target language: python | typescript | rust | openapi")
		outDir  = fs.String("o", "", "output directory")
		side    = fs.String("s", "both", "side: client | server | both")
		pkg     = fs.String("p", "api", "package/title")
		check   = fs.Bool("check", false, "fail instead of writing when output would change")
		verbose = fs.Bool("v", false, "verbose logging")
	)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	inputs := fs.Args()
	if len(inputs) == 0 || *lang == "" || *outDir == "" {
		fmt.Fprintln(os.Stderr, "usage: tsp-gen <inputs...> -l <lang> -o <out_dir> [-s <side>] [-p <package>]")
		return exitUsage
	}

	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err == nil {
			logger = l
		}
	}
	defer logger.Sync()

	var srcBuilder strings.Builder
	for i, input := range inputs {
		matches, err := filepath.Glob(input)
		if err != nil || len(matches) == 0 {
			matches = []string{input}
		}
		for _, m := range matches {
			data, err := os.ReadFile(m)
			if err != nil {
				fmt.Fprintf(os.Stderr, "io error: %v\n", err)
				return exitIO
			}
			srcBuilder.Write(data)
			srcBuilder.WriteByte('\n')
		}
		if i < len(inputs)-1 {
			srcBuilder.WriteByte('\n')
		}
	}

	file, err := tspgen.ParseFile(srcBuilder.String())
	if err != nil {
		var lexErr *lexer.Error
		var parseErr *parser.Error
		switch {
		case errors.As(err, &lexErr):
			fmt.Fprintf(os.Stderr, "lex error [%d:%d]: %s\n", lexErr.Span.Start, lexErr.Span.End, lexErr.Message)
		case errors.As(err, &parseErr):
			fmt.Fprintf(os.Stderr, "parse error [%d:%d]: expected %s, found %s\n", parseErr.Span.Start, parseErr.Span.End, parseErr.Expected, parseErr.Found)
		default:
			fmt.Fprintf(os.Stderr, "parse error: %v\n", err)
		}
		return exitLexParse
	}

	sideVal, ok := parseSide(*side)
	if !ok {
		fmt.Fprintf(os.Stderr, "usage error: invalid -s value %q\n", *side)
		return exitUsage
	}

	if !parseLanguage(*lang) {
		fmt.Fprintf(os.Stderr, "usage error: invalid -l value %q\n", *lang)
		return exitUsage
	}

	gen := tspgen.New(file, *outDir, *pkg).WithLogger(logger).WithCheck(*check)

	written, err := gen.Generate(tspgen.Language(*lang), sideVal)
	if err != nil {
		var resolveErr *resolve.Error
		var routeErr *route.Error
		var ioErr *tspgen.IoError
		switch {
		case errors.As(err, &resolveErr), errors.As(err, &routeErr):
			fmt.Fprintf(os.Stderr, "resolve error: %v\n", err)
			return exitResolve
		case errors.As(err, &ioErr):
			fmt.Fprintf(os.Stderr, "io error: %v\n", err)
			return exitIO
		default:
			fmt.Fprintf(os.Stderr, "generate error: %v\n", err)
			return exitResolve
		}
	}

	for _, f := range written {
		logger.Info("generated", zap.String("path", f))
	}
	return exitOK
}

func parseLanguage(l string) bool {
	switch tspgen.Language(l) {
	case tspgen.Python, tspgen.TypeScript, tspgen.Rust, tspgen.OpenAPI:
		return true
	default:
		return false
	}
}

func parseSide(s string) (tspgen.Side, bool) {
	switch s {
	case "client":
		return tspgen.SideClient, true
	case "server":
		return tspgen.SideServer, true
	case "both", "":
		return tspgen.SideBoth, true
	default:
		return 0, false
	}
}
