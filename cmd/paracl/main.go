// Command paracl interprets a single ParaCL source file, following the `run`-then-`main` split of
// the teacher's cmd entry point: run() drives the pipeline and returns an error, main() is left
// only to parse arguments, dispatch to run(), and translate the result into an exit code.
package main

import (
	"fmt"
	"os"

	"paracl/src/dot"
	"paracl/src/eval"
	"paracl/src/frontend"
	"paracl/src/ir"
	"paracl/src/llvmgen"
	"paracl/src/util"
)

// debugDumpEnv, when set to a non-empty value, makes run() write the lexer's token stream, the
// parsed AST's DOT dump, and the evaluator's final symbol table dump next to the source file. This
// is the debug-only side channel described in SPEC_FULL.md: its file names and format are not part
// of the public contract.
const debugDumpEnv = "PARACL_DEBUG_DUMP"

// run reads, parses and either interprets or lowers the program named by opt.Src.
func run(opt util.Options, streams *util.Streams) error {
	src, err := util.ReadSource(opt)
	if err != nil {
		return err
	}

	debug := os.Getenv(debugDumpEnv) != ""
	if debug {
		if err := dumpTokens(opt, src); err != nil {
			fmt.Fprintf(os.Stderr, "warning: token dump failed: %s\n", err)
		}
	}

	arena, err := frontend.Parse(src)
	if err != nil {
		return reportAndWrap(opt, src, err)
	}

	if debug {
		if err := dumpAST(opt, arena); err != nil {
			fmt.Fprintf(os.Stderr, "warning: AST dump failed: %s\n", err)
		}
	}

	if opt.EmitLLVM {
		ctx, mod, err := llvmgen.Generate(arena, opt.Src)
		if err != nil {
			return err
		}
		defer ctx.Dispose()
		defer mod.Dispose()
		out := opt.Src + ".ll"
		if err := os.WriteFile(out, []byte(mod.String()), 0644); err != nil {
			return &util.IOError{Cause: err}
		}
		return nil
	}

	e := eval.New(arena, streams)
	runErr := e.Run()
	if debug {
		if err := dumpSymbols(opt, e); err != nil {
			fmt.Fprintf(os.Stderr, "warning: symbol table dump failed: %s\n", err)
		}
	}
	if runErr != nil {
		return reportAndWrap(opt, src, runErr)
	}
	return nil
}

// reportAndWrap renders err through the diagnostic reporter when it carries a source location
// (spec §4.6), then returns it unchanged so main can still decide the process exit code.
func reportAndWrap(opt util.Options, src string, err error) error {
	var located ir.LocatedError
	if le, ok := err.(ir.LocatedError); ok {
		located = le
		diag := util.NewDiagnostic(opt.Src, src)
		diag.Report(os.Stderr, located.Location(), located.Error())
		return err
	}
	fmt.Fprintf(os.Stderr, "%s: %s\n", opt.Src, err)
	return err
}

// dumpTokens writes the lexer's token stream to a sibling file. It lexes src independently of the
// parser, so it is still useful when the program does not parse at all.
func dumpTokens(opt util.Options, src string) error {
	f, err := os.Create(opt.Src + ".tokens")
	if err != nil {
		return err
	}
	defer f.Close()
	toks, tErr := frontend.TokenStream(src)
	if _, err := f.WriteString(toks); err != nil {
		return err
	}
	return tErr
}

// dumpAST writes the parsed AST's DOT representation to a sibling file, grounded on the original's
// AST_dump output.
func dumpAST(opt util.Options, arena *ir.Arena) error {
	f, err := os.Create(opt.Src + ".ast.dot")
	if err != nil {
		return err
	}
	defer f.Close()
	return dot.Dump(f, arena)
}

// dumpSymbols writes the evaluator's final top-level symbol table listing to a sibling file,
// grounded on the original's ST_dump output.
func dumpSymbols(opt util.Options, e *eval.Evaluator) error {
	f, err := os.Create(opt.Src + ".st_dump")
	if err != nil {
		return err
	}
	defer f.Close()
	e.Symbols().Dump(f)
	return nil
}

func main() {
	opt, err := util.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "paracl: %s\n", err)
		os.Exit(1)
	}

	streams := util.NewStreams()
	if err := run(opt, streams); err != nil {
		os.Exit(1)
	}
}
