// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The jsmini command minifies JavaScript files.
// With no arguments, it minifies standard input, or starts a
// read-minify-print loop (REPL) if standard input is a terminal.
package main // import "github.com/jsmini/jsmini/cmd/jsmini"

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strings"
	"sync"

	"github.com/xyproto/env/v2"
	"golang.org/x/term"

	"github.com/jsmini/jsmini/minify"
	"github.com/jsmini/jsmini/printer"
	"github.com/jsmini/jsmini/repl"
	"github.com/jsmini/jsmini/syntax"
)

// flags
var (
	cpuprofile  = flag.String("cpuprofile", "", "gather Go CPU profile in this file")
	memprofile  = flag.String("memprofile", "", "gather Go memory profile in this file")
	output      = flag.String("o", "", "write the output of a single input to `file`")
	outdir      = flag.String("outdir", "", "write the output of each input to `dir`")
	interactive = flag.Bool("i", true, "start a REPL when standard input is a terminal")
	stats       = flag.Bool("stats", false, "report the size reduction of each input")
	sourceMap   = flag.Bool("source-map", false, "write a source map next to each output file")
	jobs        = flag.Int("j", env.Int("JSMINI_JOBS", runtime.NumCPU()), "minify up to `n` files in parallel")

	doCompress   = flag.Bool("compress", true, "enable compression passes")
	dropConsole  = flag.Bool("drop-console", false, "remove console method calls")
	dropDebugger = flag.Bool("drop-debugger", false, "remove debugger statements")

	doMangle          = flag.Bool("mangle", env.Bool("JSMINI_MANGLE"), "rename local variables")
	reserved          = flag.String("reserved", env.Str("JSMINI_RESERVED"), "comma-separated `names` never mangled")
	keepClassNames    = flag.Bool("keep-class-names", false, "do not mangle class names")
	keepFunctionNames = flag.Bool("keep-function-names", false, "do not mangle function names")

	ecma   = flag.Int("ecma", env.Int("JSMINI_ECMA", syntax.DefaultEcmaVersion), "ECMAScript `version` accepted by the parser")
	module = flag.Bool("module", true, "parse input as module code (false: script)")
	quotes = flag.String("quotes", env.Str("JSMINI_QUOTES", "single"), "quote style of synthesized strings: single, double or auto")
)

func main() {
	os.Exit(doMain())
}

func doMain() int {
	log.SetPrefix("jsmini: ")
	log.SetFlags(0)
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		check(err)
		err = pprof.StartCPUProfile(f)
		check(err)
		defer func() {
			pprof.StopCPUProfile()
			err := f.Close()
			check(err)
		}()
	}
	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		check(err)
		defer func() {
			runtime.GC()
			err := pprof.Lookup("heap").WriteTo(f, 0)
			check(err)
			err = f.Close()
			check(err)
		}()
	}

	opts, err := options()
	if err != nil {
		log.Print(err)
		return 2
	}

	switch {
	case flag.NArg() == 0 && *interactive && term.IsTerminal(int(os.Stdin.Fd())):
		fmt.Println("Welcome to jsmini")
		repl.REPL(opts)
		return 0
	case flag.NArg() == 0:
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Print(err)
			return 1
		}
		opts.Filename = "<stdin>"
		res, err := minify.Minify(src, opts)
		if err != nil {
			log.Print(err)
			return 1
		}
		return report(&job{name: "<stdin>", src: src, res: res}, *output)
	case flag.NArg() > 1 && *output != "":
		log.Print("-o requires a single input; use -outdir")
		return 2
	}

	return run(flag.Args(), opts)
}

// options returns the minifier options selected by the flags.
func options() (minify.Options, error) {
	opts := minify.DefaultOptions()
	if *doCompress {
		opts.Compress.DropConsole = *dropConsole
		opts.Compress.DropDebugger = *dropDebugger
	} else {
		opts.Compress = nil
	}
	if *doMangle {
		opts.Mangle = &minify.MangleOptions{
			Enabled:           true,
			KeepClassNames:    *keepClassNames,
			KeepFunctionNames: *keepFunctionNames,
		}
		for _, name := range strings.Split(*reserved, ",") {
			if name = strings.TrimSpace(name); name != "" {
				opts.Mangle.ReservedNames = append(opts.Mangle.ReservedNames, name)
			}
		}
	}
	switch *quotes {
	case "single", "double", "auto":
		opts.Output = printer.Config{Quotes: *quotes}
	default:
		return opts, fmt.Errorf("invalid -quotes %q", *quotes)
	}
	opts.Ecma = *ecma
	if !*module {
		opts.SourceType = "script"
	}
	opts.SourceMap = *sourceMap
	return opts, nil
}

// A job is the minification of one input file.
type job struct {
	name string
	src  []byte
	res  *minify.Result
	err  error
}

// run minifies the named files, up to -j at a time, and writes
// the results in input order.
func run(files []string, opts minify.Options) int {
	n := *jobs
	if n < 1 {
		n = 1
	}
	cache := minify.NewCache()
	results := make([]*job, len(files))
	sema := make(chan struct{}, n)
	var wg sync.WaitGroup
	for i, name := range files {
		results[i] = &job{name: name}
		wg.Add(1)
		go func(j *job) {
			defer wg.Done()
			sema <- struct{}{}
			defer func() { <-sema }()

			j.src, j.err = os.ReadFile(j.name)
			if j.err != nil {
				return
			}
			fopts := opts
			fopts.Filename = filepath.Base(j.name)
			j.res, j.err = cache.Minify(j.src, fopts)
		}(results[i])
	}
	wg.Wait()

	status := 0
	for _, j := range results {
		if j.err != nil {
			log.Printf("%s: %v", j.name, j.err)
			status = 1
			continue
		}
		out := *output
		if *outdir != "" {
			out = filepath.Join(*outdir, filepath.Base(j.name))
		}
		if report(j, out) != 0 {
			status = 1
		}
	}
	return status
}

// report writes the result of j to the file out (standard output if
// empty), followed by its source map, warnings and statistics.
func report(j *job, out string) int {
	for _, w := range j.res.Warnings {
		log.Printf("%s:%s", j.name, w)
	}

	if out == "" {
		fmt.Println(j.res.Code)
	} else {
		if err := os.WriteFile(out, []byte(j.res.Code), 0666); err != nil {
			log.Print(err)
			return 1
		}
		if data, err := j.res.MapJSON(); err != nil {
			log.Print(err)
			return 1
		} else if data != nil {
			if err := os.WriteFile(out+".map", data, 0666); err != nil {
				log.Print(err)
				return 1
			}
		}
	}

	if *stats {
		s := sizeStats{Original: len(j.src), Minified: len(j.res.Code)}
		fmt.Fprintf(os.Stderr, "%s: %s\n", j.name, s)
	}
	return 0
}

func check(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
