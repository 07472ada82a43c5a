package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"math/rand/v2"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/poiesic/sift"
	"github.com/poiesic/sift/config"
)

var directories = []string{
	"src", "lib", "cmd", "internal", "pkg", "test", "tests", "docs", "vendor",
	"api", "core", "util", "server", "client", "storage", "search", "config",
	"build", "scripts", "assets", "include", "third_party", "tools", "examples",
}

var names = []string{
	"main", "match", "merge", "reader", "writer", "choices", "options", "tty",
	"tty_interface", "Makefile", "README", "LICENSE", "handler", "router",
	"backend", "frontend", "index", "query", "parser", "lexer", "scanner",
	"cache", "pool", "worker", "scheduler", "bonus", "score", "history",
}

var extensions = []string{
	".go", ".c", ".h", ".rs", ".py", ".md", ".txt", ".json", ".yaml", "_test.go", "",
}

var (
	count       = flag.Int("n", 100000, "number of candidates to generate")
	outFileName = flag.String("out", "", "output file (default stdout)")
	compress    = flag.Bool("zstd", false, "zstd-compress the output")
	seed        = flag.Uint64("seed", 1, "random seed")
	seedFile    = flag.String("src", "", "file of extra path components, one per line")
	benchQuery  = flag.String("bench", "", "after generating, time searches for each comma-separated query")
)

func init() {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

// linesFromFile returns an iterator over lines in a file.
func linesFromFile(filename string) (iter.Seq[string], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
	}, nil
}

// linesFromSlice returns an iterator over a slice of strings.
func linesFromSlice(lines []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, line := range lines {
			if !yield(line) {
				return
			}
		}
	}
}

// paths yields n path-like candidates built from dirs, files and exts.
func paths(rng *rand.Rand, n int, dirs, files, exts []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		var b strings.Builder
		for range n {
			b.Reset()
			depth := 1 + rng.IntN(4)
			for range depth {
				b.WriteString(dirs[rng.IntN(len(dirs))])
				b.WriteByte('/')
			}
			b.WriteString(files[rng.IntN(len(files))])
			b.WriteString(exts[rng.IntN(len(exts))])
			if !yield(b.String()) {
				return
			}
		}
	}
}

// writeLines writes each line from source to w followed by a newline.
func writeLines(w io.Writer, source iter.Seq[string]) (int, error) {
	out := bufio.NewWriter(w)
	written := 0
	for line := range source {
		if _, err := out.WriteString(line); err != nil {
			return written, err
		}
		if err := out.WriteByte('\n'); err != nil {
			return written, err
		}
		written++
	}
	return written, out.Flush()
}

// bench loads the generated corpus into a finder and times each query.
func bench(corpus []byte, queries []string) error {
	finder, err := sift.NewFinder(sift.WithConfig(config.DefaultConfig()))
	if err != nil {
		return err
	}
	defer finder.Close()

	finder.Append(corpus)
	for _, q := range queries {
		start := time.Now()
		results := finder.Search(q)
		slog.Info("search",
			"query", q,
			"matches", results.Available(),
			"candidates", results.Total(),
			"elapsed", time.Since(start))
	}
	return nil
}

func main() {
	flag.Parse()

	files := names
	if *seedFile != "" {
		source, err := linesFromFile(*seedFile)
		if err != nil {
			panic(err)
		}
		files = slices.AppendSeq(slices.Clone(names), source)
	}

	var out io.Writer = os.Stdout
	if *outFileName != "" {
		f, err := os.Create(*outFileName)
		if err != nil {
			panic(err)
		}
		defer f.Close()
		out = f
	}

	// Keep a copy of the corpus for benchmarking
	var corpus strings.Builder
	if *benchQuery != "" {
		out = io.MultiWriter(out, &corpus)
	}

	var enc *zstd.Encoder
	if *compress {
		var err error
		enc, err = zstd.NewWriter(out, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			panic(err)
		}
		out = enc
	}

	rng := rand.New(rand.NewPCG(*seed, 0))
	written, err := writeLines(out, paths(rng, *count, directories, files, extensions))
	if err != nil {
		panic(err)
	}
	if enc != nil {
		if err := enc.Close(); err != nil {
			panic(err)
		}
	}
	slog.Info("generated candidates", "count", written, "zstd", *compress)

	if *benchQuery != "" {
		data := []byte(corpus.String())
		if *compress {
			dec, err := zstd.NewReader(nil)
			if err != nil {
				panic(err)
			}
			data, err = dec.DecodeAll(data, nil)
			dec.Close()
			if err != nil {
				panic(err)
			}
		}
		if err := bench(data, strings.Split(*benchQuery, ",")); err != nil {
			panic(fmt.Errorf("benchmark: %w", err))
		}
	}
}
