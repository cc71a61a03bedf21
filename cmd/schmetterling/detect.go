package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/schmetterling/config"
	"github.com/lixenwraith/schmetterling/sequence"
)

func newDetectCommand(rootOpts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect [script]",
		Short: "Run the sequence detector over a scripted key stream",
		Long: `Read "<ms> <key>" lines from a file or stdin and feed them to the
sequence detector. Prints one line per key press with the special it
unlocked, or "-". Blank lines and lines starting with # are skipped.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open script: %w", err)
				}
				defer f.Close()
				in = f
			}
			return runDetect(rootOpts, in, cmd.OutOrStdout())
		},
	}
	return cmd
}

func runDetect(opts *rootOptions, in io.Reader, out io.Writer) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	detector, err := sequence.NewDetector(cfg.SpecialPatterns()...)
	if err != nil {
		return err
	}

	epoch := time.Unix(0, 0)
	w := bufio.NewWriter(out)
	defer w.Flush()

	scanner := bufio.NewScanner(in)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		ms, sym, err := parseScriptLine(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}

		tag := detector.Detect(sym, epoch.Add(time.Duration(ms)*time.Millisecond))
		label := string(tag)
		if tag == sequence.TagNone {
			label = "-"
		}
		fmt.Fprintf(w, "%05d %s %s\n", ms, sym, label)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return nil
}

// parseScriptLine parses "<ms> <key>"
func parseScriptLine(line string) (int64, sequence.Symbol, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, sequence.SymbolNone, fmt.Errorf("want \"<ms> <key>\", got %q", line)
	}

	ms, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil || ms < 0 {
		return 0, sequence.SymbolNone, fmt.Errorf("invalid time %q", fields[0])
	}

	r, size := utf8.DecodeRuneInString(fields[1])
	sym, ok := sequence.ParseSymbol(r)
	if !ok || size != len(fields[1]) {
		return 0, sequence.SymbolNone, fmt.Errorf("invalid key %q", fields[1])
	}
	return ms, sym, nil
}
