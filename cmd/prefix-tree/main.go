// Command prefix-tree seeds a trie with a few fixed words and prints the ones
// starting with the prefix given as its first argument.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/kumarlokesh/prefix-tree/internal/config"
	"github.com/kumarlokesh/prefix-tree/internal/logging"
	"github.com/kumarlokesh/prefix-tree/internal/trie"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit status
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprint(stdout, "\r\nmust supply prefix to search for\n")
		return 1
	}
	prefix := args[0]

	logger, err := logging.New(config.LoadLog(), stderr)
	if err != nil {
		logger, _ = logging.New(config.DefaultLogConfig(), stderr)
		logger.Warn().Err(err).Msg("Invalid log configuration, using defaults")
	}

	t := trie.New()
	defer t.Destroy()

	for _, w := range config.DefaultSeedWords {
		if !t.Insert(w) {
			fmt.Fprintf(stderr, "Failed to insert word '%s'\n", w)
			return 1
		}
	}
	logger.Debug().Int("words", t.Len()).Int("max_depth", t.MaxDepth()).Msg("Seeded trie")

	matches := t.KeysWithPrefix(prefix)
	for _, w := range matches {
		fmt.Fprintln(stdout, w)
	}
	logger.Debug().Str("prefix", prefix).Int("matches", len(matches)).Msg("Lookup finished")

	return 0
}
