package collector

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadUniverse reads a newline-delimited ticker file, upper-casing and
// de-duplicating while preserving first-seen order. An unreadable or empty
// universe is fatal to the run: there is nothing to scan.
func LoadUniverse(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ticker file: %w", err)
	}
	defer f.Close()

	seen := make(map[string]bool)
	var symbols []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		sym := strings.ToUpper(strings.TrimSpace(sc.Text()))
		if sym == "" || strings.HasPrefix(sym, "#") || seen[sym] {
			continue
		}
		seen[sym] = true
		symbols = append(symbols, sym)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read ticker file: %w", err)
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("ticker file %s contains no symbols", path)
	}
	return symbols, nil
}
