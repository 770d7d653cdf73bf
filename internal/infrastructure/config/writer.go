package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

var tableHeader = regexp.MustCompile(`^\s*\[([^\]]+)\]\s*$`)

// WriteConfigOrdered encodes cfg as TOML with tables in alphabetical order and
// swaps it into path through a temporary sibling, so the watcher only ever
// sees complete files.
func WriteConfigOrdered(cfg *Config, path string) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(sortTOMLSections(buf.String())), filePerm); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}

// tomlBlock is a table header with the lines up to the next header.
type tomlBlock struct {
	name  string
	lines []string
}

func (b tomlBlock) text() string {
	return strings.TrimRight(strings.Join(b.lines, "\n"), "\n ")
}

// sortTOMLSections reorders tables by name, sub-tables included, and leaves
// top-level keys in front. Blocks are separated by one blank line.
func sortTOMLSections(content string) string {
	// blocks[0] holds the top-level keys.
	blocks := []tomlBlock{{}}
	for _, line := range strings.Split(content, "\n") {
		if m := tableHeader.FindStringSubmatch(line); m != nil {
			blocks = append(blocks, tomlBlock{name: m[1]})
		}
		last := &blocks[len(blocks)-1]
		last.lines = append(last.lines, line)
	}

	slices.SortStableFunc(blocks[1:], func(a, b tomlBlock) int {
		return strings.Compare(a.name, b.name)
	})

	var parts []string
	for _, b := range blocks {
		if t := b.text(); t != "" {
			parts = append(parts, t)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\n\n") + "\n"
}
