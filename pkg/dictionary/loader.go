// Package dictionary seeds a completion engine from plain-text corpora.
package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/log"
)

// ErrVocabularyFull is returned once adding a line would push the number of
// distinct tokens past the loader's limit.
var ErrVocabularyFull = errors.New("vocabulary limit reached")

const maxLineSize = 1024 * 1024

// Loader feeds corpus lines into a completer, one line per Add call so that
// token pairs never span lines.
type Loader struct {
	completer suggest.ICompleter
	tokenizer suggest.Tokenizer
	maxWords  int
	stats     LoaderStats
}

// LoaderStats provides statistics about the loading process
type LoaderStats struct {
	Files   int
	Lines   int
	Tokens  int
	Skipped int // lines without a single token
}

// NewLoader creates a loader. maxWords caps the distinct tokens in the
// completer; 0 means unlimited.
func NewLoader(completer suggest.ICompleter, tokenizer suggest.Tokenizer, maxWords int) *Loader {
	if tokenizer == nil {
		tokenizer = utils.DefaultTokenFilter()
	}
	return &Loader{
		completer: completer,
		tokenizer: tokenizer,
		maxWords:  maxWords,
	}
}

// LoadDir loads every .txt file in dirPath in name order. Unreadable files
// are logged and skipped; reaching the vocabulary limit stops loading.
func (l *Loader) LoadDir(dirPath string) error {
	files, err := utils.ListFiles(dirPath, ".txt")
	if err != nil {
		return fmt.Errorf("failed to scan for corpus files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no corpus files found in %s", dirPath)
	}

	log.Debugf("Found %d corpus files", len(files))
	var errs []error
	for _, file := range files {
		err := l.LoadFile(file)
		if errors.Is(err, ErrVocabularyFull) {
			log.Warnf("Vocabulary limit of %d words reached while loading %s", l.maxWords, file)
			return err
		}
		if err != nil {
			log.Errorf("Failed to load %s: %v", file, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LoadFile validates and loads a single corpus file.
func (l *Loader) LoadFile(filename string) error {
	if err := ValidateFileFormat(filename, FormatText); err != nil {
		return err
	}
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open corpus file %s: %w", filename, err)
	}
	defer file.Close()

	if err := l.Load(file); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	l.stats.Files++
	log.Debugf("Loaded %s: %d lines so far", filename, l.stats.Lines)
	return nil
}

// Load reads r line by line, tokenizing and adding each line.
func (l *Loader) Load(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		tokens := l.tokenizer.Tokenize(scanner.Text())
		l.stats.Lines++
		if len(tokens) == 0 {
			l.stats.Skipped++
			continue
		}
		if l.exceedsLimit(tokens) {
			return ErrVocabularyFull
		}
		l.completer.Add(tokens)
		l.stats.Tokens += len(tokens)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read corpus: %w", err)
	}
	return nil
}

// exceedsLimit reports whether tokens would bring in more new words than the
// limit leaves room for.
func (l *Loader) exceedsLimit(tokens []string) bool {
	if l.maxWords <= 0 {
		return false
	}
	return l.completer.Stats()["tokens"]+l.completer.CountFresh(tokens) > l.maxWords
}

// Stats returns current loading statistics
func (l *Loader) Stats() LoaderStats {
	return l.stats
}
