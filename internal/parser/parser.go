package parser

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/conorfennell/myeng/internal/domain"
)

const (
	textPrefix  = "Q:"
	ansPrefix   = "A:"
	themePrefix = "T:"
	separator   = "---"
)

type state int

const (
	seeking state = iota
	readingText
	readingAns
	readingTheme
)

// ParseFile reads a question bank from the given path. Questions without
// a T: line take the file name (without extension) as their theme.
func ParseFile(path string) ([]domain.Question, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	theme := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(file, theme)
}

// Parse reads questions from r. Each entry starts with a "Q:" line holding
// the phrase, followed by an "A:" translation and an optional "T:" theme.
// Blocks may span several lines; "---" or the next "Q:" ends an entry.
// A "T:" line placed before its "Q:" still belongs to that entry.
// Entries without both a phrase and a translation are dropped.
func Parse(r io.Reader, defaultTheme string) ([]domain.Question, error) {
	scanner := bufio.NewScanner(r)
	var questions []domain.Question
	var current domain.Question
	var block []string
	currentState := seeking

	flushBlock := func() {
		if len(block) == 0 {
			return
		}
		content := strings.TrimSpace(strings.Join(block, "\n"))
		switch currentState {
		case readingText:
			current.Text = content
		case readingAns:
			current.Ans = content
		case readingTheme:
			current.Theme = content
		}
		block = nil
	}

	finishQuestion := func() {
		flushBlock()
		if current.Text != "" && current.Ans != "" {
			if current.Theme == "" {
				current.Theme = defaultTheme
			}
			questions = append(questions, current)
		}
		current = domain.Question{}
		currentState = seeking
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		if line == separator {
			finishQuestion()
			continue
		}

		prefix, next := lineState(line)
		if next == seeking {
			if currentState != seeking {
				block = append(block, line)
			}
			continue
		}

		flushBlock()
		if next == readingText && current.Text != "" {
			// A new phrase always starts a new question.
			finishQuestion()
		}
		currentState = next
		block = append(block, strings.TrimPrefix(line[len(prefix):], " "))
	}

	finishQuestion()

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return questions, nil
}

func lineState(line string) (string, state) {
	switch {
	case strings.HasPrefix(line, textPrefix):
		return textPrefix, readingText
	case strings.HasPrefix(line, ansPrefix):
		return ansPrefix, readingAns
	case strings.HasPrefix(line, themePrefix):
		return themePrefix, readingTheme
	}
	return "", seeking
}
