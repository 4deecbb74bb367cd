// Package link carries command lines from the operator console and the host
// controller to the engine and the responses back.
package link

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/markusressel/bed2go/internal/command"
)

// Line is a single command line received from a source
type Line struct {
	Text   string
	Origin command.Origin
	// Reply sends a response back to the source of the line
	Reply func(response string) error
}

// Source delivers command lines until its context is done or its input ends
type Source interface {
	Name() string
	Run(ctx context.Context, lines chan<- Line) error
}

// StreamSource reads newline terminated commands from a reader and writes
// the responses to a writer
type StreamSource struct {
	name   string
	origin command.Origin
	reader io.Reader

	mu     sync.Mutex
	writer io.Writer
}

func NewStreamSource(name string, origin command.Origin, reader io.Reader, writer io.Writer) *StreamSource {
	return &StreamSource{
		name:   name,
		origin: origin,
		reader: reader,
		writer: writer,
	}
}

func (s *StreamSource) Name() string {
	return s.name
}

// Run scans lines until the reader is exhausted or the context is done.
// Empty lines are skipped.
func (s *StreamSource) Run(ctx context.Context, lines chan<- Line) error {
	scanner := bufio.NewScanner(s.reader)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if len(text) <= 0 {
			continue
		}
		select {
		case lines <- Line{Text: text, Origin: s.origin, Reply: s.Write}:
		case <-ctx.Done():
			return nil
		}
	}
	if ctx.Err() != nil {
		return nil
	}
	return scanner.Err()
}

// Write sends text to the writer of the source, each line terminated by "\r\n"
func (s *StreamSource) Write(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	text = strings.ReplaceAll(strings.TrimRight(text, "\n"), "\n", "\r\n")
	_, err := fmt.Fprint(s.writer, text+"\r\n")
	return err
}
