package link

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/markusressel/bed2go/internal/command"
	"github.com/stretchr/testify/assert"
)

func TestStreamSourceDeliversLines(t *testing.T) {
	// GIVEN
	input := strings.NewReader("ON 5\r\n\n  STATUS  \nOFF ALL")
	output := &bytes.Buffer{}
	source := NewStreamSource("test", command.Host, input, output)
	lines := make(chan Line, 10)

	// WHEN
	err := source.Run(context.Background(), lines)
	close(lines)

	// THEN
	assert.NoError(t, err)
	var texts []string
	for line := range lines {
		assert.Equal(t, command.Host, line.Origin)
		texts = append(texts, line.Text)
	}
	assert.Equal(t, []string{"ON 5", "STATUS", "OFF ALL"}, texts)
}

func TestStreamSourceReply(t *testing.T) {
	// GIVEN
	output := &bytes.Buffer{}
	source := NewStreamSource("test", command.Operator, strings.NewReader("HELP\n"), output)
	lines := make(chan Line, 1)
	_ = source.Run(context.Background(), lines)
	line := <-lines

	// WHEN
	err := line.Reply("first\nsecond\n")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "first\r\nsecond\r\n", output.String())
}

func TestStreamSourceStopsOnCancel(t *testing.T) {
	// GIVEN
	source := NewStreamSource("test", command.Operator, strings.NewReader("ON 1\nON 2\n"), &bytes.Buffer{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	lines := make(chan Line)

	// WHEN
	err := source.Run(ctx, lines)

	// THEN
	assert.NoError(t, err)
}
