package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/projflow/projflow/internal/settings"
)

// linePrompter is the minimal settings oracle: one question per line,
// empty answer accepts the default. It deliberately stays free of any
// terminal rendering beyond plain text.
type linePrompter struct {
	in     io.Reader
	out    io.Writer
	reader *bufio.Reader
}

func (p *linePrompter) Ask(s settings.Setting, def settings.Value, counter, size int) (any, error) {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.in)
	}

	prompt := s.Prompt
	if prompt == "" {
		prompt = fmt.Sprintf("%q", s.JSONKey)
	}
	fmt.Fprintf(p.out, "[%d/%d] %s%s: ", counter, size, prompt, describeDefault(def))

	line, err := p.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading answer: %w", err)
	}
	answer := strings.TrimSpace(line)
	if answer == "" {
		return def.Collapse(), nil
	}

	switch def.Kind() {
	case settings.KindBool:
		switch strings.ToLower(answer) {
		case "1", "on", "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	case settings.KindList:
		for _, choice := range def.Choices() {
			if choice == answer {
				return answer, nil
			}
		}
		return def.Collapse(), nil
	default:
		return answer, nil
	}
}

func describeDefault(def settings.Value) string {
	switch def.Kind() {
	case settings.KindBool:
		if def.Flag() {
			return " [yes / no]"
		}
		return " [no / yes]"
	case settings.KindList:
		choices := def.Choices()
		if len(choices) == 0 {
			return ""
		}
		return " [" + strings.Join(choices, " / ") + "]"
	default:
		if def.Str() != "" {
			return " [" + def.Str() + "]"
		}
		return ""
	}
}
