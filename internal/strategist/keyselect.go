package strategist

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// TerminalKeySelector asks for a replacement API key on a terminal and
// stores it in the environment for the next attempt.
type TerminalKeySelector struct {
	In     io.Reader
	Out    io.Writer
	EnvVar string
}

// SelectKey prompts once; an empty answer leaves the current key in place.
func (s *TerminalKeySelector) SelectKey(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	envVar := s.EnvVar
	if envVar == "" {
		envVar = "GEMINI_API_KEY"
	}

	if _, err := fmt.Fprintf(s.Out, "The API key was rejected. Enter a different key for %s (blank to keep): ", envVar); err != nil {
		return err
	}
	line, err := bufio.NewReader(s.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read API key: %w", err)
	}
	key := strings.TrimSpace(line)
	if key == "" {
		return nil
	}
	if err := os.Setenv(envVar, key); err != nil {
		return fmt.Errorf("failed to store API key: %w", err)
	}
	return nil
}
