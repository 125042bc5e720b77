package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/loxvm/lox/lang/scanner"
	"github.com/loxvm/lox/lang/token"
)

// Tokenize is the `lox tokenize <path>...` debug subcommand: it scans each
// file independently and prints its tokens, one per line, without ever
// invoking the compiler.
func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	for _, path := range args {
		if err := tokenizeFile(stdio, path); err != nil {
			return err
		}
	}
	return nil
}

func tokenizeFile(stdio mainer.Stdio, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("tokenize: %w", err)
	}

	s := scanner.New(src)
	for {
		tok := s.Scan()
		fmt.Fprintf(stdio.Stdout, "%4d %-16s %q\n", tok.Line, tok.Kind, tok.Lexeme)
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}
