package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/doclane/doclane-cli/internal/core/domain"
	"github.com/doclane/doclane-cli/internal/core/ports/driven"
)

// Ensure stdinPrompter implements the interface.
var _ driven.Prompter = (*stdinPrompter)(nil)

// stdinPrompter collects project credentials and the scan mode from the
// command's input stream.
type stdinPrompter struct {
	cmd    *cobra.Command
	reader *bufio.Reader
}

func newStdinPrompter(cmd *cobra.Command) *stdinPrompter {
	return &stdinPrompter{cmd: cmd, reader: bufio.NewReader(cmd.InOrStdin())}
}

func (p *stdinPrompter) ProjectID() (string, error) {
	p.cmd.Print("Project ID: ")
	return p.readLine()
}

// SecretKey reads without echo when attached to a terminal.
func (p *stdinPrompter) SecretKey() (string, error) {
	p.cmd.Print("Secret key: ")

	if f, ok := p.cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		p.cmd.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(secret)), nil
	}
	return p.readLine()
}

func (p *stdinPrompter) ScanMode() (domain.ScanMode, error) {
	p.cmd.Println("Scan mode:")
	p.cmd.Println("  1. full        - all tracked .mdx files")
	p.cmd.Println("  2. incremental - only files changed since the last sync")
	p.cmd.Print("Select [1]: ")

	choice, err := p.readLine()
	if err != nil {
		return "", err
	}
	switch choice {
	case "", "1", "full":
		return domain.ScanFull, nil
	case "2", "incremental":
		return domain.ScanIncremental, nil
	}
	return "", fmt.Errorf("%w: unknown scan mode %q", domain.ErrInputRequired, choice)
}

func (p *stdinPrompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
