package data

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/julianstephens/habitual/internal/cli"
)

var (
	writeClipboard = clipboard.WriteAll
	readClipboard  = clipboard.ReadAll
)

var stdin io.Reader = os.Stdin

type ExportCmd struct {
	Output    string `short:"o" help:"Write the export to this file instead of stdout." type:"path"`
	Clipboard bool   `help:"Copy the export to the clipboard."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Open()
	if err != nil {
		return err
	}
	payload, err := t.MarshalExport()
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}

	switch {
	case c.Clipboard:
		if err := writeClipboard(string(payload)); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Printf("✓ Copied %d habits to the clipboard\n", len(t.List()))
	case c.Output != "":
		if err := os.WriteFile(c.Output, payload, 0600); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		fmt.Printf("✓ Exported %d habits to %s\n", len(t.List()), c.Output)
	default:
		fmt.Println(string(payload))
	}
	return nil
}

type ImportCmd struct {
	File      string `arg:"" optional:"" help:"Export file to import; '-' reads stdin." type:"path"`
	Clipboard bool   `help:"Read the export from the clipboard."`
}

func (c *ImportCmd) read() ([]byte, error) {
	switch {
	case c.Clipboard:
		text, err := readClipboard()
		if err != nil {
			return nil, fmt.Errorf("failed to read clipboard: %w", err)
		}
		return []byte(text), nil
	case c.File == "" || c.File == "-":
		return io.ReadAll(stdin)
	default:
		return os.ReadFile(c.File)
	}
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	payload, err := c.read()
	if err != nil {
		return err
	}

	t, err := ctx.Open()
	if err != nil {
		return err
	}
	if err := t.Import(payload); err != nil {
		return err
	}

	// Import replaces everything
	ctx.PerformAutomaticBackup()
	if err := ctx.Commit(t); err != nil {
		return err
	}

	fmt.Printf("✓ Imported %d habits\n", len(t.List()))
	return nil
}

type ExampleCmd struct {
	Add    ExampleAddCmd    `cmd:"" help:"Add sample habits with two weeks of history."`
	Remove ExampleRemoveCmd `cmd:"" help:"Remove the sample habits."`
}

type ExampleAddCmd struct{}

func (c *ExampleAddCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Open()
	if err != nil {
		return err
	}
	if t.HasExampleData() {
		fmt.Println("Sample habits are already present.")
		return nil
	}

	t.AddExampleData()
	if err := ctx.Commit(t); err != nil {
		return err
	}
	fmt.Println("✓ Added sample habits")
	return nil
}

type ExampleRemoveCmd struct{}

func (c *ExampleRemoveCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Open()
	if err != nil {
		return err
	}
	if !t.HasExampleData() {
		fmt.Println("No sample habits to remove.")
		return nil
	}

	t.RemoveExampleData()
	if err := ctx.Commit(t); err != nil {
		return err
	}
	fmt.Println("✓ Removed sample habits")
	return nil
}

type ClearCmd struct {
	Yes bool `short:"y" help:"Do not ask for confirmation."`
}

func (c *ClearCmd) Run(ctx *cli.Context) error {
	if !c.Yes && !confirm("⚠️  This deletes every habit and its history. Continue? [y/N]: ") {
		fmt.Println("Clear cancelled.")
		return nil
	}

	t, err := ctx.Open()
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()
	t.ClearAll()
	if err := ctx.Commit(t); err != nil {
		return err
	}
	fmt.Println("✓ All habits cleared")
	return nil
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	response, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
