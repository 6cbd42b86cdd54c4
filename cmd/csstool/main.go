// Command csstool is a thin host around the css package: parse,
// tokens, and check subcommands over a file or stdin.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/lukehoban/csscore/css"
	"github.com/lukehoban/csscore/internal/clog"
)

func main() {
	app := &cli.Command{
		Name:            "csstool",
		Usage:           "inspect CSS Syntax Level 3 / Selectors Level 4 parse results",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "trace recoverable diagnostics as they are raised"},
		},
		Commands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "parse a stylesheet and print a summary of the tree and diagnostics",
				ArgsUsage: "[FILE]",
				Action:    runParse,
			},
			{
				Name:      "tokens",
				Usage:     "dump the token stream",
				ArgsUsage: "[FILE]",
				Action:    runTokens,
			},
			{
				Name:      "check",
				Usage:     "exit non-zero if parsing the input raised any diagnostics",
				ArgsUsage: "[FILE]",
				Action:    runCheck,
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "csstool: %v\n", err)
		os.Exit(1)
	}
}

func loggerFor(cmd *cli.Command) *clog.Logger {
	if !cmd.Bool("debug") {
		return clog.New(nil)
	}
	z, err := zap.NewDevelopment()
	if err != nil {
		return clog.New(nil)
	}
	return clog.New(z)
}

func readInput(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() > 0 {
		data, err := os.ReadFile(cmd.Args().Get(0))
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", cmd.Args().Get(0), err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

func runParse(_ context.Context, cmd *cli.Command) error {
	source, err := readInput(cmd)
	if err != nil {
		return err
	}

	p := css.NewParser(loggerFor(cmd))
	sheet, err := p.ParseCssStylesheet(source)
	if err != nil {
		fmt.Printf("parsed with %d diagnostic(s):\n", len(sheet.Errors))
		for _, d := range sheet.Errors {
			fmt.Printf("  [%s] %s (at %d..%d)\n", d.Stage, d.Message, d.Loc.Start, d.Loc.End)
		}
	}

	fmt.Printf("%d top-level rule(s)\n", len(sheet.Rules))
	for _, r := range sheet.Rules {
		describeRule(r, 1)
	}
	return nil
}

func describeRule(r css.Rule, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	switch v := r.(type) {
	case *css.AtRule:
		fmt.Printf("%s@%s (%d prelude value(s), block=%v)\n", indent, v.Name, len(v.Prelude), v.Block != nil)
	case *css.StyleRule:
		fmt.Printf("%sstyle rule: %d selector(s), %d declaration(s), %d nested rule(s)\n",
			indent, len(v.Selectors), len(v.Declarations), len(v.NestedRules))
		for _, nested := range v.NestedRules {
			describeRule(nested, depth+1)
		}
	case *css.QualifiedRule:
		fmt.Printf("%sunpromoted qualified rule (%d prelude value(s))\n", indent, len(v.Prelude))
	}
}

func runTokens(_ context.Context, cmd *cli.Command) error {
	source, err := readInput(cmd)
	if err != nil {
		return err
	}

	tz := css.Tokenize(source)
	for {
		tok := tz.Next()
		fmt.Printf("%s\n", tok.String())
		if tok.Kind == css.KindEOF {
			break
		}
	}
	for _, d := range tz.Diagnostics() {
		fmt.Fprintf(os.Stderr, "[%s] %s (at %d..%d)\n", d.Stage, d.Message, d.Loc.Start, d.Loc.End)
	}
	return nil
}

func runCheck(_ context.Context, cmd *cli.Command) error {
	source, err := readInput(cmd)
	if err != nil {
		return err
	}

	p := css.NewParser(loggerFor(cmd))
	sheet, parseErr := p.ParseCssStylesheet(source)
	if parseErr != nil {
		for _, d := range sheet.Errors {
			fmt.Fprintf(os.Stderr, "[%s] %s (at %d..%d)\n", d.Stage, d.Message, d.Loc.Start, d.Loc.End)
		}
		return cli.Exit("diagnostics were raised", 1)
	}
	return nil
}
