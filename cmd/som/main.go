// Command som is a thin wrapper around the lexer and parser packages:
// it turns a source file into tokens or into a formatted AST, and
// nothing else. All real logic lives in pkg/lexer and pkg/parser; this
// file only wires os.Open to a package call and prints the result.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/kristofer/som/pkg/astfmt"
	"github.com/kristofer/som/pkg/lexer"
	"github.com/kristofer/som/pkg/parser"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Printf("som: %v", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "som",
		Short:         "som tokenizes and parses SOM class definitions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newTokenizeCommand())
	root.AddCommand(newParseCommand())
	return root
}

func newTokenizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokenize <file>",
		Short: "print the token stream of a SOM source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokenize(cmd.OutOrStdout(), args[0])
		},
	}
}

func newParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "parse a SOM class definition and print its AST",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd.OutOrStdout(), args[0])
		},
	}
}

func runTokenize(out io.Writer, path string) error {
	file, err := os.Open(path)
	if err != nil {
		log.Printf("som: %v", err)
		return err
	}
	defer file.Close()

	l := lexer.New(file)
	for {
		item, err := l.ReadToken()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			log.Printf("som: %v", err)
			return err
		}
		fmt.Fprintf(out, "%s %-18s %q\n", item.Location, item.Token.Symbol, item.Token.Text)
	}
}

func runParse(out io.Writer, path string) error {
	file, err := os.Open(path)
	if err != nil {
		log.Printf("som: %v", err)
		return err
	}
	defer file.Close()

	p := parser.New(file, path)
	class, err := p.ParseClass()
	if err != nil {
		log.Printf("som: %v", err)
		return err
	}

	fmt.Fprint(out, astfmt.Format(class))
	return nil
}
