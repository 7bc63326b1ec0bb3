// Command shape-record parses logical records of delimited text (CSV or
// TSV) from the command line.
//
// The underlying parser is record-oriented: it expects one fully
// reconstructed logical record per call. This tool feeds it one input line
// per record, which is correct only when no quoted field contains a
// literal newline; callers with embedded newlines must reconstruct records
// themselves before piping them in.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"unicode/utf8"

	"github.com/shapestone/shape-record/pkg/record"
	"github.com/spf13/cobra"
)

func main() {
	log.SetFlags(0)

	cmdRoot := &cobra.Command{
		Use:   "shape-record",
		Short: "delimited-text record parsing utility",
		Long:  `Parse single logical records of CSV or TSV text into field lists.`,
	}
	cmdRoot.AddCommand(cmdParse())
	cmdRoot.AddCommand(cmdDescribe())
	cmdRoot.AddCommand(cmdSniff())
	cmdRoot.AddCommand(cmdVersion())

	if err := cmdRoot.Execute(); err != nil {
		os.Exit(1)
	}
}

// dialectFlags carries the flag values shared by parse and describe.
type dialectFlags struct {
	tsv         bool
	separator   string
	quote       string
	noQuote     bool
	escape      string
	empty       string
	trim        bool
	singleQuote bool
}

func (f *dialectFlags) addFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.tsv, "tsv", f.tsv, "use the TSV preset (tab separator, no quoting)")
	cmd.Flags().StringVarP(&f.separator, "separator", "s", f.separator, "field separator character")
	cmd.Flags().StringVarP(&f.quote, "quote", "q", f.quote, "quote character")
	cmd.Flags().BoolVar(&f.noQuote, "no-quote", f.noQuote, "disable quoting entirely")
	cmd.Flags().StringVarP(&f.escape, "escape", "e", f.escape, "escape character (disabled when empty)")
	cmd.Flags().StringVar(&f.empty, "empty", f.empty, "substitute for absent fields")
	cmd.Flags().BoolVar(&f.trim, "trim", f.trim, "trim whitespace from field values")
	cmd.Flags().BoolVar(&f.singleQuote, "single-quote", f.singleQuote, "tolerate unescaped internal quotes")
}

// dialect builds a record.Dialect from the flag values, starting from the
// CSV or TSV preset and applying overrides.
func (f *dialectFlags) dialect() (*record.Dialect, error) {
	separator := ','
	quote := record.NewChar('"')
	if f.tsv {
		separator = '\t'
		quote = record.NoChar()
	}
	if f.separator != "" {
		r, err := singleRune("separator", f.separator)
		if err != nil {
			return nil, err
		}
		separator = r
	}
	if f.quote != "" {
		r, err := singleRune("quote", f.quote)
		if err != nil {
			return nil, err
		}
		quote = record.NewChar(r)
	}
	if f.noQuote {
		quote = record.NoChar()
	}
	escape := record.NoChar()
	if f.escape != "" {
		r, err := singleRune("escape", f.escape)
		if err != nil {
			return nil, err
		}
		escape = record.NewChar(r)
	}
	return record.NewDialect(separator, quote, escape, f.empty, f.trim, f.singleQuote), nil
}

// singleRune decodes a flag value that must be exactly one character.
func singleRune(name, value string) (rune, error) {
	r, size := utf8.DecodeRuneInString(value)
	if r == utf8.RuneError || size != len(value) {
		return 0, fmt.Errorf("--%s must be a single character, got %q", name, value)
	}
	return r, nil
}

func cmdParse() *cobra.Command {
	flags := &dialectFlags{}
	cmd := &cobra.Command{
		Use:          "parse [record...]",
		Short:        "parse records into JSON field lists",
		Long:         "Parse each argument as one logical record, or read one record per line from stdin.\nQuoted fields containing literal newlines cannot be read from stdin; pass them as arguments.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := flags.dialect()
			if err != nil {
				return err
			}
			if len(args) > 0 {
				for _, line := range args {
					if err := parseOne(d, line); err != nil {
						return err
					}
				}
				return nil
			}
			scanner := bufio.NewScanner(os.Stdin)
			scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
			for scanner.Scan() {
				if err := parseOne(d, scanner.Text()); err != nil {
					return err
				}
			}
			return scanner.Err()
		},
	}
	flags.addFlags(cmd)
	return cmd
}

// parseOne parses a single record and writes its field list as JSON.
func parseOne(d *record.Dialect, line string) error {
	fields, err := d.Parse(line)
	if err != nil {
		return err
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", data)
	return nil
}

func cmdDescribe() *cobra.Command {
	flags := &dialectFlags{}
	cmd := &cobra.Command{
		Use:          "describe",
		Short:        "print the configured dialect's settings",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := flags.dialect()
			if err != nil {
				return err
			}
			fmt.Println(d)
			return nil
		},
	}
	flags.addFlags(cmd)
	return cmd
}

func cmdSniff() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "sniff [sample]",
		Short:        "suggest a dialect for a sample of delimited text",
		Long:         "Detect the separator and quoting discipline of a sample, given as an argument or on stdin.",
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var sample string
			if len(args) == 1 {
				sample = args[0]
			} else {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return err
				}
				sample = string(data)
			}
			fmt.Println(record.NewSniffer(sample).Detect())
			return nil
		},
	}
	return cmd
}

func cmdVersion() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the version of this build",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("shape-record: version %q\n", record.Version().Core())
		},
	}
}
