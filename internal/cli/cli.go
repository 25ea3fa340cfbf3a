// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/retroenv/rvexpand/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	var startAddress string
	readOptionFlags(flags, &opts, &startAddress)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	address, err := parseStartAddress(startAddress)
	if err != nil {
		return opts, err
	}
	opts.StartAddress = address
	opts.Input = args[0]

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Println(e.msg)
	}
	fmt.Printf("usage: rvexpand [options] <file to expand>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after file to expand, please pass the file to expand as last argument", arg),
			}
		}
	}
	return nil
}

// parseStartAddress parses and validates the text segment start address
func parseStartAddress(value string) (uint32, error) {
	address, err := strconv.ParseUint(value, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("parsing start address %s: %w", value, err)
	}
	if address%4 != 0 {
		return 0, fmt.Errorf("start address %s is not word aligned", value)
	}
	return uint32(address), nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program, startAddress *string) {
	flags.StringVar(&opts.Output, "o", "", "name of the output .asm file, printed on console if no name given")
	flags.StringVar(startAddress, "pc", "0x00400000", "start address of the text segment")
	flags.BoolVar(&opts.Compact, "compact", false, "use compact translations that assume data addresses fit a 12 bit immediate")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
