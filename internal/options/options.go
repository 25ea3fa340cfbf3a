// Package options contains the program options.
package options

// Program options of the expander.
type Program struct {
	Input  string
	Output string

	StartAddress uint32 // address of the first statement in the text segment
	Compact      bool   // use compact translations for a reduced address space
	Debug        bool
	Quiet        bool
}
