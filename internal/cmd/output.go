package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"library-catalog/library"
)

var statusOKColor = color.New(color.FgGreen)        //nolint:gochecknoglobals
var statusRejectedColor = color.New(color.FgYellow) //nolint:gochecknoglobals
var errorColor = color.New(color.FgRed)             //nolint:gochecknoglobals
var headerColor = color.New(color.Bold)             //nolint:gochecknoglobals

func printStatus(w io.Writer, s library.Status) {
	if s.OK() {
		_, _ = statusOKColor.Fprintln(w, s)
		return
	}
	_, _ = statusRejectedColor.Fprintln(w, s)
}

func printError(w io.Writer, format string, args ...any) {
	_, _ = errorColor.Fprintf(w, format+"\n", args...)
}

func printHeader(w io.Writer, format string, args ...any) {
	_, _ = headerColor.Fprintf(w, format+"\n", args...)
}

func printLine(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}
