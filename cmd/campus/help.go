package main

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/campus/internal/ui"
)

var (
	// Section headers such as "Dashboards:" or "Flags:".
	reGroupHeader = regexp.MustCompile(`(?m)^([A-Z][^\n]*:)\s*$`)

	// Command names: two-space indent, a word, then the description.
	reCommand = regexp.MustCompile(`(?m)^(  )(\S+)(  )`)

	// Flag types, e.g. "--page int".
	reFlagType = regexp.MustCompile(`(--?\S+\s+)(string|int|duration|stringArray)`)

	reDefault = regexp.MustCompile(`\(default "?[^)"]*"?\)`)
)

// colorizedHelpFunc styles cobra's usage text when stdout is a colour terminal.
func colorizedHelpFunc() func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if !ui.ShouldUseColor(os.Stdout) {
			_ = cmd.Usage()
			return
		}
		var buf bytes.Buffer
		cmd.SetOut(&buf)
		_ = cmd.Usage()
		cmd.SetOut(out)
		fmt.Fprint(out, colorizeHelp(buf.String()))
	}
}

func colorizeHelp(s string) string {
	s = reGroupHeader.ReplaceAllStringFunc(s, func(m string) string {
		return ui.RenderAccent(strings.TrimSpace(m))
	})
	s = reCommand.ReplaceAllStringFunc(s, func(m string) string {
		if p := reCommand.FindStringSubmatch(m); len(p) == 4 {
			return p[1] + ui.RenderCommand(p[2]) + p[3]
		}
		return m
	})
	s = reFlagType.ReplaceAllStringFunc(s, func(m string) string {
		if p := reFlagType.FindStringSubmatch(m); len(p) == 3 {
			return p[1] + ui.RenderMuted(p[2])
		}
		return m
	})
	return reDefault.ReplaceAllStringFunc(s, ui.RenderMuted)
}
