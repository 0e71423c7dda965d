package logger

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

const (
	FormatJSON    = "json"
	FormatConsole = "console"
	FormatPretty  = "pretty"
)

func isConsole(format string) bool {
	switch strings.ToLower(format) {
	case FormatConsole, FormatPretty:
		return true
	}
	return false
}

// levelStyle is the short tag and ANSI color of each level.
var levelStyle = map[string]struct{ tag, color string }{
	"debug": {"DBG", "36"},
	"info":  {"INF", "32"},
	"warn":  {"WRN", "33"},
	"error": {"ERR", "31"},
	"fatal": {"FTL", "35"},
}

func paint(s, color string, noColor bool) string {
	if noColor || color == "" {
		return s
	}
	return "\033[" + color + "m" + s + "\033[0m"
}

// consoleWriter renders "[SVC][LVL] message key:value", where SVC is the
// first three letters of the service name.
func consoleWriter(out io.Writer, service string, noColor bool) zerolog.ConsoleWriter {
	prefix := ""
	if len(service) >= 3 {
		prefix = paint("["+strings.ToUpper(service[:3])+"]", "34", noColor)
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "15:04:05",
		NoColor:    noColor,
		FormatLevel: func(i any) string {
			name := fmt.Sprint(i)
			style, ok := levelStyle[name]
			if !ok {
				style.tag = strings.ToUpper(name)
			}
			return prefix + paint("["+style.tag+"]", style.color, noColor)
		},
		FormatFieldName: func(i any) string { return fmt.Sprint(i) + ":" },
	}
}
