package terminal

import "strings"

// ShellEscape single-quotes s for use in a POSIX shell command line,
// escaping embedded single quotes with the standard '"'"' idiom: close
// the quote, emit an escaped quote, reopen the quote.
func ShellEscape(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

// AppleScriptEscape escapes a string for embedding in an AppleScript
// string literal: backslash, double quote, newline, and carriage
// return all need escaping or the generated script fails to parse.
func AppleScriptEscape(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\r", `\r`,
	)
	return r.Replace(s)
}

// EscapeRegex escapes regexp metacharacters in s so it can be embedded
// literally in a pattern. No backend in this package calls it.
func EscapeRegex(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`\.+*?()|[]{}^$`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// BuildCDCommand composes a single shell command that changes into dir
// and then runs command. Only dir is shell-escaped; command is appended
// as-is, so its own words and flags stay separate.
func BuildCDCommand(dir, command string) string {
	return "cd " + ShellEscape(dir) + " && " + command
}
