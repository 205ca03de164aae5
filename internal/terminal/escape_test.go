package terminal

import "testing"

func TestShellEscape(t *testing.T) {
	cases := map[string]string{
		"simple":      `'simple'`,
		"it's a test": `'it'"'"'s a test'`,
	}
	for in, want := range cases {
		if got := ShellEscape(in); got != want {
			t.Errorf("ShellEscape(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAppleScriptEscape(t *testing.T) {
	in := "say \"hi\"\nnew line\\end"
	got := AppleScriptEscape(in)
	want := `say \"hi\"\nnew line\\end`
	if got != want {
		t.Errorf("AppleScriptEscape = %q, want %q", got, want)
	}
}

func TestBuildCDCommand(t *testing.T) {
	got := BuildCDCommand("/tmp/my dir", "claude --flag")
	want := `cd '/tmp/my dir' && claude --flag`
	if got != want {
		t.Errorf("BuildCDCommand = %q, want %q", got, want)
	}
}
