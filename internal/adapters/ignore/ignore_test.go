package ignore

import "testing"

func TestGlobsIgnored(t *testing.T) {
	g := NewGlobs([]string{
		"**/.git/**",
		"**/*.log",
		"/tmp/**",
	})

	tests := []struct {
		file string
		want bool
	}{
		{"/home/u/src/.git/COMMIT_EDITMSG", true},
		{"/home/u/src/main.go", false},
		{"/var/log/app.log", true},
		{"/tmp/scratch.go", true},
		{"/home/u/notes.md", false},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			if got := g.Ignored(tt.file); got != tt.want {
				t.Errorf("Ignored(%q) = %v, want %v", tt.file, got, tt.want)
			}
		})
	}
}

func TestGlobsEmpty(t *testing.T) {
	g := NewGlobs(nil)
	if g.Ignored("/any/file.go") {
		t.Error("empty policy ignored a file")
	}
}

func TestGlobsInvalidPattern(t *testing.T) {
	g := NewGlobs([]string{"[unclosed", "**/*.env"})
	if !g.Ignored("/home/u/.secret.env") {
		t.Error("valid pattern after an invalid one did not match")
	}
	if g.Ignored("/home/u/main.go") {
		t.Error("invalid pattern matched")
	}
}
