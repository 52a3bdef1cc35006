package validation

import (
	"testing"
)

func TestValidateArgument(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		wantErr bool
	}{
		{name: "valid flag", arg: "--style=expanded", wantErr: false},
		{name: "valid relative load path", arg: "--load-path=.sassdoc-tmp", wantErr: false},
		{name: "command injection semicolon", arg: "--stdin; rm -rf /", wantErr: true},
		{name: "command injection pipe", arg: "--stdin | cat /etc/passwd", wantErr: true},
		{name: "command injection backtick", arg: "--stdin`whoami`", wantErr: true},
		{name: "path traversal", arg: "--load-path=../../etc", wantErr: true},
		{name: "absolute path not allowed", arg: "/home/user/file", wantErr: true},
		{name: "allowed system binary path", arg: "/usr/local/bin/sass", wantErr: false},
		{name: "dangerous shell characters", arg: "file$(whoami).txt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArgument(tt.arg)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateArgument(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCommand(t *testing.T) {
	allowed := map[string]bool{"sass": true}

	tests := []struct {
		name    string
		command string
		wantErr bool
	}{
		{name: "bare name", command: "sass", wantErr: false},
		{name: "system path", command: "/usr/bin/sass", wantErr: false},
		{name: "not allowed", command: "node", wantErr: true},
		{name: "empty", command: "", wantErr: true},
		{name: "home path", command: "/home/me/sass", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCommand(tt.command, allowed)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCommand(%q) error = %v, wantErr %v", tt.command, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePackageName(t *testing.T) {
	for _, name := range []string{"button", "app-bar", "tree-view"} {
		if err := ValidatePackageName(name); err != nil {
			t.Errorf("ValidatePackageName(%q) unexpected error: %v", name, err)
		}
	}
	for _, name := range []string{"", ".", "..", "a/b", `a\b`, "x;y"} {
		if err := ValidatePackageName(name); err == nil {
			t.Errorf("ValidatePackageName(%q) expected error", name)
		}
	}
}
