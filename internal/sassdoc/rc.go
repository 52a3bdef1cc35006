package sassdoc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// RCFileName is the SassDoc configuration file looked up in the parsed directory.
const RCFileName = ".sassdocrc"

// RC holds the subset of SassDoc options understood by the parser.
type RC struct {
	PrivatePrefix string            `yaml:"privatePrefix"`
	Autofill      *bool             `yaml:"autofill"`
	Exclude       []string          `yaml:"exclude"`
	Groups        map[string]string `yaml:"groups"`

	privateRe *regexp.Regexp
}

// DefaultRC returns the options used when no .sassdocrc exists.
func DefaultRC() *RC {
	rc := &RC{PrivatePrefix: "^_"}
	rc.privateRe = regexp.MustCompile(rc.PrivatePrefix)
	return rc
}

// LoadRC reads dir/.sassdocrc if present.
func LoadRC(dir string) (*RC, error) {
	data, err := os.ReadFile(filepath.Join(dir, RCFileName))
	if errors.Is(err, os.ErrNotExist) {
		return DefaultRC(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", RCFileName, err)
	}
	return ParseRC(data)
}

// ParseRC decodes a YAML (or JSON, which is valid YAML) .sassdocrc document.
func ParseRC(data []byte) (*RC, error) {
	rc := DefaultRC()
	if err := yaml.Unmarshal(data, rc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", RCFileName, err)
	}
	if rc.PrivatePrefix == "" {
		rc.privateRe = nil
		return rc, nil
	}
	re, err := regexp.Compile(rc.PrivatePrefix)
	if err != nil {
		return nil, fmt.Errorf("invalid privatePrefix %q: %w", rc.PrivatePrefix, err)
	}
	rc.privateRe = re
	return rc, nil
}

// AutofillEnabled reports whether requirements are discovered from bodies.
func (rc *RC) AutofillEnabled() bool {
	return rc.Autofill == nil || *rc.Autofill
}

// IsPrivateName reports whether name matches the private prefix.
func (rc *RC) IsPrivateName(name string) bool {
	return rc.privateRe != nil && rc.privateRe.MatchString(name)
}

// Excluded reports whether the slash-separated relative path matches an
// exclude pattern. Patterns are matched against the full path and the base name.
func (rc *RC) Excluded(rel string) bool {
	for _, pattern := range rc.Exclude {
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, filepath.Base(rel)); ok {
			return true
		}
	}
	return false
}
