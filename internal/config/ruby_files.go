package config

import (
	"bytes"
	"path/filepath"
	"strings"
)

// RubyExtensions are the extensions RuboCop inspects by default.
var RubyExtensions = map[string]bool{
	".rb": true, ".arb": true, ".axlsx": true, ".builder": true, ".fcgi": true,
	".gemfile": true, ".gemspec": true, ".god": true, ".jb": true, ".jbuilder": true,
	".mspec": true, ".opal": true, ".pluginspec": true, ".podspec": true, ".rabl": true,
	".rake": true, ".rbuild": true, ".rbw": true, ".rbx": true, ".ru": true,
	".ruby": true, ".schema": true, ".spec": true, ".thor": true, ".watchr": true,
}

// RubyFileNames are extensionless (or oddly named) Ruby files.
var RubyFileNames = map[string]bool{
	".irbrc": true, ".pryrc": true, ".simplecov": true, "buildfile": true,
	"Appraisals": true, "Berksfile": true, "Brewfile": true, "Buildfile": true,
	"Capfile": true, "Cheffile": true, "Dangerfile": true, "Deliverfile": true,
	"Fastfile": true, "Gemfile": true, "Guardfile": true, "Jarfile": true,
	"Mavenfile": true, "Podfile": true, "Puppetfile": true, "Rakefile": true,
	"rakefile": true, "Schemafile": true, "Snapfile": true, "Steepfile": true,
	"Thorfile": true, "Vagabondfile": true, "Vagrantfile": true,
}

// IsRubyName decides by name alone.
func IsRubyName(p string) bool {
	base := filepath.Base(p)
	if RubyExtensions[strings.ToLower(filepath.Ext(base))] {
		return true
	}
	if RubyFileNames[base] {
		return true
	}
	return strings.HasSuffix(base, "Fastfile")
}

// HasRubyShebang reports whether head starts with a #! line naming ruby.
func HasRubyShebang(head []byte) bool {
	if !bytes.HasPrefix(head, []byte("#!")) {
		return false
	}
	line := head
	if i := bytes.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	return bytes.Contains(line, []byte("ruby"))
}
