package repotree

import (
	"path"
	"strings"

	"codeexplainer/config"
)

// Filter hides build output, VCS metadata and binary assets from listings.
// A nil *Filter keeps everything.
type Filter struct {
	ignoreDirs       map[string]bool
	ignoreExtensions map[string]bool
	ignorePrefixes   []string
}

// NewFilter builds a Filter from the explorer section of the configuration.
func NewFilter(cfg config.ExplorerConfig) *Filter {
	f := &Filter{
		ignoreDirs:       make(map[string]bool, len(cfg.IgnoreDirs)),
		ignoreExtensions: make(map[string]bool, len(cfg.IgnoreExtensions)),
		ignorePrefixes:   cfg.IgnorePrefixes,
	}
	for _, dir := range cfg.IgnoreDirs {
		f.ignoreDirs[dir] = true
	}
	for _, ext := range cfg.IgnoreExtensions {
		f.ignoreExtensions[strings.ToLower(ext)] = true
	}
	return f
}

// FilterFromConfig returns the filter for the loaded AppConfig, or nil when no
// configuration has been loaded.
func FilterFromConfig() *Filter {
	if config.AppConfig == nil {
		return nil
	}
	return NewFilter(config.AppConfig.Explorer)
}

// Skip reports whether the entry at p, or any directory above it, is ignored.
// Directory names only match directories, so a file called build is kept.
func (f *Filter) Skip(p string, dir bool) bool {
	if f == nil {
		return false
	}
	segments := strings.Split(strings.Trim(p, "/"), "/")
	for i, seg := range segments {
		isDir := dir || i < len(segments)-1
		if isDir && f.ignoreDirs[seg] {
			return true
		}
		if f.hasIgnoredPrefix(seg) {
			return true
		}
		if !isDir && f.ignoreExtensions[strings.ToLower(path.Ext(seg))] {
			return true
		}
	}
	return false
}

// Apply returns the entries that are not skipped.
func (f *Filter) Apply(entries []Entry) []Entry {
	if f == nil {
		return entries
	}
	kept := entries[:0:0]
	for _, entry := range entries {
		if !f.Skip(entry.Path, entry.Dir) {
			kept = append(kept, entry)
		}
	}
	return kept
}

func (f *Filter) hasIgnoredPrefix(name string) bool {
	for _, prefix := range f.ignorePrefixes {
		if prefix != "" && strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
