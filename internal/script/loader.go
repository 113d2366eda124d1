package script

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/gjson"
)

// Loader reads JSON data files from a directory.
type Loader struct {
	// Ignore holds glob patterns matched against entry names. Matching
	// entries are skipped. Everything else is treated as a data file.
	Ignore []string

	// OnFile, if set, is called after each file is parsed.
	OnFile func(path string)
}

// LoadDir parses every entry of dir as JSON, in directory listing order.
// It does not recurse; a subdirectory fails with the read error.
func (l *Loader) LoadDir(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var files []File
	for _, entry := range entries {
		if l.ignored(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		if !json.Valid(data) {
			// Unmarshal again for a positioned syntax error.
			var v any
			err := json.Unmarshal(data, &v)
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		files = append(files, File{Path: path, Raw: data})
		if l.OnFile != nil {
			l.OnFile(path)
		}
	}
	return files, nil
}

// LoadCharacters loads every character file in dir and flattens them one
// level: an array contributes its elements, any other value itself.
func (l *Loader) LoadCharacters(dir string) ([]Character, error) {
	files, err := l.LoadDir(dir)
	if err != nil {
		return nil, err
	}

	var chars []Character
	for _, f := range files {
		v := gjson.ParseBytes(f.Raw)
		if !v.IsArray() {
			chars = append(chars, newCharacter(f.Raw))
			continue
		}
		v.ForEach(func(_, item gjson.Result) bool {
			chars = append(chars, newCharacter(json.RawMessage(item.Raw)))
			return true
		})
	}
	return chars, nil
}

// LoadScripts loads one script per file in dir.
func (l *Loader) LoadScripts(dir string) ([]Script, error) {
	files, err := l.LoadDir(dir)
	if err != nil {
		return nil, err
	}

	scripts := make([]Script, 0, len(files))
	for _, f := range files {
		var items []json.RawMessage
		if err := json.Unmarshal(f.Raw, &items); err != nil {
			return nil, fmt.Errorf("parsing script %s: expected a JSON array: %w", f.Path, err)
		}
		if len(items) == 0 {
			return nil, fmt.Errorf("parsing script %s: missing metadata record", f.Path)
		}
		s := Script{Source: f.Path, Elements: make([]Element, len(items))}
		for i, item := range items {
			s.Elements[i] = Element{Raw: item}
		}
		scripts = append(scripts, s)
	}
	return scripts, nil
}

func (l *Loader) ignored(name string) bool {
	for _, pattern := range l.Ignore {
		if matched, err := doublestar.Match(pattern, name); err == nil && matched {
			return true
		}
	}
	return false
}

// File is one parsed data file.
type File struct {
	Path string
	Raw  json.RawMessage
}
