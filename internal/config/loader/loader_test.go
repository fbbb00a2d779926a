package loader

import (
	"errors"
	"io/fs"
	"testing"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

type sample struct {
	Log struct {
		Level string `toml:"level" yaml:"level"`
	} `toml:"log" yaml:"log"`
	Editor struct {
		TabWidth int  `toml:"tab_width" yaml:"tab_width"`
		Wrap     bool `toml:"wrap" yaml:"wrap"`
	} `toml:"editor" yaml:"editor"`
	Tags []string `toml:"tags" yaml:"tags"`
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"a.toml", FormatTOML, false},
		{"dir/A.TOML", FormatTOML, false},
		{"a.yaml", FormatYAML, false},
		{"a.yml", FormatYAML, false},
		{"a.json", 0, true},
		{"noext", 0, true},
	}
	for _, tt := range tests {
		got, err := DetectFormat(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("DetectFormat(%q) error = %v", tt.path, err)
			continue
		}
		if err != nil && !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("DetectFormat(%q) error = %v, want ErrUnknownFormat", tt.path, err)
		}
		if err == nil && got != tt.want {
			t.Errorf("DetectFormat(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestLoadFile(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/c.toml", "[editor]\ntab_width = 8\n")
	memfs.AddFile("/c.yaml", "editor:\n  wrap: true\ntags: [ref, nowiki]\n")

	var s sample
	s.Log.Level = "warn"
	s.Editor.TabWidth = 4

	found, err := LoadFile(memfs, "/c.toml", &s)
	if err != nil || !found {
		t.Fatalf("LoadFile toml = %v, %v", found, err)
	}
	if s.Editor.TabWidth != 8 || s.Log.Level != "warn" {
		t.Errorf("after toml: %+v", s)
	}

	found, err = LoadFile(memfs, "/c.yaml", &s)
	if err != nil || !found {
		t.Fatalf("LoadFile yaml = %v, %v", found, err)
	}
	if !s.Editor.Wrap || s.Editor.TabWidth != 8 || len(s.Tags) != 2 || s.Tags[1] != "nowiki" {
		t.Errorf("after yaml: %+v", s)
	}

	found, err = LoadFile(memfs, "/missing.toml", &s)
	if found || err != nil {
		t.Errorf("missing file = %v, %v", found, err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		format   Format
		data     string
		wantLine int
	}{
		{"toml syntax", FormatTOML, "[editor]\ntab_width = = 3\n", 2},
		{"toml type", FormatTOML, "[editor]\ntab_width = \"wide\"\n", 0},
		{"yaml syntax", FormatYAML, "editor:\n\ttab_width: 3\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s sample
			err := Decode("cfg", []byte(tt.data), tt.format, &s)
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error = %v, want *ParseError", err)
			}
			if pe.Path != "cfg" || pe.Err == nil {
				t.Errorf("ParseError = %+v", pe)
			}
			if tt.wantLine > 0 && pe.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d (%v)", pe.Line, tt.wantLine, err)
			}
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	tests := []struct {
		err  *ParseError
		want string
	}{
		{&ParseError{Path: "a", Line: 2, Column: 5, Message: "bad"}, "parse error in a at line 2, column 5: bad"},
		{&ParseError{Path: "a", Line: 2, Message: "bad"}, "parse error in a at line 2: bad"},
		{&ParseError{Path: "a", Message: "bad"}, "parse error in a: bad"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestEnvLoader(t *testing.T) {
	env := []string{
		"WIKISTORM_LOG_LEVEL=debug",
		"WIKISTORM_EDITOR__TAB_WIDTH=2",
		"WIKISTORM_EDITOR__WRAP=yes",
		"WIKISTORM_TAGS=ref, nowiki",
		"WIKISTORM_IGNORED=1",
		"OTHER_LOG_LEVEL=error",
	}
	l := NewEnvLoader(DefaultEnvPrefix).WithEnviron(func() []string { return env })
	l.AddMapping("WIKISTORM_TAGS", "tags")

	m := l.Load()
	if _, ok := m["ignored"]; ok {
		t.Errorf("unmapped single-segment variable was loaded: %v", m)
	}

	var s sample
	if err := l.Apply(&s); err != nil {
		t.Fatalf("Apply error = %v", err)
	}
	if s.Log.Level != "debug" || s.Editor.TabWidth != 2 || !s.Editor.Wrap {
		t.Errorf("after env: %+v", s)
	}
	if len(s.Tags) != 2 || s.Tags[0] != "ref" || s.Tags[1] != "nowiki" {
		t.Errorf("Tags = %v", s.Tags)
	}
}

func TestEnvLoaderBadValue(t *testing.T) {
	l := NewEnvLoader(DefaultEnvPrefix).WithEnviron(func() []string {
		return []string{"WIKISTORM_TAB_WIDTH=wide"}
	})
	var s struct {
		Editor struct {
			TabWidth int `toml:"tab_width"`
		} `toml:"editor"`
	}
	var pe *ParseError
	if err := l.Apply(&s); !errors.As(err, &pe) || pe.Path != "environment" {
		t.Errorf("Apply error = %v, want environment ParseError", err)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"true", true},
		{"FALSE", false},
		{"off", "off"},
		{"42", int64(42)},
		{"1.5", 1.5},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in); got != tt.want {
			t.Errorf("parseValue(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}

	list, ok := parseValue(`["http://", "ftp://"]`).([]any)
	if !ok || len(list) != 2 || list[1] != "ftp://" {
		t.Errorf("json list = %#v", list)
	}
	list, ok = parseValue("a,b,").([]any)
	if !ok || len(list) != 2 {
		t.Errorf("comma list = %#v", list)
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{"a": map[string]any{"x": 1, "y": 2}, "b": 1}
	src := map[string]any{"a": map[string]any{"y": 3}, "c": 4}
	got := DeepMerge(dst, src)

	a := got["a"].(map[string]any)
	if a["x"] != 1 || a["y"] != 3 || got["b"] != 1 || got["c"] != 4 {
		t.Errorf("DeepMerge = %v", got)
	}
}
