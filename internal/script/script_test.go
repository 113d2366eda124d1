package script

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func decode(t *testing.T, data []byte) any {
	t.Helper()
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("unmarshal %s: %v", data, err)
	}
	return v
}

func mustScript(t *testing.T, raw string) Script {
	t.Helper()
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		t.Fatal(err)
	}
	s := Script{Source: "test.json"}
	for _, item := range items {
		s.Elements = append(s.Elements, Element{Raw: item})
	}
	return s
}

func TestClassify(t *testing.T) {
	tests := []struct {
		raw  string
		want Kind
	}{
		{`{"id":"_meta","name":"X","author":"A"}`, KindMeta},
		{`{"id":"bgw-imp2","name":"Imp Variant"}`, KindCharacter},
		{`{"name":"no id"}`, KindCharacter},
		{`"bgw-imp2"`, KindReference},
		{`"washerwoman"`, KindBuiltin},
		{`"BGW-imp2"`, KindBuiltin},
		{`42`, KindCharacter},
	}
	for _, tt := range tests {
		got := Element{Raw: json.RawMessage(tt.raw)}.Classify(DefaultHomebrewPrefix)
		if got != tt.want {
			t.Errorf("Classify(%s) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestLoadCharactersFlattens(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.json": `[{"id":"bgw-a","name":"A"},{"id":"bgw-b","name":"B"}]`,
		"b.json": `{"id":"bgw-c","name":"C"}`,
	})

	var seen []string
	l := &Loader{OnFile: func(path string) { seen = append(seen, filepath.Base(path)) }}
	chars, err := l.LoadCharacters(dir)
	if err != nil {
		t.Fatalf("LoadCharacters: %v", err)
	}
	if len(chars) != 3 {
		t.Fatalf("got %d characters, want 3", len(chars))
	}
	ids := []string{chars[0].ID, chars[1].ID, chars[2].ID}
	if !reflect.DeepEqual(ids, []string{"bgw-a", "bgw-b", "bgw-c"}) {
		t.Errorf("ids = %v", ids)
	}
	if !reflect.DeepEqual(seen, []string{"a.json", "b.json"}) {
		t.Errorf("OnFile saw %v", seen)
	}
}

func TestLoadDirNoExtensionFilter(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.json":    `{"id":"x"}`,
		"notes.txt": `{"id":"y"}`,
	})
	files, err := (&Loader{}).LoadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Errorf("got %d files, want 2", len(files))
	}
}

func TestLoadDirIgnore(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.json":    `{"id":"x"}`,
		".DS_Store": `not json`,
	})
	l := &Loader{Ignore: []string{".DS_Store"}}
	files, err := l.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("got %d files, want 1", len(files))
	}
}

func TestLoadDirMalformedJSON(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"good.json": `[]`,
		"bad.json":  `[{"id":`,
	})
	_, err := (&Loader{}).LoadDir(dir)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "bad.json") {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestLoadDirMissing(t *testing.T) {
	_, err := (&Loader{}).LoadDir(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestLoadDirSubdirectoryFails(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := (&Loader{}).LoadDir(dir); err == nil {
		t.Error("expected error reading a subdirectory as a data file")
	}
}

func TestLoadScripts(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"one.json": `[{"id":"_meta","name":"One","author":"A"},"washerwoman"]`,
		"two.json": `[{"id":"_meta","name":"Two","author":"B"}]`,
	})
	scripts, err := (&Loader{}).LoadScripts(dir)
	if err != nil {
		t.Fatalf("LoadScripts: %v", err)
	}
	if len(scripts) != 2 {
		t.Fatalf("got %d scripts, want 2", len(scripts))
	}
	if m := scripts[0].Meta(); m.Name != "One" || m.Author != "A" {
		t.Errorf("meta = %+v", m)
	}
	if len(scripts[0].Elements) != 2 {
		t.Errorf("elements = %d, want 2", len(scripts[0].Elements))
	}
}

func TestLoadScriptsRejectsNonArray(t *testing.T) {
	for name, content := range map[string]string{
		"object": `{"id":"_meta"}`,
		"empty":  `[]`,
	} {
		dir := writeFiles(t, map[string]string{"s.json": content})
		if _, err := (&Loader{}).LoadScripts(dir); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestResolveWithoutReferencesIsUnchanged(t *testing.T) {
	raw := `[{"id":"_meta","name":"Plain","author":"A"},"washerwoman",{"id":"inline","name":"Inline"}]`
	s := mustScript(t, raw)

	out, err := NewResolver(NewCatalog(nil)).Resolve([]Script{s})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !reflect.DeepEqual(decode(t, out[0].JSON()), decode(t, []byte(raw))) {
		t.Errorf("resolved = %s, want %s", out[0].JSON(), raw)
	}
}

func TestResolveSubstitutesReference(t *testing.T) {
	chars := []Character{
		newCharacter(json.RawMessage(`{"id":"bgw-imp2","name":"Imp Variant"}`)),
	}
	s := mustScript(t, `[{"id":"_meta","name":"Test Script","author":"A"},"bgw-imp2","washerwoman"]`)

	out, err := NewResolver(NewCatalog(chars)).Resolve([]Script{s})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := `[{"id":"_meta","name":"Test Script","author":"A"},{"id":"bgw-imp2","name":"Imp Variant"},"washerwoman"]`
	if !reflect.DeepEqual(decode(t, out[0].JSON()), decode(t, []byte(want))) {
		t.Errorf("resolved = %s, want %s", out[0].JSON(), want)
	}
	if got := s.Elements[1].Classify(DefaultHomebrewPrefix); got != KindReference {
		t.Errorf("input script was mutated: element 1 is %v", got)
	}
}

func TestResolveFirstMatchWins(t *testing.T) {
	chars := []Character{
		newCharacter(json.RawMessage(`{"id":"bgw-x","name":"First"}`)),
		newCharacter(json.RawMessage(`{"id":"bgw-x","name":"Second"}`)),
	}
	s := mustScript(t, `[{"id":"_meta","name":"S","author":"A"},"bgw-x"]`)

	out, err := NewResolver(NewCatalog(chars)).Resolve([]Script{s})
	if err != nil {
		t.Fatal(err)
	}
	if got := string(out[0].Elements[1].Raw); !strings.Contains(got, "First") {
		t.Errorf("element = %s, want first record", got)
	}
}

func TestResolveIsCaseSensitive(t *testing.T) {
	chars := []Character{newCharacter(json.RawMessage(`{"id":"bgw-Imp"}`))}
	s := mustScript(t, `[{"id":"_meta","name":"S","author":"A"},"bgw-imp"]`)

	_, err := NewResolver(NewCatalog(chars)).Resolve([]Script{s})
	if err == nil {
		t.Fatal("expected unresolved error")
	}
}

func TestResolveMissingReference(t *testing.T) {
	scripts := []Script{
		mustScript(t, `[{"id":"_meta","name":"S1","author":"A"},"bgw-missing","bgw-gone"]`),
		mustScript(t, `[{"id":"_meta","name":"S2","author":"A"},"bgw-missing"]`),
	}

	out, err := NewResolver(NewCatalog(nil)).Resolve(scripts)
	if out != nil {
		t.Error("expected no scripts on failure")
	}
	var unresolved *UnresolvedError
	if !errors.As(err, &unresolved) {
		t.Fatalf("expected *UnresolvedError, got %v", err)
	}
	if !reflect.DeepEqual(unresolved.IDs, []string{"bgw-missing", "bgw-gone"}) {
		t.Errorf("IDs = %v", unresolved.IDs)
	}
}

func TestUnresolvedErrorMessage(t *testing.T) {
	err := &UnresolvedError{IDs: []string{"bgw-missing"}}
	if got := err.Error(); got != "unable to find homebrew character with ID bgw-missing" {
		t.Errorf("Error() = %q", got)
	}
}

func TestResolveCustomPrefix(t *testing.T) {
	chars := []Character{newCharacter(json.RawMessage(`{"id":"hb:spy","name":"Spy"}`))}
	s := mustScript(t, `[{"id":"_meta","name":"S","author":"A"},"hb:spy","bgw-untouched"]`)

	r := &Resolver{Catalog: NewCatalog(chars), Prefix: "hb:"}
	out, err := r.Resolve([]Script{s})
	if err != nil {
		t.Fatal(err)
	}
	if got := out[0].Elements[1].Classify("hb:"); got != KindCharacter {
		t.Errorf("element 1 kind = %v, want character", got)
	}
	if got := out[0].Elements[2].String(); got != "bgw-untouched" {
		t.Errorf("element 2 = %q", got)
	}
	if err := r.Check(out[0]); err != nil {
		t.Errorf("Check: %v", err)
	}
}

func TestCheckFlagsReference(t *testing.T) {
	s := mustScript(t, `[{"id":"_meta","name":"S","author":"A"},"bgw-left"]`)
	if err := NewResolver(NewCatalog(nil)).Check(s); err == nil {
		t.Error("expected Check to flag the reference")
	}
}

func TestScriptJSONCompact(t *testing.T) {
	s := mustScript(t, "[ {\"id\": \"_meta\", \"name\": \"S\", \"author\": \"A\"},\n  \"washerwoman\" ]")
	want := `[{"id":"_meta","name":"S","author":"A"},"washerwoman"]`
	if got := string(s.JSON()); got != want {
		t.Errorf("JSON() = %s, want %s", got, want)
	}
}
