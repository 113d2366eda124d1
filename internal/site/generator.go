package site

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/ziadkadry99/bgwscripts/internal/config"
	"github.com/ziadkadry99/bgwscripts/internal/progress"
	"github.com/ziadkadry99/bgwscripts/internal/script"
)

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

// Page is everything the page template needs.
type Page struct {
	Title   string
	Intro   template.HTML
	Scripts []script.Script
}

// buttonData holds the per-script values passed to the template.
type buttonData struct {
	Name string
	JSON string
}

// pageData holds the data passed to the HTML template.
type pageData struct {
	Title   string
	Intro   template.HTML
	Scripts []buttonData
}

// Render writes the HTML document for p. Scripts must already be resolved.
func Render(w io.Writer, p Page) error {
	data := pageData{
		Title:   p.Title,
		Intro:   p.Intro,
		Scripts: make([]buttonData, len(p.Scripts)),
	}
	for i, s := range p.Scripts {
		data.Scripts[i] = buttonData{
			Name: s.Meta().Name,
			JSON: string(s.JSON()),
		}
	}
	return pageTmpl.Execute(w, data)
}

// Write creates the parent directory of path if needed and overwrites path with doc.
func Write(path string, doc []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// SiteGenerator builds the script page from character and script directories.
type SiteGenerator struct {
	CharactersDir  string
	ScriptsDir     string
	OutputPath     string
	Title          string
	IntroPath      string
	HomebrewPrefix string
	Ignore         []string

	// Reporter receives per-script progress during resolution. Optional.
	Reporter progress.Reporter

	// Logf receives one line per loaded file. Optional.
	Logf func(format string, args ...any)
}

// NewSiteGenerator creates a SiteGenerator from the loaded configuration.
func NewSiteGenerator(cfg *config.Config) *SiteGenerator {
	return &SiteGenerator{
		CharactersDir:  cfg.CharactersDir,
		ScriptsDir:     cfg.ScriptsDir,
		OutputPath:     cfg.OutputPath(),
		Title:          cfg.Title,
		IntroPath:      cfg.Intro,
		HomebrewPrefix: cfg.HomebrewPrefix,
		Ignore:         cfg.Ignore,
	}
}

// Generate loads, resolves, renders and writes the page. Returns the number
// of scripts on the page. On any error nothing is written.
func (g *SiteGenerator) Generate() (int, error) {
	loader := &script.Loader{Ignore: g.Ignore}
	if g.Logf != nil {
		loader.OnFile = func(path string) { g.Logf("loaded %s", path) }
	}

	chars, err := loader.LoadCharacters(g.CharactersDir)
	if err != nil {
		return 0, fmt.Errorf("loading characters: %w", err)
	}
	scripts, err := loader.LoadScripts(g.ScriptsDir)
	if err != nil {
		return 0, fmt.Errorf("loading scripts: %w", err)
	}

	resolver := script.NewResolver(script.NewCatalog(chars))
	if g.HomebrewPrefix != "" {
		resolver.Prefix = g.HomebrewPrefix
	}
	if g.Reporter != nil {
		g.Reporter.Start(len(scripts))
		resolver.OnScript = func(i int, s script.Script) {
			g.Reporter.Update(i+1, s.Meta().Name)
		}
	}
	resolved, err := resolver.Resolve(scripts)
	if g.Reporter != nil {
		g.Reporter.Finish()
	}
	if err != nil {
		return 0, err
	}
	for _, s := range resolved {
		if err := resolver.Check(s); err != nil {
			return 0, err
		}
	}

	intro, err := RenderIntro(g.IntroPath)
	if err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	if err := Render(&buf, Page{Title: g.Title, Intro: intro, Scripts: resolved}); err != nil {
		return 0, fmt.Errorf("rendering page: %w", err)
	}

	if err := Write(g.OutputPath, buf.Bytes()); err != nil {
		return 0, err
	}
	return len(resolved), nil
}
