package config

import (
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Let's configure the script page build.")
	fmt.Println()

	def := DefaultConfig()
	cfg := *def

	prompts := []struct {
		label string
		dest  *string
	}{
		{"Characters directory", &cfg.CharactersDir},
		{"Scripts directory", &cfg.ScriptsDir},
		{"Output directory", &cfg.OutputDir},
		{"Output file name", &cfg.OutputFile},
		{"Homebrew character prefix", &cfg.HomebrewPrefix},
		{"Page title", &cfg.Title},
	}
	for _, p := range prompts {
		prompt := promptui.Prompt{
			Label:    p.label,
			Default:  *p.dest,
			Validate: notBlank,
		}
		v, err := prompt.Run()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.label, err)
		}
		*p.dest = v
	}

	introPrompt := promptui.Prompt{
		Label:   "Intro markdown file (leave blank for none)",
		Default: "",
	}
	intro, err := introPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("intro file: %w", err)
	}
	cfg.Intro = intro

	ignorePrompt := promptui.Prompt{
		Label:   "Ignore patterns (comma-separated globs, leave blank for none)",
		Default: "",
	}
	ignoreStr, err := ignorePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("ignore patterns: %w", err)
	}
	cfg.Ignore = splitAndTrim(ignoreStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	for _, dir := range []string{cfg.CharactersDir, cfg.ScriptsDir} {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			fmt.Printf("\nNote: %s does not exist yet; create it before running a build.\n", dir)
		}
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return &cfg, nil
}

func notBlank(s string) error {
	if trimSpace(s) == "" {
		return fmt.Errorf("value is required")
	}
	return nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			token := trimSpace(s[start:i])
			if token != "" {
				result = append(result, token)
			}
			start = i + 1
		}
	}
	return result
}

func trimSpace(s string) string {
	i, j := 0, len(s)
	for i < j && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	for j > i && (s[j-1] == ' ' || s[j-1] == '\t') {
		j--
	}
	return s[i:j]
}
