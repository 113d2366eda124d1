package config

import "path/filepath"

// DefaultFile is the config file looked up when --config is not given.
const DefaultFile = ".bgwscripts.yml"

// DefaultConfig returns a Config matching the fixed layout of the scripts repo:
// characters/ and scripts/ in, dist/index.html out.
func DefaultConfig() *Config {
	return &Config{
		CharactersDir:  "characters",
		ScriptsDir:     "scripts",
		OutputDir:      "dist",
		OutputFile:     "index.html",
		HomebrewPrefix: "bgw-",
		Title:          "BGW Scripts",
	}
}

// OutputPath joins the output directory and file name.
func (c *Config) OutputPath() string {
	return filepath.Join(c.OutputDir, c.OutputFile)
}
