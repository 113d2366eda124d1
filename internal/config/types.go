package config

// Config is the top-level bgwscripts configuration, corresponding to .bgwscripts.yml.
type Config struct {
	CharactersDir  string   `yaml:"characters_dir" koanf:"characters_dir"`
	ScriptsDir     string   `yaml:"scripts_dir" koanf:"scripts_dir"`
	OutputDir      string   `yaml:"output_dir" koanf:"output_dir"`
	OutputFile     string   `yaml:"output_file" koanf:"output_file"`
	HomebrewPrefix string   `yaml:"homebrew_prefix" koanf:"homebrew_prefix"`
	Title          string   `yaml:"title" koanf:"title"`
	Intro          string   `yaml:"intro" koanf:"intro"`
	Ignore         []string `yaml:"ignore" koanf:"ignore"`
}
