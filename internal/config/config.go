// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML accepts "3s"-style strings.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the server configuration. Values resolve defaults → YAML file
// → environment, later sources winning.
type Config struct {
	Listen string `yaml:"listen"`

	HTTP struct {
		Timeout Duration `yaml:"timeout"`
	} `yaml:"http"`

	Blast struct {
		BaseURL      string   `yaml:"base_url"`
		APIKey       string   `yaml:"api_key"`
		PollInterval Duration `yaml:"poll_interval"`
		MaxPolls     int      `yaml:"max_polls"`
	} `yaml:"blast"`

	MSA struct {
		Mafft string `yaml:"mafft"`
	} `yaml:"msa"`
}

// Default returns the stock configuration.
func Default() Config {
	var c Config
	c.Listen = ":8000"
	c.HTTP.Timeout = Duration(120 * time.Second)
	c.Blast.BaseURL = "https://blast.ncbi.nlm.nih.gov/blast/Blast.cgi"
	c.Blast.PollInterval = Duration(3 * time.Second)
	c.Blast.MaxPolls = 30
	c.MSA.Mafft = "mafft"
	return c
}

// Load reads the optional YAML file at path ("" skips it), then applies
// environment overrides: MOLIGO_LISTEN, NCBI_API_KEY, MOLIGO_MAFFT.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
	}
	if v := os.Getenv("MOLIGO_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("NCBI_API_KEY"); v != "" {
		cfg.Blast.APIKey = v
	}
	if v := os.Getenv("MOLIGO_MAFFT"); v != "" {
		cfg.MSA.Mafft = v
	}
	return cfg, nil
}
