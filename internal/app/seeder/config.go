package seeder

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds seeder pipeline settings.
type Config struct {
	// GeneFiles lists YAML or JSON gene files, imported in order.
	GeneFiles []string `yaml:"gene_files" env:"SEEDER_GENE_FILES" env-separator:","`
	DryRun    bool     `yaml:"dry_run"    env:"SEEDER_DRY_RUN"`
}

// LoadConfig reads seeder configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return nil, fmt.Errorf("seeder config: read %s: %w", path, err)
			}
			return &cfg, nil
		}
		return nil, fmt.Errorf("seeder config: file %s not found", path)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("seeder config: read env: %w", err)
	}

	return &cfg, nil
}

// GeneSeed is one gene declared in a gene file.
type GeneSeed struct {
	Name     string   `yaml:"name"     json:"name"`
	Category string   `yaml:"category" json:"category"`
	Aliases  []string `yaml:"aliases"  json:"aliases"`
}

type geneFile struct {
	Genes []GeneSeed `yaml:"genes" json:"genes"`
}

// LoadGeneFile reads a gene file. The format follows the file extension
// (.yaml, .yml or .json).
func LoadGeneFile(path string) ([]GeneSeed, error) {
	var f geneFile
	if err := cleanenv.ReadConfig(path, &f); err != nil {
		return nil, fmt.Errorf("read gene file %s: %w", path, err)
	}
	return f.Genes, nil
}
