package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed bootstrap.yaml
var defaultBootstrap []byte

// Bootstrap describes the initial state seeded on startup: the admin
// account and the top-level folders every deployment starts with.
type Bootstrap struct {
	Admin struct {
		Login    string `yaml:"login"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"admin"`
	Folders []string `yaml:"folders"`
}

// LoadBootstrap parses the bootstrap definition, preferring the file named
// by BOOTSTRAP_FILE over the embedded defaults.
func LoadBootstrap(path string) (*Bootstrap, error) {
	data := defaultBootstrap
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read bootstrap file: %w", err)
		}
		data = b
	}

	var bootstrap Bootstrap
	if err := yaml.Unmarshal(data, &bootstrap); err != nil {
		return nil, fmt.Errorf("parse bootstrap: %w", err)
	}

	return &bootstrap, nil
}
