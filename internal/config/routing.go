package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RoutingRules describe a qué stream va cada lote. Se pueden declarar en un
// fichero YAML (ROUTING_FILE) o tomarse de las variables de entorno.
type RoutingRules struct {
	Attribute        string   `yaml:"attribute"`
	DefaultStream    string   `yaml:"default_stream"`
	TestStream       string   `yaml:"test_stream"`
	TestEmailDomains []string `yaml:"test_email_domains"`
}

// Routing devuelve las reglas de routing. Los campos que el fichero deja vacíos
// se completan con los valores del entorno.
func (c *Config) Routing() (RoutingRules, error) {
	rules := RoutingRules{
		Attribute:        c.RoutingAttribute,
		DefaultStream:    c.StreamName,
		TestStream:       c.TestStreamName,
		TestEmailDomains: c.TestEmailDomains,
	}
	if c.RoutingFile == "" {
		return rules, nil
	}

	fromFile, err := LoadRoutingRules(c.RoutingFile)
	if err != nil {
		return RoutingRules{}, err
	}
	if fromFile.Attribute != "" {
		rules.Attribute = fromFile.Attribute
	}
	if fromFile.DefaultStream != "" {
		rules.DefaultStream = fromFile.DefaultStream
	}
	if fromFile.TestStream != "" {
		rules.TestStream = fromFile.TestStream
	}
	if len(fromFile.TestEmailDomains) > 0 {
		rules.TestEmailDomains = fromFile.TestEmailDomains
	}
	return rules, nil
}

func LoadRoutingRules(path string) (RoutingRules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RoutingRules{}, fmt.Errorf("failed to read routing file: %w", err)
	}

	var rules RoutingRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return RoutingRules{}, fmt.Errorf("failed to parse routing file: %w", err)
	}
	return rules, nil
}
