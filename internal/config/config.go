package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	ConfigFileName = ".terraform-modviz"
	ConfigFileType = "yaml"
)

// Output formats for the render command.
const (
	FormatDot  = "dot"
	FormatJSON = "json"
)

// Dangling-edge policies: warn logs every edge endpoint no node
// declares, ignore accepts them silently.
const (
	DanglingWarn   = "warn"
	DanglingIgnore = "ignore"
)

// Config holds the configuration for terraform-modviz.
type Config struct {
	Neo4j  Neo4jConfig  `mapstructure:"neo4j"`
	Filter FilterConfig `mapstructure:"filter"`
	Graph  GraphConfig  `mapstructure:"graph"`
	Format string       `mapstructure:"format"`

	// Files are the graph dumps named on the command line; empty means
	// invoke `terraform graph` in the working directory.
	Files []string `mapstructure:"-"`
}

// FilterConfig tunes the line filter.
type FilterConfig struct {
	// Tags selects the default-tags rule: "edges" drops only edges
	// targeting the tag variable, "all" drops any line mentioning it.
	Tags string `mapstructure:"tags"`
}

// GraphConfig tunes tree construction and rendering.
type GraphConfig struct {
	Dangling string            `mapstructure:"dangling"`
	Colors   map[string]string `mapstructure:"colors"` // palette overrides per resource type
}

// Neo4jConfig holds the Neo4j connection settings for the update path.
type Neo4jConfig struct {
	URI         string `mapstructure:"uri"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	DockerImage string `mapstructure:"docker_image"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Neo4j: Neo4jConfig{
			URI:         "bolt://localhost:7687",
			User:        "neo4j",
			Password:    "",
			DockerImage: "neo4j:community",
		},
		Filter: FilterConfig{Tags: "edges"},
		Graph:  GraphConfig{Dangling: DanglingWarn},
		Format: FormatDot,
	}
}

// Load reads the configuration from the .terraform-modviz.yaml file,
// searching the current directory and $HOME.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType(ConfigFileType)
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")

	defaults := DefaultConfig()
	v.SetDefault("neo4j.uri", defaults.Neo4j.URI)
	v.SetDefault("neo4j.user", defaults.Neo4j.User)
	v.SetDefault("neo4j.password", defaults.Neo4j.Password)
	v.SetDefault("neo4j.docker_image", defaults.Neo4j.DockerImage)
	v.SetDefault("filter.tags", defaults.Filter.Tags)
	v.SetDefault("graph.dangling", defaults.Graph.Dangling)
	v.SetDefault("format", defaults.Format)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// LoadAndMerge loads configuration from file and merges it with CLI
// flags and positional file arguments. Priority: flags > config file >
// defaults. Flags a command does not register are simply skipped.
func LoadAndMerge(cmd *cobra.Command, args []string) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("format") {
		cfg.Format, _ = cmd.Flags().GetString("format")
	}
	if cmd.Flags().Changed("tag-filter") {
		cfg.Filter.Tags, _ = cmd.Flags().GetString("tag-filter")
	}
	if cmd.Flags().Changed("dangling") {
		cfg.Graph.Dangling, _ = cmd.Flags().GetString("dangling")
	}
	if cmd.Flags().Changed("neo4j-uri") {
		cfg.Neo4j.URI, _ = cmd.Flags().GetString("neo4j-uri")
	}
	if cmd.Flags().Changed("neo4j-user") {
		cfg.Neo4j.User, _ = cmd.Flags().GetString("neo4j-user")
	}
	if cmd.Flags().Changed("neo4j-pass") {
		cfg.Neo4j.Password, _ = cmd.Flags().GetString("neo4j-pass")
	}

	cfg.Files = args
	return cfg, nil
}

// Save writes the configuration to a .terraform-modviz.yaml file.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = fmt.Sprintf("%s.%s", ConfigFileName, ConfigFileType)
	}

	v := viper.New()
	v.Set("neo4j.uri", cfg.Neo4j.URI)
	v.Set("neo4j.user", cfg.Neo4j.User)
	v.Set("neo4j.password", cfg.Neo4j.Password)
	v.Set("neo4j.docker_image", cfg.Neo4j.DockerImage)
	v.Set("filter.tags", cfg.Filter.Tags)
	v.Set("graph.dangling", cfg.Graph.Dangling)
	v.Set("format", cfg.Format)

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// The file carries the Neo4j password.
	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to set secure permissions on config file: %w", err)
	}
	return nil
}

// Exists checks if a config file exists in the current directory.
func Exists() bool {
	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType(ConfigFileType)
	v.AddConfigPath(".")
	return v.ReadInConfig() == nil
}
