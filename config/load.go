package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. COGMOTIF_MIN_GENOMES.
const EnvPrefix = "COGMOTIF"

// settingKeys are the scalar keys that may come from flags or the environment.
var settingKeys = []string{
	"min_genomes", "motif_length", "target_marker",
	"plasmid_file", "bacteria_file", "taxonomy_file", "habitat_file", "activity_file",
	"output_dir", "strict", "top_activities",
}

// Load builds run settings from, in increasing precedence: defaults, an optional
// config file (YAML, JSON or TOML), COGMOTIF_* environment variables, and changed
// flags. A flag named "min-genomes" sets the key "min_genomes". Filters come only
// from the config file; callers append command-line filters themselves.
func Load(configFile string, flags *pflag.FlagSet) (RunSettings, error) {
	v := viper.New()

	v.SetDefault("plasmid_file", DefaultPlasmidFile)
	v.SetDefault("bacteria_file", DefaultBacteriaFile)
	v.SetDefault("taxonomy_file", DefaultTaxonomyFile)
	v.SetDefault("habitat_file", DefaultHabitatFile)
	v.SetDefault("activity_file", DefaultActivityFile)
	v.SetDefault("output_dir", DefaultOutputDir)
	v.SetDefault("top_activities", DefaultTopActivities)
	v.SetDefault("min_genomes", 0)
	v.SetDefault("motif_length", 0)
	v.SetDefault("target_marker", "")
	v.SetDefault("strict", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return RunSettings{}, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	if flags != nil {
		for _, key := range settingKeys {
			flag := flags.Lookup(strings.ReplaceAll(key, "_", "-"))
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return RunSettings{}, fmt.Errorf("failed to bind flag %s: %w", flag.Name, err)
			}
		}
	}

	var settings RunSettings
	if err := v.Unmarshal(&settings); err != nil {
		return RunSettings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	settings.ApplyDefaults()
	return settings, nil
}
