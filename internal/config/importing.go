package config

import (
	"path"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/nvcollection/nvcx/internal"
)

// importing contains all import-related configuration options available to the user via the application config.
type importing struct {
	CacheDir string `yaml:"cache-dir" json:"cache-dir" mapstructure:"cache-dir"` // the directory to stage remote collection downloads into
	Checksum string `yaml:"checksum" json:"checksum" mapstructure:"checksum"`    // --checksum, the expected sha256 digest of the fetched collection document
}

func (cfg importing) loadDefaultValues(v *viper.Viper) {
	v.SetDefault("import.cache-dir", path.Join(xdg.CacheHome, internal.ApplicationName))
	v.SetDefault("import.checksum", "")
}
