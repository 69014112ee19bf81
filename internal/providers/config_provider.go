package providers

import (
	"emojidb/internal/structures"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.format", "json")
	v.SetDefault("cache.compress", true)
	v.SetDefault("cache.memorySize", 0)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)

	v.BindEnv("logger.level", "EMOJIDB_LOG_LEVEL")
	v.BindEnv("source.dataFile", "EMOJIDB_DATA_FILE")
	v.BindEnv("cache.dir", "EMOJIDB_CACHE_DIR")
	v.BindEnv("cache.format", "EMOJIDB_CACHE_FORMAT")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "EmojiDB"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
