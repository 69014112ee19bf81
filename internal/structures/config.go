package structures

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type SourceConfig struct {
	DataFile string `yaml:"dataFile" mapstructure:"dataFile" validate:"required"`
	HashFile string `yaml:"hashFile" mapstructure:"hashFile"`
}

type CacheConfig struct {
	Enabled    bool   `yaml:"enabled" mapstructure:"enabled"`
	Dir        string `yaml:"dir" mapstructure:"dir" validate:"required"`
	Format     string `yaml:"format" mapstructure:"format" validate:"required|in:json,binary"`
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	MemorySize int    `yaml:"memorySize" mapstructure:"memorySize" validate:"min:0"`
}

type LoggerConfig struct {
	Level string `yaml:"level" mapstructure:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" mapstructure:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" mapstructure:"dir"`
}

type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Textfile string `yaml:"textfile" mapstructure:"textfile"`
}

type Config struct {
	AppName string
	Debug   bool
	Path    string
	Source  SourceConfig  `yaml:"source" mapstructure:"source"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Logger  LoggerConfig  `yaml:"logger" mapstructure:"logger"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}
