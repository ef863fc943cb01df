package config

// YAMLConfig mirrors the configuration file. Absent fields keep their
// defaults, hence the pointers.
type YAMLConfig struct {
	Generator YAMLGenerator `yaml:"generator"`
	Measure   YAMLMeasure   `yaml:"measure"`
	Log       YAMLLog       `yaml:"log"`
}

type YAMLGenerator struct {
	Count *int     `yaml:"count"`
	Delay *string  `yaml:"delay"`
	Min   *float64 `yaml:"min"`
	Max   *float64 `yaml:"max"`
	Seed  *uint64  `yaml:"seed"`
}

type YAMLMeasure struct {
	Parallel *int `yaml:"parallel"`
}

type YAMLLog struct {
	Level       *string `yaml:"level"`
	Development *bool   `yaml:"development"`
}
