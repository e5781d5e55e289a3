package config

// YAMLFile is the on-disk shape of a configuration file.
type YAMLFile struct {
	Sweep    *YAMLSweep    `yaml:"sweep"`
	Elements []YAMLElement `yaml:"elements"`
	Circuits []YAMLCircuit `yaml:"circuits"`
}

// YAMLSweep is the "sweep" section. Pointers distinguish absent keys from zero.
type YAMLSweep struct {
	Start           *float64 `yaml:"start"`
	Stop            *float64 `yaml:"stop"`
	PointsPerDecade *int     `yaml:"points_per_decade"`
	Points          *int     `yaml:"points"`
	Spacing         string   `yaml:"spacing"`
	Descending      bool     `yaml:"descending"`
}

// YAMLElement derives a preset kind from the registered kind Base.
type YAMLElement struct {
	Symbol      string                   `yaml:"symbol"`
	Name        string                   `yaml:"name"`
	Description string                   `yaml:"description"`
	Base        string                   `yaml:"base"`
	Parameters  map[string]YAMLParameter `yaml:"parameters"`
}

// YAMLParameter overrides one parameter definition of a preset; nil keeps the base value.
type YAMLParameter struct {
	Default *float64 `yaml:"default"`
	Lower   *float64 `yaml:"lower"`
	Upper   *float64 `yaml:"upper"`
	Fixed   *bool    `yaml:"fixed"`
}

// YAMLCircuit is a named CDC string.
type YAMLCircuit struct {
	Name string `yaml:"name"`
	CDC  string `yaml:"cdc"`
}
