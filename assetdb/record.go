package assetdb

type Expression struct {
	Texture  string      `yaml:"texture"`
	Sampler  SamplerType `yaml:"sampler"`
	Output   string      `yaml:"output"`
	Property string      `yaml:"property"`
}

// Record is stored as <name>.uasset.yaml, payload copied to <name>.<ext>
type Record struct {
	UUID       string            `yaml:"uuid"`
	Class      Class             `yaml:"class"`
	Source     string            `yaml:"source,omitempty"`
	Data       string            `yaml:"data,omitempty"`
	Properties map[string]string `yaml:"properties,omitempty"`

	TwoSided    bool          `yaml:"two_sided,omitempty"`
	Expressions []*Expression `yaml:"expressions,omitempty"`
}
