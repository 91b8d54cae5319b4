package config

// YAMLConfig mirrors bmectl.yaml. Pointer fields distinguish "unset" from zero values.
type YAMLConfig struct {
	Bmectl struct {
		API struct {
			BackendURL string `yaml:"backend_url"`
			Timeout    string `yaml:"timeout"`
			PageSize   *int   `yaml:"page_size"`
		} `yaml:"api"`

		Output struct {
			Format string `yaml:"format"`
		} `yaml:"output"`

		Session struct {
			File string `yaml:"file"`
		} `yaml:"session"`

		Masking struct {
			Enabled *bool `yaml:"enabled"`
		} `yaml:"masking"`

		Log struct {
			Debug *bool `yaml:"debug"`
		} `yaml:"log"`
	} `yaml:"bmectl"`
}
