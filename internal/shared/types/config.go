package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	DataFile    string   `json:"data_file" yaml:"data_file" toml:"data_file"`
	Profile     string   `json:"profile" yaml:"profile" toml:"profile"`
	Regions     []string `json:"regions" yaml:"regions" toml:"regions"`
	Region      string   `json:"region" yaml:"region" toml:"region"`
	State       string   `json:"state" yaml:"state" toml:"state"`
	Environment string   `json:"environment" yaml:"environment" toml:"environment"`
	Owner       string   `json:"owner" yaml:"owner" toml:"owner"`
	ReportName  string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType  []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir         string   `json:"dir" yaml:"dir" toml:"dir"`
}
