package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile  string
	DataFile    string
	Profile     string
	Regions     []string
	Collect     bool
	Region      string
	State       string
	Environment string
	Owner       string
	ReportName  string
	ReportType  []string
	Dir         string
}
