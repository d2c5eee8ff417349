package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/diillson/aws-finops-report-go/pkg/version"

	"github.com/diillson/aws-finops-report-go/internal/application/usecase"
	"github.com/diillson/aws-finops-report-go/internal/domain/repository"
	"github.com/diillson/aws-finops-report-go/internal/shared/types"
	"github.com/spf13/cobra"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd       *cobra.Command
	reportUseCase *usecase.ReportUseCase
	configRepo    repository.ConfigRepository
	version       string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	// Obtem a versão formatada
	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:     "finops-report",
		Short:   "AWS FinOps Report CLI",
		Version: formattedVersion,
		RunE:    app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "AWS FinOps Report version: %s\n" .Version}}`)

	// Adiciona flags de linha de comando
	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("data-file", "f", "", "Path to the collected inventory snapshot JSON file")
	rootCmd.PersistentFlags().StringP("profile", "p", "", "AWS profile to use when collecting a snapshot")
	rootCmd.PersistentFlags().StringSliceP("regions", "r", nil, "AWS regions to collect from (comma-separated)")
	rootCmd.PersistentFlags().Bool("collect", false, "Collect a fresh inventory snapshot from AWS instead of reading the data file")
	rootCmd.PersistentFlags().String("region", "", "Filter instances by region (default: all)")
	rootCmd.PersistentFlags().String("state", "", "Filter instances by state: running, stopped, terminated (default: all)")
	rootCmd.PersistentFlags().String("environment", "", "Filter instances by Environment tag (default: all)")
	rootCmd.PersistentFlags().String("owner", "", "Filter instances by owner tag (default: all)")
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", []string{"csv"}, "Specify report types: csv, json, pdf")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs() (*types.CLIArgs, error) {
	configFile, _ := app.rootCmd.Flags().GetString("config-file")
	dataFile, _ := app.rootCmd.Flags().GetString("data-file")
	profile, _ := app.rootCmd.Flags().GetString("profile")
	regions, _ := app.rootCmd.Flags().GetStringSlice("regions")
	collect, _ := app.rootCmd.Flags().GetBool("collect")
	region, _ := app.rootCmd.Flags().GetString("region")
	state, _ := app.rootCmd.Flags().GetString("state")
	environment, _ := app.rootCmd.Flags().GetString("environment")
	owner, _ := app.rootCmd.Flags().GetString("owner")
	reportName, _ := app.rootCmd.Flags().GetString("report-name")
	reportType, _ := app.rootCmd.Flags().GetStringSlice("report-type")
	dir, _ := app.rootCmd.Flags().GetString("dir")

	// Set default directory to current working directory if not specified
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = cwd
	} else {
		// Convert to absolute path
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	args := &types.CLIArgs{
		ConfigFile:  configFile,
		DataFile:    dataFile,
		Profile:     profile,
		Regions:     regions,
		Collect:     collect,
		Region:      region,
		State:       state,
		Environment: environment,
		Owner:       owner,
		ReportName:  reportName,
		ReportType:  reportType,
		Dir:         dir,
	}

	return args, nil
}

// mergeConfig aplica os valores do arquivo de configuração nos argumentos
// que não foram informados na linha de comando.
func mergeConfig(args *types.CLIArgs, config *types.Config) {
	if args.DataFile == "" {
		args.DataFile = config.DataFile
	}
	if args.Profile == "" {
		args.Profile = config.Profile
	}
	if len(args.Regions) == 0 {
		args.Regions = config.Regions
	}
	if args.Region == "" {
		args.Region = config.Region
	}
	if args.State == "" {
		args.State = config.State
	}
	if args.Environment == "" {
		args.Environment = config.Environment
	}
	if args.Owner == "" {
		args.Owner = config.Owner
	}
	if args.ReportName == "" {
		args.ReportName = config.ReportName
	}
	if len(config.ReportType) > 0 && len(args.ReportType) == 1 && args.ReportType[0] == "csv" {
		args.ReportType = config.ReportType
	}
	if config.Dir != "" {
		if cwd, err := os.Getwd(); err == nil && args.Dir == cwd {
			args.Dir = config.Dir
		}
	}
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	// Exibe o banner de boas-vindas
	displayWelcomeBanner(app.version)

	// Verifica a versão mais recente disponível
	go version.CheckLatestVersion(app.version)

	// Analisa os argumentos da linha de comando
	cliArgs, err := app.parseArgs()
	if err != nil {
		return err
	}

	// Lida com o arquivo de configuração, se especificado
	if cliArgs.ConfigFile != "" && app.configRepo != nil {
		config, err := app.configRepo.LoadConfigFile(cliArgs.ConfigFile)
		if err != nil {
			return err
		}
		mergeConfig(cliArgs, config)
	}

	// Executa o relatório
	ctx := context.Background()
	return app.reportUseCase.RunReport(ctx, cliArgs)
}

// SetReportUseCase sets the report use case for the CLI app.
func (app *CLIApp) SetReportUseCase(useCase *usecase.ReportUseCase) {
	app.reportUseCase = useCase
}

// SetConfigRepository sets the configuration repository for the CLI app.
func (app *CLIApp) SetConfigRepository(repo repository.ConfigRepository) {
	app.configRepo = repo
}
