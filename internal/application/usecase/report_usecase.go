package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"

	"github.com/diillson/aws-finops-report-go/internal/application/analyzer"
	"github.com/diillson/aws-finops-report-go/internal/domain/entity"
	"github.com/diillson/aws-finops-report-go/internal/domain/repository"
	"github.com/diillson/aws-finops-report-go/internal/shared/types"
)

// ReportUseCase liga o loader de snapshot, o núcleo analítico e a camada de
// apresentação/exportação.
type ReportUseCase struct {
	snapshotRepo repository.SnapshotRepository
	awsRepo      repository.AWSRepository
	exportRepo   repository.ExportRepository
	configRepo   repository.ConfigRepository
	console      types.ConsoleInterface
}

// NewReportUseCase creates a new report use case.
func NewReportUseCase(
	snapshotRepo repository.SnapshotRepository,
	awsRepo repository.AWSRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *ReportUseCase {
	return &ReportUseCase{
		snapshotRepo: snapshotRepo,
		awsRepo:      awsRepo,
		exportRepo:   exportRepo,
		configRepo:   configRepo,
		console:      console,
	}
}

// RunReport executa a funcionalidade principal: coleta (quando pedida) ou
// análise do snapshot já coletado.
func (uc *ReportUseCase) RunReport(ctx context.Context, args *types.CLIArgs) error {
	if args.Collect {
		return uc.RunCollection(ctx, args)
	}

	if args.DataFile != "" {
		uc.snapshotRepo.SetPath(args.DataFile)
	}

	status := uc.console.Status("Loading inventory snapshot...")
	snap, err := uc.snapshotRepo.Load(ctx)
	if err != nil {
		status.Stop()
		return err
	}

	status.Update("Analyzing snapshot...")
	report := analyzer.BuildReport(snap)
	inv := report.Inventory
	status.Stop()

	filter := analyzer.InstanceFilter{
		Region:      args.Region,
		State:       args.State,
		Environment: args.Environment,
		Owner:       args.Owner,
	}
	filtered := filter.Apply(inv.Instances)

	uc.displayAccountInfo(snap)
	uc.displaySummary(report.Summary, report.CostRisks)
	uc.displayRegionDistribution(report.Regions)
	uc.displayInstanceTypes(report.InstanceTypes)
	uc.displayTagCompliance(report.TagCompliance)
	uc.displayTagDistributions(report.TagCounts)
	uc.displayCostRisks(report.CostRisks)
	uc.displayInstances(filtered, filter, inv.Instances)

	// Exporta os relatórios solicitados
	if args.ReportName != "" && len(args.ReportType) > 0 {
		for _, reportType := range args.ReportType {
			switch reportType {
			case "csv":
				csvPath, err := uc.exportRepo.ExportInstancesToCSV(filtered, args.ReportName, args.Dir)
				if err != nil {
					uc.console.LogError("Failed to export instances to CSV: %s", err)
				} else {
					uc.console.LogSuccess("Successfully exported instances to CSV: %s", csvPath)
				}
			case "json":
				jsonPath, err := uc.exportRepo.ExportSnapshotToJSON(snap, args.ReportName, args.Dir)
				if err != nil {
					uc.console.LogError("Failed to export snapshot to JSON: %s", err)
				} else {
					uc.console.LogSuccess("Successfully exported snapshot to JSON: %s", jsonPath)
				}
			case "pdf":
				pdfPath, err := uc.exportRepo.ExportReportToPDF(report, args.ReportName, args.Dir)
				if err != nil {
					uc.console.LogError("Failed to export report to PDF: %s", err)
				} else {
					uc.console.LogSuccess("Successfully exported report to PDF: %s", pdfPath)
				}
			}
		}
	}

	return nil
}

// RunCollection coleta um snapshot novo e grava o arquivo de dados que o
// loader lê.
func (uc *ReportUseCase) RunCollection(ctx context.Context, args *types.CLIArgs) error {
	uc.console.LogInfo("Collecting AWS inventory snapshot...")

	if args.Profile != "" {
		uc.awsRepo.SetProfile(args.Profile)
	}

	regions := args.Regions
	if len(regions) == 0 {
		var err error
		regions, err = uc.awsRepo.GetAccessibleRegions(ctx)
		if err != nil {
			uc.console.LogWarning("Could not list accessible regions: %s", err)
			regions = []string{"us-east-1", "us-west-2", "eu-west-1"} // defaults
		}
	}

	progress := uc.console.ProgressWithTotal(len(regions))
	snap, err := uc.awsRepo.CollectSnapshot(ctx, regions, func(string) {
		progress.Increment()
	})
	progress.Stop()
	if err != nil {
		return fmt.Errorf("collection failed: %w", err)
	}

	dataFile := args.DataFile
	if dataFile == "" {
		dataFile = "data/aws_finops_data.json"
	}
	if err := os.MkdirAll(filepath.Dir(dataFile), 0755); err != nil {
		return fmt.Errorf("error creating data directory: %w", err)
	}

	encoded, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding snapshot: %w", err)
	}
	if err := os.WriteFile(dataFile, encoded, 0644); err != nil {
		return fmt.Errorf("error writing snapshot file: %w", err)
	}

	uc.console.LogSuccess("Snapshot written to %s (%d regions)", dataFile, len(snap.Regions))
	return nil
}

// displayAccountInfo mostra a identidade da conta no topo do relatório.
func (uc *ReportUseCase) displayAccountInfo(snap *entity.Snapshot) {
	table := uc.console.CreateTable()
	table.AddColumn("Account ID")
	table.AddColumn("Account Alias")
	table.AddColumn("User")
	table.AddColumn("Collected At")
	table.AddRow(
		orNA(snap.AccountID),
		orNA(snap.AccountAlias),
		snap.UserDisplayName(),
		orNA(snap.CollectionTimestamp),
	)
	uc.console.Print(table.Render())
}

func (uc *ReportUseCase) displaySummary(summary entity.ExecutiveSummary, risks entity.CostRiskReport) {
	table := uc.console.CreateTable()
	table.AddColumn("Total Instances")
	table.AddColumn("Running")
	table.AddColumn("Untagged Resources")
	table.AddColumn("Cost Risks")

	untagged := pterm.FgGreen.Sprintf("%d", summary.UntaggedCount)
	if summary.UntaggedCount > 0 {
		untagged = pterm.FgRed.Sprintf("%d (critical)", summary.UntaggedCount)
	}

	table.AddRow(
		fmt.Sprintf("%d", summary.TotalInstances),
		pterm.FgGreen.Sprintf("%d", summary.RunningInstances)+
			pterm.FgYellow.Sprintf(" (-%d stopped)", summary.StoppedInstances),
		untagged,
		fmt.Sprintf("%d", risks.TotalCostRisk),
	)
	uc.console.Print(table.Render())
}

func (uc *ReportUseCase) displayRegionDistribution(regions []entity.RegionDistribution) {
	bars := make([]types.RegionBar, 0, len(regions))
	for _, region := range regions {
		bars = append(bars, types.RegionBar{
			Region:  region.Region,
			Running: region.Running,
			Stopped: region.Stopped,
			Total:   region.Total,
		})
	}
	uc.console.DisplayRegionBars(bars)
}

func (uc *ReportUseCase) displayInstanceTypes(rows []entity.InstanceTypeCount) {
	if len(rows) == 0 {
		return
	}
	table := uc.console.CreateTable()
	table.AddColumn("Instance Type")
	table.AddColumn("Count")
	for _, row := range rows {
		table.AddRow(row.InstanceType, fmt.Sprintf("%d", row.Count))
	}
	uc.console.Println("\nTop Instance Types")
	uc.console.Print(table.Render())
}

func (uc *ReportUseCase) displayTagCompliance(report entity.TagComplianceReport) {
	uc.console.Println("\nTagging Compliance")

	counts := make([]string, 0, len(analyzer.MandatoryTags))
	for _, tag := range analyzer.MandatoryTags {
		counts = append(counts, fmt.Sprintf("Missing %s: %d", tag, report.MissingCount(tag)))
	}
	uc.console.Println(strings.Join(counts, "  |  "))

	if report.Compliant {
		uc.console.LogSuccess("All resources are properly tagged")
		return
	}

	uc.console.LogWarning("Resources with missing mandatory tags found")
	table := uc.console.CreateTable()
	table.AddColumn("Instance ID")
	table.AddColumn("Name")
	table.AddColumn("Region")
	table.AddColumn("State")
	table.AddColumn("Type")
	table.AddColumn("Name Tag")
	table.AddColumn("Owner Tag")
	table.AddColumn("CostCenter Tag")
	table.AddColumn("Environment Tag")
	for _, detail := range report.UntaggedDetails {
		table.AddRow(
			detail.InstanceID,
			detail.Name,
			detail.Region,
			detail.State,
			detail.InstanceType,
			marker(detail.HasNameTag),
			marker(detail.HasOwnerTag),
			marker(detail.HasCostCenterTag),
			marker(detail.HasEnvironmentTag),
		)
	}
	uc.console.Print(table.Render())
}

// displayTagDistributions mostra os contadores de instâncias por valor das
// tags de identidade.
func (uc *ReportUseCase) displayTagDistributions(dist entity.TagDistribution) {
	uc.console.Println("\nTag Analysis")

	uc.printTagCounts("Instances by Environment", "Environment", dist.Environments)
	uc.printTagCounts("Top CostCenters", "CostCenter", dist.CostCenters)
	uc.printTagCounts("Instances by Owner", "Owner", dist.Owners)
}

func (uc *ReportUseCase) printTagCounts(title, column string, rows []entity.TagCount) {
	if len(rows) == 0 {
		return
	}
	table := uc.console.CreateTable()
	table.AddColumn(column)
	table.AddColumn("Instances")
	for _, row := range rows {
		table.AddRow(row.Value, fmt.Sprintf("%d", row.Count))
	}
	uc.console.Println(title)
	uc.console.Print(table.Render())
}

func (uc *ReportUseCase) displayCostRisks(risks entity.CostRiskReport) {
	uc.console.Println("\nCost Optimization Opportunities")

	if risks.StoppedCount > 0 {
		uc.console.LogWarning("%d stopped instances found", risks.StoppedCount)
	} else {
		uc.console.LogSuccess("No stopped instances found")
	}

	if risks.UnusedVolumeCount > 0 {
		uc.console.LogWarning("%d unused volumes found (%d GB)", risks.UnusedVolumeCount, risks.UnusedVolumeTotalG)
	} else {
		uc.console.LogSuccess("No unused volumes found")
	}

	if risks.UnusedEIPCount > 0 {
		uc.console.LogWarning("%d unused Elastic IPs found", risks.UnusedEIPCount)
	} else {
		uc.console.LogSuccess("No unused Elastic IPs found")
	}
}

// displayInstances mostra a tabela de instâncias após os filtros, junto com
// as opções selecionáveis derivadas da coleção sem filtro.
func (uc *ReportUseCase) displayInstances(filtered []entity.Instance, filter analyzer.InstanceFilter, all []entity.Instance) {
	options := analyzer.BuildFilterOptions(all)

	uc.console.Println("\nInstances")
	uc.console.LogInfo("Filters: region=%s state=%s environment=%s owner=%s (options: %d regions, %d environments, %d owners)",
		orMatchAll(filter.Region), orMatchAll(filter.State),
		orMatchAll(filter.Environment), orMatchAll(filter.Owner),
		len(options.Regions), len(options.Environments), len(options.Owners))

	table := uc.console.CreateTable()
	table.AddColumn("Instance ID")
	table.AddColumn("Name")
	table.AddColumn("Region")
	table.AddColumn("State")
	table.AddColumn("Type")
	table.AddColumn("OS")
	table.AddColumn("Owner")
	table.AddColumn("CostCenter")
	table.AddColumn("Environment")
	table.AddColumn("VPC ID")
	table.AddColumn("Private IP")
	table.AddColumn("Public IP")

	for _, inst := range filtered {
		state := inst.State
		switch state {
		case "running":
			state = pterm.FgGreen.Sprint(state)
		case "stopped":
			state = pterm.FgYellow.Sprint(state)
		}
		table.AddRow(
			inst.InstanceID, inst.Name, inst.Region, state, inst.InstanceType,
			inst.OperatingSystem(), inst.Owner, inst.CostCenter, inst.Environment,
			inst.VPCID, inst.PrivateIP, inst.PublicIP,
		)
	}
	uc.console.Print(table.Render())
	uc.console.LogInfo("%d of %d instances shown", len(filtered), len(all))
}

// Funções auxiliares

func marker(ok bool) string {
	if ok {
		return pterm.FgGreen.Sprint("✓")
	}
	return pterm.FgRed.Sprint("✗")
}

func orNA(v string) string {
	if v == "" {
		return entity.NotAvailable
	}
	return v
}

func orMatchAll(v string) string {
	if v == "" {
		return analyzer.MatchAll
	}
	return v
}
