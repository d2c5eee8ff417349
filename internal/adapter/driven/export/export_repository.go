package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/diillson/aws-finops-report-go/internal/domain/entity"
	"github.com/diillson/aws-finops-report-go/internal/domain/repository"
	"github.com/jung-kurt/gofpdf"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// ExportInstancesToCSV writes one row per instance. The header is the union
// of the keys observed across all instances in first-seen order; a key an
// instance does not carry renders as an empty cell. Tag maps are coerced to
// a JSON string so nothing is lost on the way out.
func (r *ExportRepositoryImpl) ExportInstancesToCSV(instances []entity.Instance, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Cabeçalho = união das chaves na ordem em que aparecem
	var header []string
	seen := map[string]bool{}
	rows := make([]map[string]string, 0, len(instances))
	for _, inst := range instances {
		row := map[string]string{}
		for _, f := range instanceFields(inst) {
			if !seen[f.key] {
				seen[f.key] = true
				header = append(header, f.key)
			}
			row[f.key] = f.value
		}
		rows = append(rows, row)
	}

	if err := writer.Write(header); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, row := range rows {
		record := make([]string, len(header))
		for i, key := range header {
			record[i] = row[key]
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	return filepath.Abs(outputFilename)
}

// ExportSnapshotToJSON re-serializes the full snapshot document verbatim.
// The exported file deserializes back to a snapshot with the same region
// and per-region entity counts as the input.
func (r *ExportRepositoryImpl) ExportSnapshotToJSON(snapshot *entity.Snapshot, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(snapshot); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// ExportReportToPDF renders the executive report: summary, per-region
// distribution, tagging compliance and cost risks.
func (r *ExportRepositoryImpl) ExportReportToPDF(report entity.ReportBundle, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{255, 153, 0}
	headerTextColor := [3]int{30, 30, 30}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	drawSection := func(title string, content string) {
		if strings.TrimSpace(content) == "" {
			return
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.MultiCell(190, 5, tr(content), "", "L", false)
		pdf.Ln(8)
	}

	pdf.AddPage()

	// Cabeçalho
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  AWS FinOps Audit Report"), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	if report.Snapshot != nil {
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Account: %s (%s)  |  Collected by: %s  |  Collected at: %s",
			report.Snapshot.AccountID, report.Snapshot.AccountAlias,
			report.Snapshot.UserDisplayName(), report.Snapshot.CollectionTimestamp)), "", 1, "L", true, 0, "")
	}
	pdf.Ln(10)

	summary := report.Summary
	drawSection("Executive Summary", fmt.Sprintf(
		"Total Instances: %d\nRunning Instances: %d\nStopped Instances: %d\nUntagged Resources: %d\nUnused Volumes: %d\nUnused EIPs: %d\nTotal Regions: %d",
		summary.TotalInstances, summary.RunningInstances, summary.StoppedInstances,
		summary.UntaggedCount, summary.UnusedVolumes, summary.UnusedEIPs, summary.TotalRegions,
	))

	if len(report.Regions) > 0 {
		var b strings.Builder
		for _, row := range report.Regions {
			b.WriteString(fmt.Sprintf("%s: running %d, stopped %d, total %d\n", row.Region, row.Running, row.Stopped, row.Total))
		}
		drawSection("Instances by Region", b.String())
	}

	if len(report.InstanceTypes) > 0 {
		var b strings.Builder
		for _, row := range report.InstanceTypes {
			b.WriteString(fmt.Sprintf("%s: %d\n", row.InstanceType, row.Count))
		}
		drawSection("Top Instance Types", b.String())
	}

	// Tagging compliance
	var tc strings.Builder
	if report.TagCompliance.Compliant {
		tc.WriteString("All resources carry the mandatory tags.\n")
	} else {
		tc.WriteString(fmt.Sprintf("Untagged resources: %d\n\n", len(report.TagCompliance.UntaggedDetails)))
	}
	tags := make([]string, 0, len(report.TagCompliance.MissingByTag))
	for tag := range report.TagCompliance.MissingByTag {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		tc.WriteString(fmt.Sprintf("Missing %s: %d\n", tag, report.TagCompliance.MissingCount(tag)))
	}
	drawSection("Tagging Compliance", tc.String())

	// Distribuições por tag de identidade
	var td strings.Builder
	writeTagCounts := func(title string, rows []entity.TagCount) {
		if len(rows) == 0 {
			return
		}
		td.WriteString(title + "\n")
		for _, row := range rows {
			td.WriteString(fmt.Sprintf("  %s: %d\n", row.Value, row.Count))
		}
	}
	writeTagCounts("By Environment:", report.TagCounts.Environments)
	writeTagCounts("Top CostCenters:", report.TagCounts.CostCenters)
	writeTagCounts("By Owner:", report.TagCounts.Owners)
	drawSection("Tag Analysis", td.String())

	risks := report.CostRisks
	drawSection("Cost Optimization Opportunities", fmt.Sprintf(
		"Stopped Instances: %d\nUnused Volumes: %d (%d GB)\nUnused Elastic IPs: %d\nTotal Cost Risks: %d",
		risks.StoppedCount, risks.UnusedVolumeCount, risks.UnusedVolumeTotalG, risks.UnusedEIPCount, risks.TotalCostRisk,
	))

	// Rodapé
	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	footerText := fmt.Sprintf("Generated by AWS FinOps Report (Go) | %s", time.Now().UTC().Format("2006-01-02"))
	pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Funções Auxiliares ---

type instanceField struct {
	key   string
	value string
}

// instanceFields lists the keys an instance carries, in document order.
// Optional keys (os, platform, tags, region) only appear when present, so
// the CSV header reflects what the collection actually observed.
func instanceFields(inst entity.Instance) []instanceField {
	fields := []instanceField{
		{"instance_id", inst.InstanceID},
		{"name", inst.Name},
		{"state", inst.State},
		{"instance_type", inst.InstanceType},
	}
	if inst.OS != "" {
		fields = append(fields, instanceField{"os", inst.OS})
	}
	if inst.Platform != "" {
		fields = append(fields, instanceField{"platform", inst.Platform})
	}
	if inst.Tags != nil {
		// Coerção para string: mapas não têm representação CSV nativa
		encoded, err := json.Marshal(inst.Tags)
		if err != nil {
			encoded = []byte(fmt.Sprint(inst.Tags))
		}
		fields = append(fields, instanceField{"tags", string(encoded)})
	}
	fields = append(fields,
		instanceField{"owner", inst.Owner},
		instanceField{"cost_center", inst.CostCenter},
		instanceField{"environment", inst.Environment},
		instanceField{"vpc_id", inst.VPCID},
		instanceField{"private_ip", inst.PrivateIP},
		instanceField{"public_ip", inst.PublicIP},
	)
	if inst.Region != "" {
		fields = append(fields, instanceField{"region", inst.Region})
	}
	return fields
}

// generateFilename cria um nome de arquivo único com timestamp UTC e garante
// que o diretório exista.
func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().UTC().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}
