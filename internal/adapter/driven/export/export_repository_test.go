package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/aws-finops-report-go/internal/domain/entity"
)

func TestExportInstancesToCSV_HeaderIsUnionOfKeys(t *testing.T) {
	repo := NewExportRepository()
	dir := t.TempDir()

	instances := []entity.Instance{
		{
			InstanceID: "i-1", Name: "web-1", State: "running", InstanceType: "t3.micro",
			Owner: "alice", CostCenter: "cc-1", Environment: "prod",
			VPCID: "vpc-1", PrivateIP: "10.0.0.1", PublicIP: "54.0.0.1",
		},
		{
			InstanceID: "i-2", Name: "web-2", State: "stopped", InstanceType: "m5.large",
			OS:    "Ubuntu",
			Tags:  map[string]string{"Name": "web-2"},
			Owner: "bob", CostCenter: "cc-2", Environment: "staging",
			VPCID: "vpc-1", PrivateIP: "10.0.0.2", PublicIP: "N/A",
			Region: "us-east-1",
		},
	}

	path, err := repo.ExportInstancesToCSV(instances, "report", dir)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".csv"))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // cabeçalho + 2 linhas

	header := records[0]
	// Chaves opcionais entram na ordem em que foram vistas pela primeira vez.
	assert.Equal(t, []string{
		"instance_id", "name", "state", "instance_type",
		"owner", "cost_center", "environment",
		"vpc_id", "private_ip", "public_ip",
		"os", "tags", "region",
	}, header)

	index := make(map[string]int, len(header))
	for i, key := range header {
		index[key] = i
	}

	// i-1 não tem os/tags/region: células vazias.
	assert.Equal(t, "i-1", records[1][index["instance_id"]])
	assert.Equal(t, "", records[1][index["os"]])
	assert.Equal(t, "", records[1][index["region"]])

	assert.Equal(t, "Ubuntu", records[2][index["os"]])
	assert.Equal(t, "us-east-1", records[2][index["region"]])
	assert.Contains(t, records[2][index["tags"]], `"Name":"web-2"`)
}

func TestExportSnapshotToJSON_RoundTrips(t *testing.T) {
	repo := NewExportRepository()
	dir := t.TempDir()

	snap := &entity.Snapshot{
		AccountID:           "123456789012",
		AccountAlias:        "acme-prod",
		UserARN:             "arn:aws:iam::123456789012:user/collector",
		CollectionTimestamp: "2026-08-28T10:00:00Z",
		Regions: []entity.RegionSnapshot{
			{
				Region: "us-east-1",
				Instances: entity.InstanceReport{
					Running: 1, Total: 1,
					Details: []entity.Instance{{InstanceID: "i-1", State: "running"}},
				},
				UnusedVolumes: entity.UnusedVolumes{
					Details: []entity.Volume{{VolumeID: "vol-1", Size: 10, VolumeType: "gp3"}},
				},
			},
		},
	}

	path, err := repo.ExportSnapshotToJSON(snap, "report", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded entity.Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, snap.AccountID, decoded.AccountID)
	require.Len(t, decoded.Regions, 1)
	assert.Len(t, decoded.Regions[0].Instances.Details, 1)
	assert.Len(t, decoded.Regions[0].UnusedVolumes.Details, 1)
	assert.Equal(t, 10, decoded.Regions[0].UnusedVolumes.Details[0].Size)
}

func TestExportReportToPDF_WritesFile(t *testing.T) {
	repo := NewExportRepository()
	dir := t.TempDir()

	report := entity.ReportBundle{
		Snapshot: &entity.Snapshot{AccountID: "123456789012", AccountAlias: "acme-prod"},
		Summary:  entity.ExecutiveSummary{TotalInstances: 2, RunningInstances: 1, TotalRegions: 1},
		Regions: []entity.RegionDistribution{
			{Region: "us-east-1", Running: 1, Stopped: 1, Total: 2},
		},
		InstanceTypes: []entity.InstanceTypeCount{{InstanceType: "t3.micro", Count: 2}},
		TagCompliance: entity.TagComplianceReport{
			MissingByTag: map[string][]entity.Instance{"owner": {{InstanceID: "i-1"}}},
		},
		TagCounts: entity.TagDistribution{
			Environments: []entity.TagCount{{Value: "prod", Count: 2}},
			CostCenters:  []entity.TagCount{{Value: "cc-1", Count: 2}},
			Owners:       []entity.TagCount{{Value: "alice", Count: 2}},
		},
		CostRisks: entity.CostRiskReport{StoppedCount: 1, TotalCostRisk: 1},
	}

	path, err := repo.ExportReportToPDF(report, "report", dir)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".pdf"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestGenerateFilename_TimestampAndDirectory(t *testing.T) {
	dir := t.TempDir() + "/nested/out"

	path, err := generateFilename("inventory", dir, "csv")
	require.NoError(t, err)

	assert.Regexp(t, `inventory_\d{8}_\d{6}\.csv$`, path)
	_, err = os.Stat(dir)
	assert.NoError(t, err)
}
