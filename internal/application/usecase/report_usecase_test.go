package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/aws-finops-report-go/internal/domain/entity"
	"github.com/diillson/aws-finops-report-go/internal/shared/types"
)

// --- Dublês de teste ---

type fakeSnapshotRepo struct {
	snap    *entity.Snapshot
	err     error
	setPath string
}

func (f *fakeSnapshotRepo) Load(ctx context.Context) (*entity.Snapshot, error) {
	return f.snap, f.err
}

func (f *fakeSnapshotRepo) SetPath(path string) { f.setPath = path }

type fakeAWSRepo struct {
	snap    *entity.Snapshot
	regions []string
	profile string
}

func (f *fakeAWSRepo) SetProfile(profile string) { f.profile = profile }

func (f *fakeAWSRepo) GetAccountIdentity(ctx context.Context) (string, string, string, error) {
	return f.snap.AccountID, f.snap.AccountAlias, f.snap.UserARN, nil
}

func (f *fakeAWSRepo) GetAccessibleRegions(ctx context.Context) ([]string, error) {
	return f.regions, nil
}

func (f *fakeAWSRepo) CollectRegion(ctx context.Context, region string) (entity.RegionSnapshot, error) {
	return entity.RegionSnapshot{Region: region}, nil
}

func (f *fakeAWSRepo) CollectSnapshot(ctx context.Context, regions []string, progress func(string)) (*entity.Snapshot, error) {
	for _, region := range regions {
		if progress != nil {
			progress(region)
		}
	}
	return f.snap, nil
}

type fakeExportRepo struct {
	csvCalls  int
	jsonCalls int
	pdfCalls  int
	err       error
}

func (f *fakeExportRepo) ExportInstancesToCSV(instances []entity.Instance, name, dir string) (string, error) {
	f.csvCalls++
	return filepath.Join(dir, name+".csv"), f.err
}

func (f *fakeExportRepo) ExportSnapshotToJSON(snap *entity.Snapshot, name, dir string) (string, error) {
	f.jsonCalls++
	return filepath.Join(dir, name+".json"), f.err
}

func (f *fakeExportRepo) ExportReportToPDF(report entity.ReportBundle, name, dir string) (string, error) {
	f.pdfCalls++
	return filepath.Join(dir, name+".pdf"), f.err
}

type fakeConsole struct {
	infos     []string
	warnings  []string
	errors    []string
	successes []string
	bars      []types.RegionBar
}

func (f *fakeConsole) Print(a ...interface{})                 {}
func (f *fakeConsole) Printf(format string, a ...interface{}) {}
func (f *fakeConsole) Println(a ...interface{})               {}

func (f *fakeConsole) LogInfo(format string, a ...interface{}) {
	f.infos = append(f.infos, fmt.Sprintf(format, a...))
}
func (f *fakeConsole) LogWarning(format string, a ...interface{}) {
	f.warnings = append(f.warnings, fmt.Sprintf(format, a...))
}
func (f *fakeConsole) LogError(format string, a ...interface{}) {
	f.errors = append(f.errors, fmt.Sprintf(format, a...))
}
func (f *fakeConsole) LogSuccess(format string, a ...interface{}) {
	f.successes = append(f.successes, fmt.Sprintf(format, a...))
}

func (f *fakeConsole) Status(message string) types.StatusHandle         { return noopHandle{} }
func (f *fakeConsole) ProgressWithTotal(total int) types.ProgressHandle { return noopHandle{} }

func (f *fakeConsole) CreateTable() types.TableInterface { return &noopTable{} }
func (f *fakeConsole) DisplayRegionBars(regions []types.RegionBar) {
	f.bars = append(f.bars, regions...)
}

type noopHandle struct{}

func (noopHandle) Update(string) {}
func (noopHandle) Increment()    {}
func (noopHandle) Stop()         {}

type noopTable struct{}

func (*noopTable) AddColumn(string, ...interface{}) {}
func (*noopTable) AddRow(...interface{})            {}
func (*noopTable) Render() string                   { return "" }

func testSnapshot() *entity.Snapshot {
	return &entity.Snapshot{
		AccountID:           "123456789012",
		AccountAlias:        "acme-prod",
		UserARN:             "arn:aws:iam::123456789012:user/collector",
		CollectionTimestamp: "2026-08-28T10:00:00Z",
		Regions: []entity.RegionSnapshot{
			{
				Region: "us-east-1",
				Instances: entity.InstanceReport{
					Running: 1, Stopped: 1, Total: 2,
					Details: []entity.Instance{
						{InstanceID: "i-1", Name: "web-1", State: "running", InstanceType: "t3.micro"},
						{InstanceID: "i-2", Name: "web-2", State: "stopped", InstanceType: "t3.micro"},
					},
				},
				StoppedInstances: entity.StoppedInstances{
					Details: []entity.Instance{{InstanceID: "i-2", State: "stopped"}},
				},
			},
		},
	}
}

func newTestUseCase(snapRepo *fakeSnapshotRepo, awsRepo *fakeAWSRepo, exportRepo *fakeExportRepo, console *fakeConsole) *ReportUseCase {
	return NewReportUseCase(snapRepo, awsRepo, exportRepo, nil, console)
}

func TestRunReport_RendersAndExports(t *testing.T) {
	snapRepo := &fakeSnapshotRepo{snap: testSnapshot()}
	exportRepo := &fakeExportRepo{}
	console := &fakeConsole{}
	uc := newTestUseCase(snapRepo, &fakeAWSRepo{}, exportRepo, console)

	args := &types.CLIArgs{
		ReportName: "inventory",
		ReportType: []string{"csv", "json", "pdf"},
		Dir:        t.TempDir(),
	}
	require.NoError(t, uc.RunReport(context.Background(), args))

	assert.Equal(t, 1, exportRepo.csvCalls)
	assert.Equal(t, 1, exportRepo.jsonCalls)
	assert.Equal(t, 1, exportRepo.pdfCalls)
	// 1 tagging ok + 2 riscos zerados + 3 exportações
	assert.Len(t, console.successes, 6)
	assert.Len(t, console.warnings, 1) // instâncias paradas
	assert.Len(t, console.bars, 1)
}

func TestRunReport_NoExportWithoutReportName(t *testing.T) {
	exportRepo := &fakeExportRepo{}
	uc := newTestUseCase(&fakeSnapshotRepo{snap: testSnapshot()}, &fakeAWSRepo{}, exportRepo, &fakeConsole{})

	require.NoError(t, uc.RunReport(context.Background(), &types.CLIArgs{ReportType: []string{"csv"}}))
	assert.Equal(t, 0, exportRepo.csvCalls)
}

func TestRunReport_AppliesFilters(t *testing.T) {
	console := &fakeConsole{}
	uc := newTestUseCase(&fakeSnapshotRepo{snap: testSnapshot()}, &fakeAWSRepo{}, &fakeExportRepo{}, console)

	args := &types.CLIArgs{State: "running"}
	require.NoError(t, uc.RunReport(context.Background(), args))

	assert.Contains(t, console.infos[len(console.infos)-1], "1 of 2 instances shown")
}

func TestRunReport_ForwardsDataFile(t *testing.T) {
	snapRepo := &fakeSnapshotRepo{snap: testSnapshot()}
	uc := newTestUseCase(snapRepo, &fakeAWSRepo{}, &fakeExportRepo{}, &fakeConsole{})

	args := &types.CLIArgs{DataFile: "custom/path.json"}
	require.NoError(t, uc.RunReport(context.Background(), args))
	assert.Equal(t, "custom/path.json", snapRepo.setPath)
}

func TestRunReport_PropagatesLoadError(t *testing.T) {
	loadErr := os.ErrNotExist
	uc := newTestUseCase(&fakeSnapshotRepo{err: loadErr}, &fakeAWSRepo{}, &fakeExportRepo{}, &fakeConsole{})

	err := uc.RunReport(context.Background(), &types.CLIArgs{})
	assert.ErrorIs(t, err, loadErr)
}

func TestRunCollection_WritesSnapshotFile(t *testing.T) {
	awsRepo := &fakeAWSRepo{snap: testSnapshot()}
	console := &fakeConsole{}
	uc := newTestUseCase(&fakeSnapshotRepo{}, awsRepo, &fakeExportRepo{}, console)

	dataFile := filepath.Join(t.TempDir(), "data", "snapshot.json")
	args := &types.CLIArgs{
		Collect:  true,
		Profile:  "prod",
		Regions:  []string{"us-east-1", "eu-west-1"},
		DataFile: dataFile,
	}
	require.NoError(t, uc.RunReport(context.Background(), args))

	assert.Equal(t, "prod", awsRepo.profile)

	data, err := os.ReadFile(dataFile)
	require.NoError(t, err)

	var written entity.Snapshot
	require.NoError(t, json.Unmarshal(data, &written))
	assert.Equal(t, "123456789012", written.AccountID)
	require.Len(t, written.Regions, 1)
}
