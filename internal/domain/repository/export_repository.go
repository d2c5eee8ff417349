package repository

import (
	"github.com/diillson/aws-finops-report-go/internal/domain/entity"
)

type ExportRepository interface {
	ExportInstancesToCSV(instances []entity.Instance, filename string, outputDir string) (string, error)
	ExportSnapshotToJSON(snapshot *entity.Snapshot, filename string, outputDir string) (string, error)
	ExportReportToPDF(report entity.ReportBundle, filename string, outputDir string) (string, error)
}
