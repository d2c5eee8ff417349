package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/diillson/aws-finops-report-go/internal/domain/entity"
)

func TestAnalyzeTagging_BucketsByMissingTag(t *testing.T) {
	inv := entity.Inventory{
		Instances: []entity.Instance{
			{InstanceID: "i-1", Tags: map[string]string{"Name": "a", "owner": "x", "CostCenter": "c", "Environment": "prod"}},
			{InstanceID: "i-2", Tags: map[string]string{"Name": "b", "owner": "N/A"}},
			{InstanceID: "i-3"},
		},
	}
	report := AnalyzeTagging(inv)

	// i-2: owner com valor "N/A" conta como ausente, Name presente não conta.
	assert.Equal(t, 1, report.MissingCount(TagName))
	assert.Equal(t, 2, report.MissingCount(TagOwner))
	assert.Equal(t, 2, report.MissingCount(TagCostCenter))
	assert.Equal(t, 2, report.MissingCount(TagEnvironment))

	owners := report.MissingByTag[TagOwner]
	assert.Equal(t, "i-2", owners[0].InstanceID)
	assert.Equal(t, "i-3", owners[1].InstanceID)
}

func TestAnalyzeTagging_InstanceCountedOncePerBucket(t *testing.T) {
	inv := entity.Inventory{
		Instances: []entity.Instance{
			{InstanceID: "i-1", Tags: map[string]string{"Name": "a", "owner": "N/A", "CostCenter": "c", "Environment": "prod"}},
		},
	}
	report := AnalyzeTagging(inv)

	assert.Equal(t, 0, report.MissingCount(TagName))
	assert.Equal(t, 1, report.MissingCount(TagOwner))
	assert.Equal(t, 0, report.MissingCount(TagCostCenter))
	assert.Equal(t, 0, report.MissingCount(TagEnvironment))
}

func TestAnalyzeTagging_UntaggedDetailsUseFlattenedFields(t *testing.T) {
	inv := entity.Inventory{
		Untagged: []entity.Instance{
			{
				InstanceID: "i-9", Name: "web-9", Region: "us-east-1",
				State: "running", InstanceType: "t3.micro",
				Owner: entity.NotAvailable, CostCenter: "cc-1",
				Environment: entity.NotAvailable,
			},
		},
	}
	report := AnalyzeTagging(inv)

	assert.Len(t, report.UntaggedDetails, 1)
	detail := report.UntaggedDetails[0]
	assert.Equal(t, "i-9", detail.InstanceID)
	assert.True(t, detail.HasNameTag)
	assert.False(t, detail.HasOwnerTag)
	assert.True(t, detail.HasCostCenterTag)
	assert.False(t, detail.HasEnvironmentTag)
}

func TestAnalyzeTagging_TwoChecksMayDisagree(t *testing.T) {
	// O mapa de tags diz que falta owner, mas o campo achatado está
	// preenchido: cada visão segue seu próprio caminho.
	inst := entity.Instance{
		InstanceID:  "i-5",
		Name:        "web-5",
		Owner:       "alice",
		CostCenter:  "cc-1",
		Environment: "prod",
		Tags:        map[string]string{"Name": "web-5"},
	}
	inv := entity.Inventory{
		Instances: []entity.Instance{inst},
		Untagged:  []entity.Instance{inst},
	}
	report := AnalyzeTagging(inv)

	assert.Equal(t, 1, report.MissingCount(TagOwner))
	assert.True(t, report.UntaggedDetails[0].HasOwnerTag)
}

func TestAnalyzeTagging_Compliance(t *testing.T) {
	compliant := AnalyzeTagging(entity.Inventory{
		Instances: []entity.Instance{{InstanceID: "i-1"}},
	})
	assert.True(t, compliant.Compliant)

	notCompliant := AnalyzeTagging(entity.Inventory{
		Untagged: []entity.Instance{{InstanceID: "i-1"}},
	})
	assert.False(t, notCompliant.Compliant)
}
