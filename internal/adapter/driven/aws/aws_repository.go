package aws

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2Types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/diillson/aws-finops-report-go/internal/domain/entity"
	"github.com/diillson/aws-finops-report-go/internal/domain/repository"
)

// AWSRepositoryImpl implementa o AWSRepository com cache de clientes.
type AWSRepositoryImpl struct {
	profile string

	mu          sync.Mutex
	cfg         *aws.Config
	clientCache map[string]*ec2.Client
}

// NewAWSRepository cria uma nova implementação do AWSRepository para o
// perfil informado (vazio usa a cadeia de credenciais padrão).
func NewAWSRepository(profile string) repository.AWSRepository {
	return &AWSRepositoryImpl{
		profile:     profile,
		clientCache: make(map[string]*ec2.Client),
	}
}

// SetProfile troca o perfil AWS em uso, descartando a configuração e os
// clientes já criados quando o perfil muda.
func (r *AWSRepositoryImpl) SetProfile(profile string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if profile == r.profile {
		return
	}
	r.profile = profile
	r.cfg = nil
	r.clientCache = make(map[string]*ec2.Client)
}

func (r *AWSRepositoryImpl) getAWSConfig(ctx context.Context) (aws.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cfg != nil {
		return *r.cfg, nil
	}

	var opts []func(*config.LoadOptions) error
	if r.profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(r.profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %q: %w", r.profile, err)
	}

	r.cfg = &cfg
	return cfg, nil
}

func (r *AWSRepositoryImpl) getEC2Client(ctx context.Context, region string) (*ec2.Client, error) {
	r.mu.Lock()
	if client, ok := r.clientCache[region]; ok {
		r.mu.Unlock()
		return client, nil
	}
	r.mu.Unlock()

	cfg, err := r.getAWSConfig(ctx)
	if err != nil {
		return nil, err
	}

	regionalCfg := cfg.Copy()
	if region != "" {
		regionalCfg.Region = region
	}
	client := ec2.NewFromConfig(regionalCfg)

	r.mu.Lock()
	r.clientCache[region] = client
	r.mu.Unlock()
	return client, nil
}

// GetAccountIdentity resolve a identidade da conta: ID e ARN via STS, alias
// via IAM (uma conta sem alias devolve alias vazio, não erro).
func (r *AWSRepositoryImpl) GetAccountIdentity(ctx context.Context) (string, string, string, error) {
	cfg, err := r.getAWSConfig(ctx)
	if err != nil {
		return "", "", "", err
	}

	identity, err := sts.NewFromConfig(cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", "", "", fmt.Errorf("failed to get caller identity: %w", err)
	}

	alias := ""
	if aliases, err := iam.NewFromConfig(cfg).ListAccountAliases(ctx, &iam.ListAccountAliasesInput{}); err == nil && len(aliases.AccountAliases) > 0 {
		alias = aliases.AccountAliases[0]
	}

	return aws.ToString(identity.Account), alias, aws.ToString(identity.Arn), nil
}

// GetAccessibleRegions lista as regiões habilitadas para a conta.
func (r *AWSRepositoryImpl) GetAccessibleRegions(ctx context.Context) ([]string, error) {
	client, err := r.getEC2Client(ctx, "")
	if err != nil {
		return nil, err
	}

	result, err := client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to describe regions: %w", err)
	}

	regions := make([]string, 0, len(result.Regions))
	for _, region := range result.Regions {
		regions = append(regions, aws.ToString(region.RegionName))
	}
	sort.Strings(regions)
	return regions, nil
}

// CollectRegion coleta instâncias, volumes sem anexo e EIPs livres de uma
// região, no formato do documento de snapshot.
func (r *AWSRepositoryImpl) CollectRegion(ctx context.Context, region string) (entity.RegionSnapshot, error) {
	snap := entity.RegionSnapshot{Region: region}

	client, err := r.getEC2Client(ctx, region)
	if err != nil {
		return snap, err
	}

	// Instâncias (paginadas)
	paginator := ec2.NewDescribeInstancesPaginator(client, &ec2.DescribeInstancesInput{})
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return snap, fmt.Errorf("failed to describe instances in %s: %w", region, err)
		}
		for _, reservation := range output.Reservations {
			for _, inst := range reservation.Instances {
				detail := instanceDetail(inst)
				snap.Instances.Details = append(snap.Instances.Details, detail)

				switch detail.State {
				case "running":
					snap.Instances.Running++
				case "stopped":
					snap.Instances.Stopped++
					snap.StoppedInstances.Details = append(snap.StoppedInstances.Details, detail)
				}
				if missingMandatoryTag(detail.Tags) {
					snap.UntaggedResources.Instances = append(snap.UntaggedResources.Instances, detail)
				}
			}
		}
	}
	snap.Instances.Total = len(snap.Instances.Details)

	// Volumes sem anexo (status=available)
	volumes, err := client.DescribeVolumes(ctx, &ec2.DescribeVolumesInput{
		Filters: []ec2Types.Filter{{Name: aws.String("status"), Values: []string{"available"}}},
	})
	if err != nil {
		return snap, fmt.Errorf("failed to describe volumes in %s: %w", region, err)
	}
	for _, vol := range volumes.Volumes {
		snap.UnusedVolumes.Details = append(snap.UnusedVolumes.Details, entity.Volume{
			VolumeID:   aws.ToString(vol.VolumeId),
			Size:       int(aws.ToInt32(vol.Size)),
			VolumeType: string(vol.VolumeType),
		})
	}

	// EIPs sem associação
	addresses, err := client.DescribeAddresses(ctx, &ec2.DescribeAddressesInput{})
	if err != nil {
		return snap, fmt.Errorf("failed to describe addresses in %s: %w", region, err)
	}
	for _, addr := range addresses.Addresses {
		if addr.AssociationId == nil {
			snap.UnusedEIPs.Details = append(snap.UnusedEIPs.Details, entity.ElasticIP{
				AllocationID: aws.ToString(addr.AllocationId),
				PublicIP:     aws.ToString(addr.PublicIp),
			})
		}
	}

	return snap, nil
}

// CollectSnapshot coleta todas as regiões em paralelo e monta o documento
// completo. A ordem das regiões no documento é a ordem da lista de entrada.
func (r *AWSRepositoryImpl) CollectSnapshot(ctx context.Context, regions []string, progress func(region string)) (*entity.Snapshot, error) {
	accountID, alias, userARN, err := r.GetAccountIdentity(ctx)
	if err != nil {
		return nil, err
	}

	if len(regions) == 0 {
		regions, err = r.GetAccessibleRegions(ctx)
		if err != nil {
			return nil, err
		}
	}

	results := make([]entity.RegionSnapshot, len(regions))
	errs := make([]error, len(regions))

	var wg sync.WaitGroup
	for i, region := range regions {
		wg.Add(1)
		go func(idx int, rgn string) {
			defer wg.Done()
			results[idx], errs[idx] = r.CollectRegion(ctx, rgn)
			if progress != nil {
				progress(rgn)
			}
		}(i, region)
	}
	wg.Wait()

	snap := &entity.Snapshot{
		AccountID:           accountID,
		AccountAlias:        alias,
		UserARN:             userARN,
		CollectionTimestamp: time.Now().UTC().Format(time.RFC3339),
	}
	for i, result := range results {
		if errs[i] != nil {
			// Uma região inacessível não invalida a coleta inteira
			continue
		}
		snap.Regions = append(snap.Regions, result)
	}

	if len(snap.Regions) == 0 && len(regions) > 0 {
		return nil, fmt.Errorf("failed to collect any region: %w", firstError(errs))
	}

	return snap, nil
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// instanceDetail converte uma instância do SDK para o formato do snapshot,
// achatando as tags de identidade nos campos de primeiro nível.
func instanceDetail(inst ec2Types.Instance) entity.Instance {
	tags := make(map[string]string, len(inst.Tags))
	for _, tag := range inst.Tags {
		tags[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}

	tagOr := func(key string) string {
		if v, ok := tags[key]; ok && v != "" {
			return v
		}
		return entity.NotAvailable
	}

	detail := entity.Instance{
		InstanceID:   aws.ToString(inst.InstanceId),
		Name:         tagOr("Name"),
		InstanceType: string(inst.InstanceType),
		Platform:     aws.ToString(inst.PlatformDetails),
		Tags:         tags,
		Owner:        tagOr("owner"),
		CostCenter:   tagOr("CostCenter"),
		Environment:  tagOr("Environment"),
		VPCID:        aws.ToString(inst.VpcId),
		PrivateIP:    aws.ToString(inst.PrivateIpAddress),
		PublicIP:     aws.ToString(inst.PublicIpAddress),
	}
	if inst.State != nil {
		detail.State = string(inst.State.Name)
	}
	return detail
}

// missingMandatoryTag reports whether any of the mandatory tags is absent.
func missingMandatoryTag(tags map[string]string) bool {
	for _, key := range []string{"Name", "owner", "CostCenter", "Environment"} {
		if v, ok := tags[key]; !ok || v == "" || v == entity.NotAvailable {
			return true
		}
	}
	return false
}
