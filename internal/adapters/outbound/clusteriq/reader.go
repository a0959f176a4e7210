package clusteriq

import (
	"context"
	"net/http"
	"sort"

	"github.com/cleitonmarx/symbiont/depend"
	"github.com/clusteriq/assistant/internal/domain"
	"github.com/clusteriq/assistant/internal/telemetry"
)

// InventoryReaderAdapter implements domain.InventoryReader over the
// ClusterIQ REST API.
type InventoryReaderAdapter struct {
	client APIClient
}

// NewInventoryReaderAdapter creates a new adapter.
func NewInventoryReaderAdapter(client APIClient) InventoryReaderAdapter {
	return InventoryReaderAdapter{client: client}
}

// Overview implements domain.InventoryReader.
func (r InventoryReaderAdapter) Overview(ctx context.Context) (domain.InventoryOverview, error) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	doc, err := r.client.Overview(spanCtx)
	if telemetry.RecordErrorAndStatus(span, err) {
		return domain.InventoryOverview{}, err
	}

	overview := domain.InventoryOverview{
		RunningClusters:  doc.Clusters.Running,
		StoppedClusters:  doc.Clusters.Stopped,
		ArchivedClusters: doc.Clusters.Archived,
		TotalInstances:   doc.Instances.Count,
		LastScan:         doc.ScannerLastScanTimestamp,
	}
	for provider, summary := range doc.Providers {
		overview.Providers = append(overview.Providers, domain.ProviderSummary{
			Provider:     provider,
			AccountCount: summary.AccountCount,
			ClusterCount: summary.ClusterCount,
		})
	}
	sort.Slice(overview.Providers, func(i, j int) bool {
		return overview.Providers[i].Provider < overview.Providers[j].Provider
	})
	return overview, nil
}

// ListAccounts implements domain.InventoryReader.
func (r InventoryReaderAdapter) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	docs, err := r.client.Accounts(spanCtx)
	if telemetry.RecordErrorAndStatus(span, err) {
		return nil, err
	}

	accounts := make([]domain.Account, len(docs))
	for i, doc := range docs {
		accounts[i] = toAccount(doc)
	}
	return accounts, nil
}

// GetAccount implements domain.InventoryReader.
func (r InventoryReaderAdapter) GetAccount(ctx context.Context, name string) (domain.Account, bool, error) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	doc, found, err := r.client.AccountByName(spanCtx, name)
	if telemetry.RecordErrorAndStatus(span, err) {
		return domain.Account{}, false, err
	}
	if !found {
		return domain.Account{}, false, nil
	}
	return toAccount(doc), true, nil
}

// ListClusters implements domain.InventoryReader.
func (r InventoryReaderAdapter) ListClusters(ctx context.Context) ([]domain.Cluster, error) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	docs, err := r.client.Clusters(spanCtx)
	if telemetry.RecordErrorAndStatus(span, err) {
		return nil, err
	}

	clusters := make([]domain.Cluster, len(docs))
	for i, doc := range docs {
		clusters[i] = toCluster(doc)
	}
	return clusters, nil
}

// GetCluster implements domain.InventoryReader.
func (r InventoryReaderAdapter) GetCluster(ctx context.Context, name string) (domain.Cluster, bool, error) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	doc, found, err := r.client.ClusterByName(spanCtx, name)
	if telemetry.RecordErrorAndStatus(span, err) {
		return domain.Cluster{}, false, err
	}
	if !found {
		return domain.Cluster{}, false, nil
	}
	return toCluster(doc), true, nil
}

// ListInstances implements domain.InventoryReader.
func (r InventoryReaderAdapter) ListInstances(ctx context.Context) ([]domain.Instance, error) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	docs, err := r.client.Instances(spanCtx)
	if telemetry.RecordErrorAndStatus(span, err) {
		return nil, err
	}
	return toInstances(docs), nil
}

// ListClusterInstances implements domain.InventoryReader.
func (r InventoryReaderAdapter) ListClusterInstances(ctx context.Context, clusterName string) ([]domain.Instance, error) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	docs, err := r.client.ClusterInstances(spanCtx, clusterName)
	if telemetry.RecordErrorAndStatus(span, err) {
		return nil, err
	}
	return toInstances(docs), nil
}

func toAccount(doc accountDoc) domain.Account {
	return domain.Account{
		ID:           doc.ID,
		Name:         doc.Name,
		Provider:     doc.Provider,
		ClusterCount: doc.ClusterCount,
		TotalCost:    doc.TotalCost,
	}
}

func toCluster(doc clusterDoc) domain.Cluster {
	return domain.Cluster{
		ID:            doc.ID,
		Name:          doc.Name,
		Provider:      doc.Provider,
		Status:        doc.Status,
		Region:        doc.Region,
		AccountName:   doc.AccountName,
		InstanceCount: doc.InstanceCount,
		CreatedAt:     doc.CreationTimestamp,
	}
}

func toInstances(docs []instanceDoc) []domain.Instance {
	instances := make([]domain.Instance, len(docs))
	for i, doc := range docs {
		instances[i] = domain.Instance{
			ID:           doc.ID,
			Name:         doc.Name,
			Provider:     doc.Provider,
			Region:       doc.Region,
			InstanceType: doc.InstanceType,
			Status:       doc.Status,
			ClusterName:  doc.ClusterName,
			AccountName:  doc.AccountName,
		}
	}
	return instances
}

// InitInventoryReader initializes the inventory reader dependency.
type InitInventoryReader struct {
	HttpClient *http.Client `resolve:""`
	APIURL     string       `config:"CLUSTERIQ_API_URL"`
	APIToken   string       `config:"CLUSTERIQ_API_TOKEN" default:""`
}

// Initialize registers the inventory reader.
func (i InitInventoryReader) Initialize(ctx context.Context) (context.Context, error) {
	adapter := NewInventoryReaderAdapter(NewAPIClient(i.APIURL, i.APIToken, i.HttpClient))
	depend.Register[domain.InventoryReader](adapter)
	return ctx, nil
}
