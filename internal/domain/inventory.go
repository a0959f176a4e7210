package domain

import (
	"context"
	"sort"
	"strings"
	"time"
)

// Account is one cloud account tracked by the inventory.
type Account struct {
	ID           string
	Name         string
	Provider     string
	ClusterCount int
	TotalCost    float64
}

// Cluster is one cluster tracked by the inventory.
type Cluster struct {
	ID            string
	Name          string
	Provider      string
	Status        string
	Region        string
	AccountName   string
	InstanceCount int
	CreatedAt     time.Time
}

// Instance is one compute instance belonging to a cluster.
type Instance struct {
	ID           string
	Name         string
	Provider     string
	Region       string
	InstanceType string
	Status       string
	ClusterName  string
	AccountName  string
}

// ProviderSummary is the per-provider slice of an inventory overview.
type ProviderSummary struct {
	Provider     string
	AccountCount int
	ClusterCount int
}

// InventoryOverview is the aggregate snapshot of the inventory.
type InventoryOverview struct {
	RunningClusters  int
	StoppedClusters  int
	ArchivedClusters int
	TotalInstances   int
	Providers        []ProviderSummary
	LastScan         time.Time
}

// InventoryReader reads the cluster inventory from the backing service.
// Implementations must be safe for concurrent use.
type InventoryReader interface {
	Overview(ctx context.Context) (InventoryOverview, error)
	ListAccounts(ctx context.Context) ([]Account, error)
	GetAccount(ctx context.Context, name string) (Account, bool, error)
	ListClusters(ctx context.Context) ([]Cluster, error)
	GetCluster(ctx context.Context, name string) (Cluster, bool, error)
	ListInstances(ctx context.Context) ([]Instance, error)
	ListClusterInstances(ctx context.Context, clusterName string) ([]Instance, error)
}

// ClusterSortField enumerates the fields clusters can be ordered by.
type ClusterSortField string

const (
	ClusterSortField_CreationDate  ClusterSortField = "creation_date"
	ClusterSortField_Name          ClusterSortField = "name"
	ClusterSortField_InstanceCount ClusterSortField = "instance_count"
)

// SortOrder enumerates sorting directions.
type SortOrder string

const (
	SortOrder_Asc  SortOrder = "asc"
	SortOrder_Desc SortOrder = "desc"
)

// ParseClusterSortField validates a sort field name.
func ParseClusterSortField(s string) (ClusterSortField, error) {
	switch ClusterSortField(strings.ToLower(strings.TrimSpace(s))) {
	case ClusterSortField_CreationDate:
		return ClusterSortField_CreationDate, nil
	case ClusterSortField_Name:
		return ClusterSortField_Name, nil
	case ClusterSortField_InstanceCount:
		return ClusterSortField_InstanceCount, nil
	}
	return "", NewValidationErr("unknown sort field: " + s)
}

// ParseSortOrder validates a sort order; empty defaults to ascending.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case SortOrder_Asc, "":
		return SortOrder_Asc, nil
	case SortOrder_Desc:
		return SortOrder_Desc, nil
	}
	return "", NewValidationErr("unknown sort order: " + s)
}

// SortClusters returns a new slice ordered by the given field. Ties keep
// their relative listing order.
func SortClusters(clusters []Cluster, field ClusterSortField, order SortOrder) []Cluster {
	out := make([]Cluster, len(clusters))
	copy(out, clusters)

	less := func(a, b Cluster) bool {
		switch field {
		case ClusterSortField_Name:
			return a.Name < b.Name
		case ClusterSortField_InstanceCount:
			return a.InstanceCount < b.InstanceCount
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if order == SortOrder_Desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// InstanceGroupBy enumerates the dimensions instance counts can be grouped by.
type InstanceGroupBy string

const (
	InstanceGroupBy_Cluster  InstanceGroupBy = "cluster"
	InstanceGroupBy_Account  InstanceGroupBy = "account"
	InstanceGroupBy_Provider InstanceGroupBy = "provider"
)

// ParseInstanceGroupBy validates a grouping dimension.
func ParseInstanceGroupBy(s string) (InstanceGroupBy, error) {
	switch InstanceGroupBy(strings.ToLower(strings.TrimSpace(s))) {
	case InstanceGroupBy_Cluster:
		return InstanceGroupBy_Cluster, nil
	case InstanceGroupBy_Account:
		return InstanceGroupBy_Account, nil
	case InstanceGroupBy_Provider:
		return InstanceGroupBy_Provider, nil
	}
	return "", NewValidationErr("unknown group_by dimension: " + s)
}

// GroupInstanceCounts counts instances per group. Instances with an empty
// group key fall under "unknown".
func GroupInstanceCounts(instances []Instance, groupBy InstanceGroupBy) map[string]int {
	counts := make(map[string]int)
	for _, inst := range instances {
		var key string
		switch groupBy {
		case InstanceGroupBy_Cluster:
			key = inst.ClusterName
		case InstanceGroupBy_Account:
			key = inst.AccountName
		case InstanceGroupBy_Provider:
			key = inst.Provider
		}
		if key == "" {
			key = "unknown"
		}
		counts[key]++
	}
	return counts
}
