package clusteriq

import "time"

// Wire shapes of the ClusterIQ read API. Listings come wrapped in a
// keyed envelope ({"accounts":[...]}, {"clusters":[...]}, ...).

type accountsEnvelope struct {
	Accounts []accountDoc `json:"accounts"`
	Count    int          `json:"count"`
}

type clustersEnvelope struct {
	Clusters []clusterDoc `json:"clusters"`
	Count    int          `json:"count"`
}

type instancesEnvelope struct {
	Instances []instanceDoc `json:"instances"`
	Count     int           `json:"count"`
}

type accountDoc struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Provider     string  `json:"provider"`
	ClusterCount int     `json:"clusterCount"`
	TotalCost    float64 `json:"totalCost"`
}

type clusterDoc struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Provider          string    `json:"provider"`
	Status            string    `json:"status"`
	Region            string    `json:"region"`
	AccountName       string    `json:"accountName"`
	InstanceCount     int       `json:"instanceCount"`
	CreationTimestamp time.Time `json:"creationTimestamp"`
}

type instanceDoc struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Provider     string `json:"provider"`
	Region       string `json:"availabilityZone"`
	InstanceType string `json:"instanceType"`
	Status       string `json:"status"`
	ClusterName  string `json:"clusterName"`
	AccountName  string `json:"accountName"`
}

type overviewDoc struct {
	Clusters struct {
		Running  int `json:"running"`
		Stopped  int `json:"stopped"`
		Archived int `json:"archived"`
	} `json:"clusters"`
	Instances struct {
		Count int `json:"count"`
	} `json:"instances"`
	Providers map[string]struct {
		AccountCount int `json:"accountCount"`
		ClusterCount int `json:"clusterCount"`
	} `json:"providers"`
	ScannerLastScanTimestamp time.Time `json:"scannerLastScanTimestamp"`
}
