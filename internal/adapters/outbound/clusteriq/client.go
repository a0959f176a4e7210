// Package clusteriq reads the cluster inventory from the ClusterIQ REST
// API. The API is read-only from this service's point of view; failures
// are split into "could not reach the backend" and "the backend rejected
// or failed the query" so callers can report them distinctly.
package clusteriq

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/clusteriq/assistant/internal/domain"
)

// APIClient is a thin client for the ClusterIQ read API.
type APIClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewAPIClient creates a new client.
func NewAPIClient(baseURL, token string, httpClient *http.Client) APIClient {
	return APIClient{
		baseURL: baseURL,
		token:   token,
		http:    httpClient,
	}
}

// Overview fetches the aggregate inventory snapshot.
func (c APIClient) Overview(ctx context.Context) (overviewDoc, error) {
	var out overviewDoc
	err := c.get(ctx, "/overview", &out)
	return out, err
}

// Accounts fetches all accounts.
func (c APIClient) Accounts(ctx context.Context) ([]accountDoc, error) {
	var out accountsEnvelope
	if err := c.get(ctx, "/accounts", &out); err != nil {
		return nil, err
	}
	return out.Accounts, nil
}

// AccountByName fetches one account; found=false on 404.
func (c APIClient) AccountByName(ctx context.Context, name string) (accountDoc, bool, error) {
	var out accountsEnvelope
	if err := c.get(ctx, "/accounts/"+url.PathEscape(name), &out); err != nil {
		if isNotFound(err) {
			return accountDoc{}, false, nil
		}
		return accountDoc{}, false, err
	}
	if len(out.Accounts) == 0 {
		return accountDoc{}, false, nil
	}
	return out.Accounts[0], true, nil
}

// Clusters fetches all clusters.
func (c APIClient) Clusters(ctx context.Context) ([]clusterDoc, error) {
	var out clustersEnvelope
	if err := c.get(ctx, "/clusters", &out); err != nil {
		return nil, err
	}
	return out.Clusters, nil
}

// ClusterByName fetches one cluster; found=false on 404.
func (c APIClient) ClusterByName(ctx context.Context, name string) (clusterDoc, bool, error) {
	var out clustersEnvelope
	if err := c.get(ctx, "/clusters/"+url.PathEscape(name), &out); err != nil {
		if isNotFound(err) {
			return clusterDoc{}, false, nil
		}
		return clusterDoc{}, false, err
	}
	if len(out.Clusters) == 0 {
		return clusterDoc{}, false, nil
	}
	return out.Clusters[0], true, nil
}

// Instances fetches all instances.
func (c APIClient) Instances(ctx context.Context) ([]instanceDoc, error) {
	var out instancesEnvelope
	if err := c.get(ctx, "/instances", &out); err != nil {
		return nil, err
	}
	return out.Instances, nil
}

// ClusterInstances fetches the instances of one cluster.
func (c APIClient) ClusterInstances(ctx context.Context, clusterName string) ([]instanceDoc, error) {
	var out instancesEnvelope
	if err := c.get(ctx, "/instances/"+url.PathEscape(clusterName), &out); err != nil {
		return nil, err
	}
	return out.Instances, nil
}

// statusErr keeps the HTTP status around so 404s can be turned into
// found=false instead of failures.
type statusErr struct {
	status int
	body   string
}

func (e *statusErr) Error() string {
	return fmt.Sprintf("inventory API returned status %d: %s", e.status, e.body)
}

func isNotFound(err error) bool {
	se, ok := err.(*statusErr)
	return ok && se.status == http.StatusNotFound
}

func (c APIClient) get(ctx context.Context, path string, target any) error {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return domain.NewBackendQueryErr(fmt.Sprintf("invalid inventory API URL: %s", err.Error()))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.NewBackendQueryErr(fmt.Sprintf("create request: %s", err.Error()))
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Transport-level failures (refused, DNS, timeout) mean the
		// backend could not be reached at all.
		return domain.NewBackendUnavailableErr(fmt.Sprintf("inventory API unreachable: %s", err.Error()))
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.NewBackendUnavailableErr(fmt.Sprintf("read inventory API response: %s", err.Error()))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusNotFound {
			return &statusErr{status: resp.StatusCode, body: string(body)}
		}
		return domain.NewBackendQueryErr((&statusErr{status: resp.StatusCode, body: string(body)}).Error())
	}

	if err := json.Unmarshal(body, target); err != nil {
		return domain.NewBackendQueryErr(fmt.Sprintf("decode inventory API response: %s", err.Error()))
	}
	return nil
}
