package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/opscart/cluster-cost-advisor/pkg/models"
)

// FileSource reads cluster configurations from a JSON export, one
// array of cluster objects per file.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (f *FileSource) ListClusters(ctx context.Context) ([]*models.ClusterConfig, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory file: %w", err)
	}

	var clusters []*models.ClusterConfig
	if err := json.Unmarshal(data, &clusters); err != nil {
		return nil, fmt.Errorf("failed to parse inventory file %s: %w", f.path, err)
	}
	return clusters, nil
}

func (f *FileSource) GetCluster(ctx context.Context, id string) (*models.ClusterConfig, error) {
	clusters, err := f.ListClusters(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range clusters {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("cluster %s not found in inventory", id)
}

func (f *FileSource) Name() string { return "file:" + f.path }
