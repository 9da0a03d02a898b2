// Package docker manages the local Neo4j container the update workflow
// pushes graphs into.
package docker

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"

	"terraform-modviz/internal/config"
)

// ContainerName is the fixed name of the Neo4j container managed by the
// start and stop commands.
const ContainerName = "modviz-neo4j"

// DataDir is mounted into the container so the database survives
// restarts.
const DataDir = "neo4j-data"

const (
	boltPort    = "7687"
	browserPort = "7474"
)

// StartContainer pulls the configured Neo4j image and starts it with
// the bolt and browser ports bound to localhost and the data directory
// mounted as a volume.
func StartContainer(ctx context.Context, cfg *config.Config) error {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return fmt.Errorf("failed to create Docker client: %w", err)
	}
	defer cli.Close()

	fmt.Printf("Pulling image %s...\n", cfg.Neo4j.DockerImage)
	reader, err := cli.ImagePull(ctx, cfg.Neo4j.DockerImage, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("failed to pull image %s: %w", cfg.Neo4j.DockerImage, err)
	}
	// The pull completes when the progress stream is drained.
	io.Copy(io.Discard, reader)
	reader.Close()

	if err := os.MkdirAll(DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", DataDir, err)
	}
	dataPath, err := filepath.Abs(DataDir)
	if err != nil {
		return fmt.Errorf("failed to resolve %s directory: %w", DataDir, err)
	}

	bolt, err := nat.NewPort("tcp", boltPort)
	if err != nil {
		return fmt.Errorf("invalid bolt port: %w", err)
	}
	browser, err := nat.NewPort("tcp", browserPort)
	if err != nil {
		return fmt.Errorf("invalid browser port: %w", err)
	}

	containerCfg := &container.Config{
		Image: cfg.Neo4j.DockerImage,
		Env: []string{
			fmt.Sprintf("NEO4J_AUTH=%s/%s", cfg.Neo4j.User, cfg.Neo4j.Password),
		},
		ExposedPorts: nat.PortSet{
			bolt:    struct{}{},
			browser: struct{}{},
		},
	}
	hostCfg := &container.HostConfig{
		PortBindings: nat.PortMap{
			bolt:    []nat.PortBinding{{HostIP: "127.0.0.1", HostPort: boltPort}},
			browser: []nat.PortBinding{{HostIP: "127.0.0.1", HostPort: browserPort}},
		},
		Binds: []string{dataPath + ":/data"},
	}

	resp, err := cli.ContainerCreate(ctx, containerCfg, hostCfg, nil, nil, ContainerName)
	if err != nil {
		return fmt.Errorf("failed to create container %s: %w", ContainerName, err)
	}

	if err := cli.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
		return fmt.Errorf("failed to start container %s: %w", ContainerName, err)
	}

	fmt.Printf("✓ Started Neo4j container %s (bolt on %s, browser on %s)\n", ContainerName, boltPort, browserPort)
	return nil
}
