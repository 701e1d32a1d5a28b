// Package docker manages the local Neo4j container used as the export
// target for architecture graphs.
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

	"terraform-archviz/internal/config"
)

const (
	// DataDir is mounted as the Neo4j data volume so graphs survive
	// container restarts.
	DataDir = "neo4j-data"

	boltPort = "7687/tcp"
	httpPort = "7474/tcp"
)

// StartContainerOptions configures StartContainer.
type StartContainerOptions struct {
	Config *config.Config
	Name   string
}

// StartContainer pulls the configured Neo4j image if needed and starts a
// container with the credentials from the configuration file. If a container
// with the same name already exists, it is restarted instead of recreated.
func StartContainer(ctx context.Context, opts StartContainerOptions) error {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return fmt.Errorf("failed to create Docker client: %w", err)
	}
	defer cli.Close()

	if id, found, err := findContainer(ctx, cli, opts.Name); err != nil {
		return err
	} else if found {
		fmt.Printf("Container %s already exists, starting it...\n", opts.Name)
		if err := cli.ContainerStart(ctx, id, container.StartOptions{}); err != nil {
			return fmt.Errorf("failed to start existing container: %w", err)
		}
		fmt.Printf("✓ Container %s started\n", opts.Name)
		return nil
	}

	imageRef := opts.Config.Neo4j.DockerImage
	fmt.Printf("Pulling image %s...\n", imageRef)
	reader, err := cli.ImagePull(ctx, imageRef, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("failed to pull image %s: %w", imageRef, err)
	}
	// Drain the pull stream; Docker completes the pull asynchronously otherwise.
	if _, err := io.Copy(io.Discard, reader); err != nil {
		reader.Close()
		return fmt.Errorf("failed to pull image %s: %w", imageRef, err)
	}
	reader.Close()

	dataPath, err := filepath.Abs(DataDir)
	if err != nil {
		return fmt.Errorf("failed to resolve data directory: %w", err)
	}
	if err := os.MkdirAll(dataPath, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	containerConfig := &container.Config{
		Image: imageRef,
		Env: []string{
			fmt.Sprintf("NEO4J_AUTH=%s/%s", opts.Config.Neo4j.User, opts.Config.Neo4j.Password),
		},
		ExposedPorts: nat.PortSet{
			boltPort: struct{}{},
			httpPort: struct{}{},
		},
	}

	hostConfig := &container.HostConfig{
		PortBindings: nat.PortMap{
			boltPort: []nat.PortBinding{{HostIP: "127.0.0.1", HostPort: "7687"}},
			httpPort: []nat.PortBinding{{HostIP: "127.0.0.1", HostPort: "7474"}},
		},
		Binds: []string{dataPath + ":/data"},
	}

	resp, err := cli.ContainerCreate(ctx, containerConfig, hostConfig, nil, nil, opts.Name)
	if err != nil {
		return fmt.Errorf("failed to create container: %w", err)
	}

	if err := cli.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
		return fmt.Errorf("failed to start container: %w", err)
	}

	fmt.Printf("✓ Container %s started\n", opts.Name)
	fmt.Printf("  Bolt:    bolt://localhost:7687\n")
	fmt.Printf("  Browser: http://localhost:7474\n")

	return nil
}

// findContainer returns the ID of a container with the given name, if any.
func findContainer(ctx context.Context, cli *client.Client, name string) (string, bool, error) {
	containers, err := cli.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		return "", false, fmt.Errorf("failed to list containers: %w", err)
	}

	for _, c := range containers {
		for _, n := range c.Names {
			if n == "/"+name {
				return c.ID, true, nil
			}
		}
	}
	return "", false, nil
}
