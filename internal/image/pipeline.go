// Package image builds, tags and pushes the model-serving container image.
//
// The image is always built for linux/amd64 because the build host's native
// architecture may differ from the target instance's. Pushing overwrites
// the latest tag unconditionally. Any failure here is fatal and happens
// before the remote host is touched, so the host only ever sees
// successfully pushed images.
package image

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/registry"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/archive"
	"github.com/docker/docker/pkg/jsonmessage"

	"github.com/msdeploy/msdeploy/internal/config"
)

// targetPlatform is the CPU architecture the image is built for.
const targetPlatform = "linux/amd64"

// localTag is the unqualified tag the build produces before registry tagging.
const localTag = config.ServiceName + ":latest"

// Environment variables carrying registry credentials.
const (
	envRegistryUser     = "REGISTRY_USERNAME"
	envRegistryPassword = "REGISTRY_PASSWORD"
)

// DockerAPI is the subset of the Docker Engine API the pipeline uses.
type DockerAPI interface {
	ImageBuild(ctx context.Context, buildContext io.Reader, options types.ImageBuildOptions) (types.ImageBuildResponse, error)
	ImageTag(ctx context.Context, source, target string) error
	RegistryLogin(ctx context.Context, auth registry.AuthConfig) (registry.AuthenticateOKBody, error)
	ImagePush(ctx context.Context, image string, options types.ImagePushOptions) (io.ReadCloser, error)
}

// Pipeline builds and pushes the service image from a build context
// directory.
type Pipeline struct {
	api        DockerAPI
	contextDir string
}

// NewPipeline creates a pipeline talking to the local Docker daemon.
func NewPipeline(contextDir string) (*Pipeline, error) {
	api, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}
	return &Pipeline{api: api, contextDir: contextDir}, nil
}

// NewPipelineWithAPI creates a pipeline with a custom Docker API
// implementation (useful for testing).
func NewPipelineWithAPI(api DockerAPI, contextDir string) *Pipeline {
	return &Pipeline{api: api, contextDir: contextDir}
}

// BuildAndPush builds the image for the fixed target platform, tags it with
// the registry-qualified name derived from the project, authenticates, and
// pushes. Returns the pushed image reference.
func (p *Pipeline) BuildAndPush(ctx context.Context, cfg *config.Config) (string, error) {
	auth, err := registryAuth()
	if err != nil {
		return "", err
	}

	if err := p.build(ctx); err != nil {
		return "", err
	}

	ref := cfg.ImageRef()
	if err := p.api.ImageTag(ctx, localTag, ref); err != nil {
		return "", fmt.Errorf("failed to tag image %s as %s: %w", localTag, ref, err)
	}

	if _, err := p.api.RegistryLogin(ctx, auth); err != nil {
		return "", fmt.Errorf("failed to authenticate against %s: %w", config.RegistryHost, err)
	}

	if err := p.push(ctx, ref, auth); err != nil {
		return "", err
	}

	return ref, nil
}

func (p *Pipeline) build(ctx context.Context) error {
	buildContext, err := archive.TarWithOptions(p.contextDir, &archive.TarOptions{
		ExcludePatterns: []string{".git", ".msdeploy", ".venv", "__pycache__"},
	})
	if err != nil {
		return fmt.Errorf("failed to tar build context %s: %w", p.contextDir, err)
	}
	defer func() { _ = buildContext.Close() }()

	resp, err := p.api.ImageBuild(ctx, buildContext, types.ImageBuildOptions{
		Tags:       []string{localTag},
		Dockerfile: "Dockerfile",
		Platform:   targetPlatform,
		Remove:     true,
	})
	if err != nil {
		return fmt.Errorf("failed to build image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := drainStream(resp.Body); err != nil {
		return fmt.Errorf("image build failed: %w", err)
	}
	return nil
}

func (p *Pipeline) push(ctx context.Context, ref string, auth registry.AuthConfig) error {
	encoded, err := encodeAuth(auth)
	if err != nil {
		return err
	}

	stream, err := p.api.ImagePush(ctx, ref, types.ImagePushOptions{RegistryAuth: encoded})
	if err != nil {
		return fmt.Errorf("failed to push image %s: %w", ref, err)
	}
	defer func() { _ = stream.Close() }()

	if err := drainStream(stream); err != nil {
		return fmt.Errorf("image push failed: %w", err)
	}
	return nil
}

// drainStream consumes a Docker JSON message stream to completion and
// surfaces any error message embedded in it. Build and push report failures
// inside the stream, not as an error on the initial call.
func drainStream(r io.Reader) error {
	dec := json.NewDecoder(r)
	for {
		var msg jsonmessage.JSONMessage
		if err := dec.Decode(&msg); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("failed to decode daemon response: %w", err)
		}
		if msg.Error != nil {
			return msg.Error
		}
	}
}

// RegistryCredentials returns the registry credentials from the
// environment. The container strategy needs them twice: locally for the
// push and remotely for the pull.
func RegistryCredentials() (username, password string, err error) {
	username = os.Getenv(envRegistryUser)
	password = os.Getenv(envRegistryPassword)
	if username == "" || password == "" {
		return "", "", fmt.Errorf("%s and %s must be set for the container strategy",
			envRegistryUser, envRegistryPassword)
	}
	return username, password, nil
}

// registryAuth assembles registry credentials from the environment.
func registryAuth() (registry.AuthConfig, error) {
	username, password, err := RegistryCredentials()
	if err != nil {
		return registry.AuthConfig{}, err
	}
	return registry.AuthConfig{
		Username:      username,
		Password:      password,
		ServerAddress: config.RegistryHost,
	}, nil
}

// encodeAuth encodes credentials in the X-Registry-Auth header format.
func encodeAuth(auth registry.AuthConfig) (string, error) {
	data, err := json.Marshal(auth)
	if err != nil {
		return "", fmt.Errorf("failed to encode registry auth: %w", err)
	}
	return base64.URLEncoding.EncodeToString(data), nil
}
