package deploy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRegistryCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("REGISTRY_USERNAME", "user")
	t.Setenv("REGISTRY_PASSWORD", "pass")
}

func TestContainerDeploy(t *testing.T) {
	setRegistryCredentials(t)

	runner := &mockRunner{}
	pusher := &mockPusher{ref: "docker.io/p1/model-serving:latest"}
	strategy := &Container{runner: runner, pusher: pusher}

	err := strategy.Deploy(context.Background(), containerConfig(), "203.0.113.5")
	require.NoError(t, err)

	assert.Equal(t, 1, pusher.calls)
	require.Len(t, runner.commands, 6)

	// Fixed remote sequence: login, pull, stop, rm, run, ps.
	assert.Contains(t, runner.commands[0], "docker login")
	assert.Contains(t, runner.commands[1], "docker pull docker.io/p1/model-serving:latest")
	assert.Contains(t, runner.commands[2], "docker stop model-serving")
	assert.Contains(t, runner.commands[3], "docker rm model-serving")
	assert.Contains(t, runner.commands[4], "docker run -d --name model-serving")
	assert.Contains(t, runner.commands[4], "--restart unless-stopped")
	assert.Contains(t, runner.commands[4], "-p 8001:8001")
	assert.Contains(t, runner.commands[5], "docker ps --filter name=model-serving")
}

func TestContainerDeploy_ToleratesMissingPriorContainer(t *testing.T) {
	setRegistryCredentials(t)

	runner := &mockRunner{failOn: map[string]string{
		"docker stop": "No such container: model-serving",
		"docker rm":   "No such container: model-serving",
	}}
	pusher := &mockPusher{ref: "docker.io/p1/model-serving:latest"}
	strategy := &Container{runner: runner, pusher: pusher}

	err := strategy.Deploy(context.Background(), containerConfig(), "203.0.113.5")
	require.NoError(t, err)

	// Cleanup failures never abort: the new container still runs.
	assert.True(t, runner.ran("docker run -d"))
}

func TestContainerDeploy_PushFailureBlocksRemoteMutation(t *testing.T) {
	setRegistryCredentials(t)

	runner := &mockRunner{}
	pusher := &mockPusher{err: errors.New("push denied")}
	strategy := &Container{runner: runner, pusher: pusher}

	err := strategy.Deploy(context.Background(), containerConfig(), "203.0.113.5")
	require.Error(t, err)

	// The host is only ever touched with a successfully pushed image.
	assert.Empty(t, runner.commands)
}

func TestContainerDeploy_PullFailureIsFatal(t *testing.T) {
	setRegistryCredentials(t)

	runner := &mockRunner{failOn: map[string]string{"docker pull": "manifest unknown"}}
	pusher := &mockPusher{ref: "docker.io/p1/model-serving:latest"}
	strategy := &Container{runner: runner, pusher: pusher}

	err := strategy.Deploy(context.Background(), containerConfig(), "203.0.113.5")
	require.Error(t, err)
	assert.False(t, runner.ran("docker run -d"))
}

func TestContainerDeploy_RunFailureIsFatal(t *testing.T) {
	setRegistryCredentials(t)

	runner := &mockRunner{failOn: map[string]string{"docker run": "port is already allocated"}}
	pusher := &mockPusher{ref: "docker.io/p1/model-serving:latest"}
	strategy := &Container{runner: runner, pusher: pusher}

	err := strategy.Deploy(context.Background(), containerConfig(), "203.0.113.5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "docker run failed")
}

func TestContainerDeploy_MissingCredentials(t *testing.T) {
	t.Setenv("REGISTRY_USERNAME", "")
	t.Setenv("REGISTRY_PASSWORD", "")

	runner := &mockRunner{}
	pusher := &mockPusher{ref: "docker.io/p1/model-serving:latest"}
	strategy := &Container{runner: runner, pusher: pusher}

	err := strategy.Deploy(context.Background(), containerConfig(), "203.0.113.5")
	require.Error(t, err)
	assert.Empty(t, runner.commands)
}
