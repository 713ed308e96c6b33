package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msdeploy/msdeploy/internal/config"
	"github.com/msdeploy/msdeploy/internal/platform/hcloud"
	"github.com/msdeploy/msdeploy/internal/verify"
)

func withVerifyStubs(t *testing.T, client *stubResourceClient) *stubVerifier {
	t.Helper()

	origClient := newResourceClient
	origVerifier := newVerifier
	origLoad := loadConfigFile
	t.Cleanup(func() {
		newResourceClient = origClient
		newVerifier = origVerifier
		loadConfigFile = origLoad
	})

	verifier := &stubVerifier{result: verify.Result{HealthOK: true, RootOK: true}}

	newResourceClient = func(string) hcloud.ResourceClient { return client }
	newVerifier = func() ServiceVerifier { return verifier }
	loadConfigFile = func(string) (*config.Config, error) { return testConfig(), nil }

	t.Setenv("HCLOUD_TOKEN", "test-token")

	return verifier
}

func TestVerify_ExplicitIPSkipsCloudLookup(t *testing.T) {
	client := &stubResourceClient{ipErr: errors.New("must not be called")}
	verifier := withVerifyStubs(t, client)

	err := Verify(context.Background(), "", "198.51.100.7")
	require.NoError(t, err)

	assert.Equal(t, []string{"198.51.100.7"}, verifier.probed)
}

func TestVerify_ResolvesIPFromConfig(t *testing.T) {
	client := &stubResourceClient{ip: "203.0.113.5"}
	verifier := withVerifyStubs(t, client)

	err := Verify(context.Background(), "msdeploy.yaml", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"203.0.113.5"}, verifier.probed)
}

func TestVerify_ResolveFailureFatal(t *testing.T) {
	client := &stubResourceClient{ipErr: errors.New("instance not found")}
	verifier := withVerifyStubs(t, client)

	err := Verify(context.Background(), "msdeploy.yaml", "")
	require.Error(t, err)
	assert.Empty(t, verifier.probed)
}

func TestVerify_MissingTokenWithoutExplicitIP(t *testing.T) {
	verifier := withVerifyStubs(t, &stubResourceClient{})
	t.Setenv("HCLOUD_TOKEN", "")

	err := Verify(context.Background(), "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HCLOUD_TOKEN")
	assert.Empty(t, verifier.probed)
}

func TestVerify_FailedProbesAreNotFatal(t *testing.T) {
	verifier := withVerifyStubs(t, &stubResourceClient{})
	verifier.result = verify.Result{}

	err := Verify(context.Background(), "", "198.51.100.7")
	require.NoError(t, err)
}
