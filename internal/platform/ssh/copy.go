package ssh

import (
	"context"
	"fmt"

	"github.com/docker/docker/pkg/archive"
)

// copyExcludes are local paths never shipped to the target: VCS metadata,
// deployer state (including the private key) and local virtualenvs.
var copyExcludes = []string{".git", ".msdeploy", ".venv", "__pycache__"}

// CopyTree recursively uploads localDir to remoteDir by streaming a tar
// archive into an extracting shell on the remote side.
func (c *Client) CopyTree(ctx context.Context, localDir, remoteDir string) error {
	tarStream, err := archive.TarWithOptions(localDir, &archive.TarOptions{
		ExcludePatterns: copyExcludes,
	})
	if err != nil {
		return fmt.Errorf("failed to tar %s: %w", localDir, err)
	}
	defer func() { _ = tarStream.Close() }()

	client, err := c.connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	session, err := client.NewSession()
	if err != nil {
		return fmt.Errorf("failed to create SSH session on %s: %w", c.config.Host, err)
	}
	defer func() { _ = session.Close() }()

	session.Stdin = tarStream

	command := fmt.Sprintf("mkdir -p %s && tar -xf - -C %s", remoteDir, remoteDir)
	if output, err := session.CombinedOutput(command); err != nil {
		return fmt.Errorf("failed to extract tree on %s: %w\nOutput: %s",
			c.config.Host, err, string(output))
	}

	return nil
}
