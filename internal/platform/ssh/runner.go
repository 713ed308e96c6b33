package ssh

import "context"

// Runner executes commands on the deployment target and copies files to it.
// Deployment strategies are written against this interface so they can be
// tested without a live host.
type Runner interface {
	// Run executes a command on the remote host and returns its combined
	// output. A non-zero exit status is returned as an error.
	Run(ctx context.Context, command string) (string, error)

	// CopyTree recursively uploads localDir to remoteDir on the host,
	// creating remoteDir if needed.
	CopyTree(ctx context.Context, localDir, remoteDir string) error
}
