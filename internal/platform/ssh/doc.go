// Package ssh provides the remote command channel to the deployment target.
//
// It supports key-based authentication, connection establishment with retry
// (fresh instances take a while to accept connections), command execution
// with combined output, and recursive upload of a local directory tree.
//
// Host key verification is disabled: the deployer talks to instances it
// just created, identified by IP handed out by the control plane.
package ssh
