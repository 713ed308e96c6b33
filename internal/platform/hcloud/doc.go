// Package hcloud wraps the Hetzner Cloud control plane behind a small
// resource client interface.
//
// The deployer only queries and conditionally creates resources; it never
// assumes ownership of anything that already exists. All operations here
// are single-shot: a control-plane failure propagates to the caller and
// aborts the workflow.
package hcloud
