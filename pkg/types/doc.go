// Package types holds the address-space data model shared by every other
// package in this module: node identifiers, the polymorphic node classes,
// references, variants and the OPC UA status-code space.
//
// Nothing in this package talks to the store, the job loop or the network;
// it exists so that pkg/store, pkg/valueaccess, pkg/job and pkg/service can
// agree on one vocabulary without importing each other.
package types
