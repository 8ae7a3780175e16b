// Package storage defines the persistence interfaces for the profile
// directory and the MUS wire format used by the BadgerDB implementation in
// the badger subpackage.
package storage
