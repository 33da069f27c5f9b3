// Package hashing dispatches password hashing to named drivers so that FSHP
// hashes can live next to, and migrate to, other algorithms.
//
// # Architecture
//
// The central abstraction is the [Hasher] interface.  Two drivers ship with
// this package:
//
//   - [FSHPHasher]: FSHP, backed by package fshp (default)
//   - [BcryptHasher]: bcrypt, the upgrade target for legacy FSHP hashes
//
// The [Manager] is a named driver registry.  Register drivers, designate a
// default, then delegate hashing operations through the Manager.
//
// # Quick start
//
//	m, err := hashing.NewDefaultManager() // FSHP default, bcrypt registered
//	if err != nil { log.Fatal(err) }
//
//	hash, _ := m.Make("my-secret-password")
//	ok, _   := m.Check("my-secret-password", hash) // true
//
// # Migration
//
// Stored FSHP hashes verify regardless of their variant or round count.  To
// move users to stronger parameters or to bcrypt, change the default and
// call [Manager.Upgrade] on every login:
//
//	_ = m.SetDefaultDriver(hashing.DriverBcrypt)
//	newHash, ok, err := m.Upgrade(password, storedHash)
//	if err == nil && ok && newHash != storedHash {
//	    persist(userID, newHash)
//	}
package hashing
