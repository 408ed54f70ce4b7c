// Package all wires the built-in storage backends into the storage factory.
//
// This package exists purely for side effects: importing it (even as a blank
// import) runs the init functions of each concrete backend, which register
// their factories with the storage package. The run layer imports this
// package once and otherwise depends only on storage.Repository.
package all

import (
	_ "autostat/internal/storage/postgres"
	_ "autostat/internal/storage/sqlite"
)
