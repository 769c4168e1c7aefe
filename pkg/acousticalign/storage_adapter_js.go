//go:build js && wasm
// +build js,wasm

package acousticalign

import "errors"

// NewSQLiteStorage is unavailable in browser builds.
func NewSQLiteStorage(string) (Storage, error) {
	return nil, errors.New("sqlite storage is not available in js/wasm builds")
}
