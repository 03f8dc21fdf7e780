//go:build !unix

package jsonstore

// lockFile is a no-op on platforms without flock. Appends are still
// serialized within the process by Store.mu.
func lockFile(string) (func(), error) {
	return func() {}, nil
}
