// Package lib holds small building blocks that do not belong to a single
// layer.
//
// Subpackages:
//   - chain: runs dependent steps in order and stops at the first failure.
package lib
