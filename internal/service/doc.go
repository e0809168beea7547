// Package service provides application-level services for managing users
// and tasks. Services enforce the access rules; stores only persist.
package service
