// Package integration_tests runs complete atlas builds from request files
// and checks the sheet and descriptor artifacts they produce.
package integration_tests
