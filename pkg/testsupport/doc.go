// Package testsupport holds helpers shared by handler and renderer tests.
package testsupport
