// Package util holds small parsing helpers shared by config consumers.
package util
