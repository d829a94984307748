// Package errors provides the service error taxonomy.
//
// Every failure that reaches a client is an *AppError carrying a code and an
// HTTP status. Handlers render it as a flat {"detail", "code"} object.
package errors
