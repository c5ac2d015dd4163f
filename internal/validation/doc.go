// Package validation provides the guard clauses shared by every helper operation.
// This includes required-argument checks, bucket name rules, and object key rules.
//
// Blank means empty or whitespace-only; both are rejected for required arguments.
package validation
