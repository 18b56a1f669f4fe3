// Package aggregates defines the error taxonomy shared by every aggregate root.
//
// Domain packages return *Error values so that application services can tell a
// business failure apart from an infrastructure failure without string matching.
package aggregates
