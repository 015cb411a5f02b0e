// Copyright 2021 the System Transparency Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sterror provides the structured error values used throughout
// this module. An Error carries the subsystem it originates from, the
// operation that failed and an optional wrapped cause. Errors are
// created with the constructor function E.
package sterror

// Op describes an operation, usually the name of the failing method.
type Op string

// Scope identifies the subsystem an error originates from.
type Scope string

// Error is a structured error. Some fields may be left unset.
//
// An Error value should be created using the E function.
type Error struct {
	// Op is the operation being executed when the error occurred.
	Op Op
	// Scope is the subsystem causing the error.
	Scope Scope
	// Err is the underlying wrapped error, if any.
	Err error
	// Info holds additional context, or the message of a triggering
	// error that should not be wrapped.
	Info string
}

// Error implements the error interface.
func (e Error) Error() string {
	msg := string(e.Scope)

	if e.Op != "" {
		msg += ": " + string(e.Op)
	}

	if e.Info != "" {
		msg += ": " + e.Info
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Unwrap returns the wrapped cause so that errors.Is and errors.As see
// through an Error to the sentinel values of the raising package.
func (e Error) Unwrap() error {
	return e.Err
}

// E returns an Error constructed from its arguments. The type of each
// argument determines its meaning:
//
//	sterror.Op
//		The performed operation.
//	sterror.Scope
//		The subsystem where the error occurred.
//	error
//		The underlying error to be wrapped.
//	string
//		Additional information, or the message of an error that
//		should not be wrapped.
//
// If more than one argument of a given type is passed, only the last
// one is recorded. Arguments of further types are ignored.
func E(args ...interface{}) Error {
	if len(args) == 0 {
		return Error{Info: "unspecified"}
	}

	var err Error

	for _, arg := range args {
		switch arg := arg.(type) {
		case Op:
			err.Op = arg
		case Scope:
			err.Scope = arg
		case error:
			err.Err = arg
		case string:
			err.Info = arg
		}
	}

	return err
}
