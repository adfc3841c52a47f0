package utils

import "errors"

var ErrorRecordNotFound = errors.New("record not found")

// ErrorDatabaseNotReady distinguishes "the pipeline could not run" from
// "nothing reconciled" (which is a valid zero-valued summary).
var ErrorDatabaseNotReady = errors.New("database not initialized")

func ErrorPanic(err error) {
	if err != nil {
		panic(err)
	}
}
