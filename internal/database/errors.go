package database

import "errors"

// ErrInvalidPath indicates the provided database path is empty or unusable.
var ErrInvalidPath = errors.New("invalid database path")

// ErrConnectionFailed indicates a connection to the database could not be established.
var ErrConnectionFailed = errors.New("database connection failed")
