package http

var WriteError = writeError
