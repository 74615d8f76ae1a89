package logging

import (
	"net/http"
)

func NewLoggingWriter(w http.ResponseWriter) *loggingWriter {
	return &loggingWriter{ResponseWriter: w}
}

// loggingWriter remembers the status and size of a response.
type loggingWriter struct {
	http.ResponseWriter
	responseStatus int
	written        int
}

func (writer *loggingWriter) Write(body []byte) (int, error) {
	if writer.responseStatus == 0 {
		writer.responseStatus = http.StatusOK
	}
	n, err := writer.ResponseWriter.Write(body)
	writer.written += n
	return n, err
}

func (writer *loggingWriter) WriteHeader(status int) {
	writer.responseStatus = status
	writer.ResponseWriter.WriteHeader(status)
}

// Status returns the status sent to the client, 200 when the handler never set one.
func (writer *loggingWriter) Status() int {
	if writer.responseStatus == 0 {
		return http.StatusOK
	}
	return writer.responseStatus
}

func (writer *loggingWriter) Written() int {
	return writer.written
}
