package web

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Response struct {
	Results interface{}     `json:"results"`
	Errors  []ResponseError `json:"errors,omitempty"`
}

type ResponseError struct {
	Message string `json:"message"`
}

func (e ResponseError) Error() string {
	return e.Message
}

func Respond(w http.ResponseWriter, code int, data interface{}) {
	writeResponse(w, code, &Response{Results: data})
}

func RespondError(w http.ResponseWriter, code int, message string) {
	log.WithFields(log.Fields{
		"error": message,
	}).Error("error while serving request")

	writeResponse(w, code, &Response{
		Errors: []ResponseError{
			{
				Message: message,
			},
		},
	})
}

func writeResponse(w http.ResponseWriter, code int, resp *Response) {
	w.Header().Set("Content-Type", "application/json")

	if code == http.StatusNoContent || resp == nil {
		w.WriteHeader(code)
		return
	}

	b, err := json.Marshal(resp)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(code)

	if _, err := w.Write(b); err != nil {
		log.WithError(errors.Wrap(err, "write response body")).Warn("respond")
	}
}
