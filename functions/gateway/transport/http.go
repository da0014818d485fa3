package transport

import (
	"encoding/json"
	"log"
	"net/http"
)

// SendServerRes writes a JSON body. err is logged for statuses >= 400 and
// never sent to the client.
func SendServerRes(w http.ResponseWriter, body []byte, status int, err error) {
	if status >= 400 {
		msg := "ERR: " + string(body)
		if err != nil {
			msg += " || Internal error msg: " + err.Error()
		}
		log.Println(msg)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, writeErr := w.Write(body); writeErr != nil {
		log.Println("ERR: Error writing response:", writeErr)
	}
}

// SendJSON marshals v and sends it with status.
func SendJSON(w http.ResponseWriter, v any, status int) {
	body, err := json.Marshal(v)
	if err != nil {
		SendErrorMessage(w, "Error marshaling JSON", http.StatusInternalServerError, err)
		return
	}
	SendServerRes(w, body, status, nil)
}

type errorBody struct {
	Error string `json:"error"`
}

// SendErrorMessage sends {"error": msg}.
func SendErrorMessage(w http.ResponseWriter, msg string, status int, err error) {
	body, _ := json.Marshal(errorBody{Error: msg})
	SendServerRes(w, body, status, err)
}

// SendError maps err onto a status and client-safe message.
func SendError(w http.ResponseWriter, err error) {
	status, msg := StatusForError(err)
	SendErrorMessage(w, msg, status, err)
}
