package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/racquetek/booking-api/functions/gateway/helpers"
	"github.com/racquetek/booking-api/functions/gateway/transport"
)

var validate = helpers.NewValidator()

const maxBodyBytes = 1 << 20

// decodeBody reads a JSON body into dst and runs struct validation. On failure
// it has already written the 400 response.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		transport.SendErrorMessage(w, "Failed to read request body", http.StatusBadRequest, err)
		return false
	}

	if err := json.Unmarshal(body, dst); err != nil {
		transport.SendErrorMessage(w, "Invalid JSON payload", http.StatusBadRequest, err)
		return false
	}

	if err := validate.Struct(dst); err != nil {
		transport.SendErrorMessage(w, "Invalid body: "+err.Error(), http.StatusBadRequest, err)
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, key string) (int64, bool) {
	raw := mux.Vars(r)[key]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		transport.SendErrorMessage(w, fmt.Sprintf("Invalid %s: %q", key, raw), http.StatusBadRequest, err)
		return 0, false
	}
	return id, true
}
