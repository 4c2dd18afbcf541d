package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/model/requestresponse"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/obs"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/ports"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/security"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/util"
)

const msgInvalidBody = "invalid request body"

// authorize tries each request in order and stops at the first one granted.
// A re-minted access cookie is always written, granted or not. On denial it
// answers 401 with the cause of the last attempt.
func authorize(w http.ResponseWriter, r *http.Request, authorizer ports.Authorizer, requests ...security.AuthRequest) (security.Decision, bool) {
	var decision security.Decision
	var cookie *http.Cookie

	for _, req := range requests {
		decision = authorizer.VerifyRequest(r, req)
		if decision.Cookie != nil {
			cookie = decision.Cookie
		}
		obs.RecordAuthDecision(string(req.AuthType), decision.Flag, decision.Cookie != nil)
		if decision.Flag {
			break
		}
	}

	if cookie != nil {
		http.SetCookie(w, cookie)
	}
	if !decision.Flag {
		util.HandleError(w, decision.Cause, http.StatusUnauthorized)
		return decision, false
	}
	return decision, true
}

// writeData : 200 with the {data, refreshedTokenMessage} envelope
func writeData(w http.ResponseWriter, decision security.Decision, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	resp := requestresponse.Envelope{
		Data:                  data,
		RefreshedTokenMessage: decision.RefreshedTokenMessage,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

// writeServiceError : business and persistence failures alike are answered with 400.
// The full chain is logged, the client only sees the message under the layer tags.
func writeServiceError(w http.ResponseWriter, err error) {
	log.Println(err)
	util.HandleError(w, publicMessage(err), http.StatusBadRequest)
}

// publicMessage drops the leading "[Layer] context" segments that services and
// repositories prepend when wrapping.
func publicMessage(err error) string {
	segments := strings.Split(err.Error(), ": ")
	for len(segments) > 1 && strings.HasPrefix(segments[0], "[") {
		segments = segments[1:]
	}
	return strings.Join(segments, ": ")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		util.HandleError(w, msgInvalidBody, http.StatusBadRequest)
		return err
	}
	return nil
}
