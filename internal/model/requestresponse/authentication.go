package requestresponse

// RegisterRequest : body of POST /api/register and POST /api/admin
type RegisterRequest struct {
	Username string `json:"username" example:"mario"`
	Email    string `json:"email" example:"mario@ezwallet.com"`
	Password string `json:"password" example:"s3cretPassw0rd"`
}

// LoginRequest : body of POST /api/login
type LoginRequest struct {
	Email    string `json:"email" example:"mario@ezwallet.com"`
	Password string `json:"password" example:"s3cretPassw0rd"`
}

// MessageData : plain confirmation payload
type MessageData struct {
	Message string `json:"message" example:"user added successfully"`
}

// CountData : confirmation payload of bulk operations
type CountData struct {
	Message string `json:"message" example:"Categories deleted"`
	Count   int64  `json:"count" example:"3"`
}

// Envelope : every successful response. RefreshedTokenMessage is set when the access
// token was re-minted while serving the request.
type Envelope struct {
	Data                  interface{} `json:"data"`
	RefreshedTokenMessage string      `json:"refreshedTokenMessage,omitempty"`
}

// ErrorResponse : every failed response
type ErrorResponse struct {
	Error string `json:"error" example:"Unauthorized"`
}
