package requestresponse

import "encoding/json"

// TransactionRequest : body of POST /api/users/{username}/transactions.
// Amount accepts a JSON number or a numeric string.
type TransactionRequest struct {
	Username string      `json:"username" example:"mario"`
	Amount   json.Number `json:"amount" swaggertype:"number" example:"12.5"`
	Type     string      `json:"type" example:"food"`
}

// DeleteTransactionRequest : body of DELETE /api/users/{username}/transactions
type DeleteTransactionRequest struct {
	ID string `json:"_id" example:"6f1c7d8e-0a9b-4c3d-8e2f-1a2b3c4d5e6f"`
}

// DeleteTransactionsRequest : body of DELETE /api/transactions
type DeleteTransactionsRequest struct {
	IDs []string `json:"_ids"`
}

// ExportData : presigned download link of an exported statement
type ExportData struct {
	URL string `json:"url" example:"https://ezwallet.s3.amazonaws.com/statements/mario/20230601T100000Z.csv?X-Amz-Signature=..."`
}
