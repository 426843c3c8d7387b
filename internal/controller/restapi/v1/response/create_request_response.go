package response

type CreateRequest struct {
	RequestID    string `json:"request_id"`
	ProductCount int    `json:"product_count"`
	Message      string `json:"message"`
}
