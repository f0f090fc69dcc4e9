package dto

// BroadcastRequest is a price transaction to send to the node.
type BroadcastRequest struct {
	Symbol string `json:"symbol" validate:"required,len=3,alpha"`
	Price  uint64 `json:"price" validate:"required"`
}

// BroadcastResponse carries the node's transaction hash.
type BroadcastResponse struct {
	TxHash    string `json:"tx_hash"`
	Timestamp uint64 `json:"timestamp"`
}

// TransactionStatusResponse reports a transaction's status.
type TransactionStatusResponse struct {
	TxHash string `json:"tx_hash"`
	Status string `json:"status"`
	Final  bool   `json:"final"`
}
