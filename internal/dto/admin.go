package dto

// ListUsersResponse wraps a page of users for the admin API.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ListAccountsResponse wraps a page of accounts for the admin API.
type ListAccountsResponse struct {
	Accounts []AccountSummary `json:"accounts"`
}

// ListTransactionsResponse wraps a token-paginated page of transactions for
// the admin API. NextToken is nil on the last page.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
