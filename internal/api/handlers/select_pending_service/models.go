package select_pending_service

// SelectPendingServiceRequest HTTP request model
type SelectPendingServiceRequest struct {
	ClientID         string `json:"clientId,omitempty"`
	PendingServiceID string `json:"pendingServiceId"`
}
