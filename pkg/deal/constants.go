package deal

const (
	operationApply          = "apply"
	operationCreateOutreach = "create_outreach"
	operationAcceptOffer    = "accept_offer"
	operationDeclineOffer   = "decline_offer"
	operationUpdateStatus   = "update_status"
	operationOverrideStatus = "override_status"
	operationSubmitDraft    = "submit_draft"
	operationDecideContent  = "decide_content"
	operationSendMessage    = "send_message"
	operationMarkAsRead     = "mark_as_read"
	operationRemove         = "remove"

	operationStatusOK    = "ok"
	operationStatusError = "error"
)
