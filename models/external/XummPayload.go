package external

// XummTokenAmount is an XRPL issued-currency amount.
type XummTokenAmount struct {
	Currency string `json:"currency"`
	Issuer   string `json:"issuer"`
	Value    string `json:"value"`
}

type XummTxJSON struct {
	TransactionType string          `json:"TransactionType"`
	Destination     string          `json:"Destination"`
	Amount          XummTokenAmount `json:"Amount"`
	Memos           []XummMemoWrap  `json:"Memos,omitempty"`
}

type XummMemoWrap struct {
	Memo XummMemo `json:"Memo"`
}

type XummMemo struct {
	MemoData string `json:"MemoData,omitempty"`
	MemoType string `json:"MemoType,omitempty"`
}

type XummPayloadRequest struct {
	TxJSON  XummTxJSON `json:"txjson"`
	Options struct {
		Submit  bool `json:"submit"`
		Expire  int  `json:"expire"`
	} `json:"options"`
	CustomMeta struct {
		Identifier  string `json:"identifier,omitempty"`
		Instruction string `json:"instruction,omitempty"`
	} `json:"custom_meta"`
}

type XummPayloadResponse struct {
	UUID string `json:"uuid"`
	Next struct {
		Always string `json:"always"`
	} `json:"next"`
	Refs struct {
		QrPng           string `json:"qr_png"`
		WebsocketStatus string `json:"websocket_status"`
	} `json:"refs"`
	Pushed bool `json:"pushed"`
}

type XummPayloadStatus struct {
	Meta struct {
		Exists    bool   `json:"exists"`
		UUID      string `json:"uuid"`
		Signed    bool   `json:"signed"`
		Cancelled bool   `json:"cancelled"`
		Expired   bool   `json:"expired"`
		Resolved  bool   `json:"resolved"`
	} `json:"meta"`
	Response struct {
		Txid             string `json:"txid"`
		Account          string `json:"account"`
		DispatchedResult string `json:"dispatched_result"`
	} `json:"response"`
}
