package transport

// Envelope is the wire shape of every API response. Success carries Data;
// errors carry Code plus a message or structured detail in Error.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
}

func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{Status: "success", Data: data, Meta: meta}
}

func NewError(code string, detail interface{}, meta interface{}) Envelope {
	return Envelope{Status: "error", Code: code, Error: detail, Meta: meta}
}
