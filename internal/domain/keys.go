package domain

type CtxKey string

const (
	KeyRequestID CtxKey = "RequestID"
	KeyEndpoint  CtxKey = "Endpoint"
)
