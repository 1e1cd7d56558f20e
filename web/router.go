package web

import "net/http"

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(h *Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/resolve", h.Resolve)
	mux.HandleFunc("/entries", h.SubmitEntry)
	mux.HandleFunc("/payments", h.CreatePayment)
	mux.HandleFunc("/payments/", h.PaymentStatus)
	mux.HandleFunc("/contests/", h.Contest)
	return mux
}
