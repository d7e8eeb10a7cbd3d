package controllers

import (
	"net/http"

	"github.com/barcodegenpro/barcodegen-backend/api/responses"
)

// Root announces the API so a browser hitting the base URL sees something.
func Root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"message": "Barcode Generator API"})
	}
}
