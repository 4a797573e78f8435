// internal/webutil/request.go
package webutil

import (
	"encoding/json"
	"net/http"

	"go_5_vocab_trainer/internal/model"
)

// DecodeJSONBody はリクエストボディをデコードします。
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return model.ErrInvalidInput
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return model.ErrInvalidInput
	}
	return nil
}
