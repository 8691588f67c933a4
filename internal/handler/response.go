package handler

import (
	"net/http"

	"github.com/go-chi/render"
)

// Envelope представляет единый формат ответа API.
// При error = true в data лежит человекочитаемое сообщение.
type Envelope struct {
	Error bool        `json:"error"`
	Data  interface{} `json:"data"`
}

// RespondWithData отправляет успешный ответ в конверте {error, data}
func RespondWithData(w http.ResponseWriter, r *http.Request, statusCode int, data interface{}) {
	render.Status(r, statusCode)
	render.JSON(w, r, Envelope{Error: false, Data: data})
}

// RespondWithError отправляет ответ с ошибкой в конверте {error, data}
func RespondWithError(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	render.Status(r, statusCode)
	render.JSON(w, r, Envelope{Error: true, Data: message})
}
