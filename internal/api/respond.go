// respond.go - Response encoding with msgpack content negotiation
package api

import (
	"mime"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"
)

// MIMEApplicationMsgpack is served when the client asks for it in Accept.
const MIMEApplicationMsgpack = "application/msgpack"

var msgpackTypes = map[string]bool{
	MIMEApplicationMsgpack:    true,
	"application/x-msgpack":   true,
	"application/vnd.msgpack": true,
}

// respond writes body as JSON, or as msgpack when the Accept header names a
// msgpack media type.
func respond(c echo.Context, status int, body interface{}) error {
	if !wantsMsgpack(c.Request().Header.Get(echo.HeaderAccept)) {
		return c.JSON(status, body)
	}

	data, err := msgpack.Marshal(body)
	if err != nil {
		return NewInternalError("failed to encode msgpack", err)
	}
	return c.Blob(status, MIMEApplicationMsgpack, data)
}

func wantsMsgpack(accept string) bool {
	for _, item := range strings.Split(accept, ",") {
		mediaType, params, err := mime.ParseMediaType(strings.TrimSpace(item))
		if err != nil {
			continue
		}
		if msgpackTypes[mediaType] && params["q"] != "0" {
			return true
		}
	}
	return false
}
